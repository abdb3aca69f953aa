package driver

import "context"

// FakeDOM is the element tree a FakePage serves at one location.
type FakeDOM struct {
	Elements map[string]*FakeElement   // selector -> first match
	Matches  map[string]*FakeElement   // selector + "|" + pattern -> match
	Lists    map[string][]*FakeElement // selector -> all matches
	QueryErr map[string]error          // selector (or match key) -> driver fault
}

// FakePage is a deterministic in-memory Page. Routes maps a landing URL to
// the DOM served there; Redirects rewrites the location after navigation,
// emulating e.g. the login -> feed redirect.
type FakePage struct {
	Routes    map[string]*FakeDOM
	Redirects map[string]string
	NavErr    map[string]error
	Navigated []string
	Location  string

	dom *FakeDOM
}

func NewFakePage() *FakePage {
	return &FakePage{
		Routes:    map[string]*FakeDOM{},
		Redirects: map[string]string{},
		NavErr:    map[string]error{},
	}
}

func (p *FakePage) Navigate(_ context.Context, url string) error {
	p.Navigated = append(p.Navigated, url)
	if err := p.NavErr[url]; err != nil {
		return err
	}
	loc := url
	if to, ok := p.Redirects[url]; ok {
		loc = to
	}
	p.Location = loc
	p.dom = p.Routes[loc]
	return nil
}

func (p *FakePage) WaitSettled(context.Context) error { return nil }

func (p *FakePage) URL() (string, error) { return p.Location, nil }

func (p *FakePage) Element(sel string) (Element, bool, error) {
	if p.dom == nil {
		return nil, false, nil
	}
	if err := p.dom.QueryErr[sel]; err != nil {
		return nil, false, err
	}
	el, ok := p.dom.Elements[sel]
	if !ok || el == nil {
		return nil, false, nil
	}
	return el, true, nil
}

func (p *FakePage) ElementMatching(sel, pattern string) (Element, bool, error) {
	key := sel + "|" + pattern
	if p.dom == nil {
		return nil, false, nil
	}
	if err := p.dom.QueryErr[key]; err != nil {
		return nil, false, err
	}
	el, ok := p.dom.Matches[key]
	if !ok || el == nil {
		return nil, false, nil
	}
	return el, true, nil
}

func (p *FakePage) Elements(sel string) ([]Element, error) {
	if p.dom == nil {
		return nil, nil
	}
	if err := p.dom.QueryErr[sel]; err != nil {
		return nil, err
	}
	els := p.dom.Lists[sel]
	out := make([]Element, 0, len(els))
	for _, e := range els {
		out = append(out, e)
	}
	return out, nil
}

// FakeElement records the interactions performed on it.
type FakeElement struct {
	TextContent string
	Attrs       map[string]string
	Children    map[string]*FakeElement
	ChildErr    map[string]error

	TextErr  error
	ClickErr error
	FillErr  error
	PressErr error

	Clicks  int
	Filled  []string
	Pressed []string
}

func (e *FakeElement) Text() (string, error) { return e.TextContent, e.TextErr }

func (e *FakeElement) Attribute(name string) (string, bool, error) {
	v, ok := e.Attrs[name]
	return v, ok, nil
}

func (e *FakeElement) Element(sel string) (Element, bool, error) {
	if err := e.ChildErr[sel]; err != nil {
		return nil, false, err
	}
	c, ok := e.Children[sel]
	if !ok || c == nil {
		return nil, false, nil
	}
	return c, true, nil
}

func (e *FakeElement) Click() error {
	e.Clicks++
	return e.ClickErr
}

func (e *FakeElement) Fill(text string) error {
	e.Filled = append(e.Filled, text)
	return e.FillErr
}

func (e *FakeElement) PressKeys(combo string) error {
	e.Pressed = append(e.Pressed, combo)
	return e.PressErr
}
