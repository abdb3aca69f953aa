package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"

	"github.com/boriloo/pythonScriptV2/internal/driver"
)

// Explicit per-operation timeouts; the pipeline never inherits rod's
// defaults.
const (
	navTimeout   = 30 * time.Second
	queryTimeout = 5 * time.Second
)

type page struct {
	p *rod.Page
}

func (pg *page) Navigate(ctx context.Context, url string) error {
	return pg.p.Context(ctx).Timeout(navTimeout).Navigate(url)
}

func (pg *page) WaitSettled(ctx context.Context) error {
	return pg.p.Context(ctx).Timeout(navTimeout).WaitLoad()
}

func (pg *page) URL() (string, error) {
	info, err := pg.p.Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

func (pg *page) Element(sel string) (driver.Element, bool, error) {
	el, err := pg.p.Timeout(queryTimeout).Element(sel)
	return wrapQuery(el, err)
}

func (pg *page) ElementMatching(sel, pattern string) (driver.Element, bool, error) {
	el, err := pg.p.Timeout(queryTimeout).ElementR(sel, pattern)
	return wrapQuery(el, err)
}

func (pg *page) Elements(sel string) ([]driver.Element, error) {
	els, err := pg.p.Elements(sel)
	if err != nil {
		return nil, err
	}
	out := make([]driver.Element, 0, len(els))
	for _, el := range els {
		out = append(out, &element{el: el})
	}
	return out, nil
}

// wrapQuery maps rod's blocking-query behavior onto the driver contract:
// a query that timed out means the element is absent, anything else is a
// driver fault.
func wrapQuery(el *rod.Element, err error) (driver.Element, bool, error) {
	if err != nil {
		var notFound *rod.ElementNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, context.DeadlineExceeded) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &element{el: el}, true, nil
}

type element struct {
	el *rod.Element
}

func (e *element) Text() (string, error) {
	return e.el.Text()
}

func (e *element) Attribute(name string) (string, bool, error) {
	v, err := e.el.Attribute(name)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}

func (e *element) Element(sel string) (driver.Element, bool, error) {
	el, err := e.el.Timeout(queryTimeout).Element(sel)
	return wrapQuery(el, err)
}

func (e *element) Click() error {
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}

func (e *element) Fill(text string) error {
	return e.el.Input(text)
}

var comboKeys = map[string]input.Key{
	"Control": input.ControlLeft,
	"Shift":   input.ShiftLeft,
	"Alt":     input.AltLeft,
	"Enter":   input.Enter,
}

// PressKeys issues a keyboard combo like "Control+Enter" with the element
// focused: modifiers held, final key typed.
func (e *element) PressKeys(combo string) error {
	parts := strings.Split(combo, "+")
	keys := make([]input.Key, 0, len(parts))
	for _, part := range parts {
		k, ok := comboKeys[part]
		if !ok {
			return fmt.Errorf("unknown key %q in combo %q", part, combo)
		}
		keys = append(keys, k)
	}
	if err := e.el.Focus(); err != nil {
		return err
	}
	act := e.el.Page().KeyActions()
	for _, k := range keys[:len(keys)-1] {
		act = act.Press(k)
	}
	return act.Type(keys[len(keys)-1]).Do()
}
