// Package driver defines the narrow browser capabilities the outreach
// pipeline consumes. Production code runs these against rod; tests run them
// against an in-memory fake DOM.
package driver

import "context"

// Page is one browser tab. Queries report absence separately from driver
// faults: a missing element is (nil, false, nil), a driver failure carries
// the error.
type Page interface {
	Navigate(ctx context.Context, url string) error
	WaitSettled(ctx context.Context) error
	URL() (string, error)
	Element(selector string) (Element, bool, error)
	// ElementMatching narrows a selector to elements whose visible text
	// matches the regexp pattern.
	ElementMatching(selector, pattern string) (Element, bool, error)
	Elements(selector string) ([]Element, error)
}

// Element is a handle to one DOM node.
type Element interface {
	Text() (string, error)
	Attribute(name string) (string, bool, error)
	// Element queries within this node's subtree.
	Element(selector string) (Element, bool, error)
	Click() error
	Fill(text string) error
	PressKeys(combo string) error
}
