package outreach

import (
	"fmt"

	"github.com/boriloo/pythonScriptV2/internal/driver"
)

// Strategy is one way to find a UI affordance. Selector is a CSS query; when
// Pattern is set the query is narrowed to elements whose text matches it.
type Strategy struct {
	Name     string
	Selector string
	Pattern  string
}

// The fallback lists are ordered: earlier entries take priority over the
// later, more generic ones.
var (
	messageButtonStrategies = []Strategy{
		{Name: "button-text-pt", Selector: "button", Pattern: "Mensagem"},
		{Name: "button-text-en", Selector: "button", Pattern: "Message"},
		{Name: "profile-actions-aria", Selector: `.pvs-profile-actions button[aria-label*="essage"]`},
	}

	textFieldStrategies = []Strategy{
		{Name: "compose-box", Selector: ".msg-form__contenteditable"},
		{Name: "textbox-role", Selector: `[role="textbox"]`},
	}

	sendButtonStrategies = []Strategy{
		{Name: "send-button", Selector: ".msg-form__send-button"},
		{Name: "submit-enviar", Selector: `button[type="submit"]`, Pattern: "Enviar"},
	}
)

// locate tries each strategy in order and returns the first element that
// resolves. Exhausting the list without a match is not an error; a driver
// fault during any strategy is.
func locate(page driver.Page, strategies []Strategy) (driver.Element, bool, error) {
	for _, st := range strategies {
		var (
			el  driver.Element
			ok  bool
			err error
		)
		if st.Pattern != "" {
			el, ok, err = page.ElementMatching(st.Selector, st.Pattern)
		} else {
			el, ok, err = page.Element(st.Selector)
		}
		if err != nil {
			return nil, false, fmt.Errorf("locate %s: %w", st.Name, err)
		}
		if ok {
			return el, true, nil
		}
	}
	return nil, false, nil
}
