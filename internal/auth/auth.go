package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/boriloo/pythonScriptV2/internal/driver"
	"github.com/boriloo/pythonScriptV2/internal/logging"
	"github.com/boriloo/pythonScriptV2/internal/pacing"
)

// ErrAuthentication is fatal: credential failures and CAPTCHA checkpoints
// are indistinguishable from the landing URL, so the run aborts without
// retrying.
var ErrAuthentication = errors.New("login falhou: verifique credenciais ou CAPTCHA")

type Authenticator struct {
	page driver.Page
	base string
	pace *pacing.Limiter
	log  *logging.Logger
}

func New(page driver.Page, baseURL string, pace *pacing.Limiter, log *logging.Logger) *Authenticator {
	return &Authenticator{page: page, base: baseURL, pace: pace, log: log.With("module", "auth")}
}

// Login drives the credential form and classifies success by the landing
// URL: only a feed or network destination counts as a live session.
func (a *Authenticator) Login(ctx context.Context, email, password string) error {
	if err := a.page.Navigate(ctx, a.base+"login"); err != nil {
		return fmt.Errorf("navigate login: %w", err)
	}
	if err := a.page.WaitSettled(ctx); err != nil {
		return fmt.Errorf("wait login page: %w", err)
	}
	if err := fill(a.page, "#username", email); err != nil {
		return err
	}
	if err := fill(a.page, "#password", password); err != nil {
		return err
	}
	submit, ok, err := a.page.Element(`[type="submit"]`)
	if err != nil {
		return fmt.Errorf("query submit button: %w", err)
	}
	if !ok {
		return errors.New("submit button not found")
	}
	if err := submit.Click(); err != nil {
		return fmt.Errorf("click submit: %w", err)
	}
	if err := a.page.WaitSettled(ctx); err != nil {
		return fmt.Errorf("wait after login: %w", err)
	}
	if err := a.pace.WaitBetween(ctx, 2, 4); err != nil {
		return err
	}

	loc, err := a.page.URL()
	if err != nil {
		return fmt.Errorf("read landing url: %w", err)
	}
	if strings.Contains(loc, "feed") || strings.Contains(loc, "mynetwork") {
		a.log.Info("login successful", "url", loc)
		return nil
	}
	a.log.Warn("login not verified", "url", loc)
	return ErrAuthentication
}

func fill(p driver.Page, sel, text string) error {
	el, ok, err := p.Element(sel)
	if err != nil {
		return fmt.Errorf("query %s: %w", sel, err)
	}
	if !ok {
		return fmt.Errorf("element %s not found", sel)
	}
	if err := el.Fill(text); err != nil {
		return fmt.Errorf("fill %s: %w", sel, err)
	}
	return nil
}
