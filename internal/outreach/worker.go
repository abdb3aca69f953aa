package outreach

import (
	"context"
	"fmt"

	"github.com/boriloo/pythonScriptV2/internal/driver"
	"github.com/boriloo/pythonScriptV2/internal/logging"
	"github.com/boriloo/pythonScriptV2/internal/models"
	"github.com/boriloo/pythonScriptV2/internal/pacing"
)

// Skip reasons are business outcomes, not faults: a missing message button
// means the person is not a connection.
const (
	skipNoButton    = "Botao mensagem nao encontrado (nao e conexao)"
	skipNoTextField = "Campo de texto nao encontrado"
)

// Worker runs the locate/compose/send state machine for one profile at a
// time on a shared page.
type Worker struct {
	page     driver.Page
	pace     *pacing.Limiter
	template string
	dryRun   bool
	log      *logging.Logger
}

func NewWorker(page driver.Page, pace *pacing.Limiter, template string, dryRun bool, log *logging.Logger) *Worker {
	return &Worker{
		page:     page,
		pace:     pace,
		template: template,
		dryRun:   dryRun,
		log:      log.With("module", "outreach"),
	}
}

// Process visits one profile and resolves it to exactly one outcome. Driver
// faults never escape: they terminate this profile as an errored outcome and
// the run moves on to the next one.
func (w *Worker) Process(ctx context.Context, profile models.Profile) models.Outcome {
	out, err := w.attempt(ctx, profile)
	if err != nil {
		w.log.Warn("profile errored", "url", profile.URL, "err", err)
		return models.Errored(profile, err.Error())
	}
	return out
}

func (w *Worker) attempt(ctx context.Context, profile models.Profile) (models.Outcome, error) {
	if err := w.page.Navigate(ctx, profile.URL); err != nil {
		return models.Outcome{}, fmt.Errorf("navigate profile: %w", err)
	}
	if err := w.page.WaitSettled(ctx); err != nil {
		return models.Outcome{}, fmt.Errorf("wait profile page: %w", err)
	}
	if err := w.pace.WaitBetween(ctx, 2, 3); err != nil {
		return models.Outcome{}, err
	}

	btn, ok, err := locate(w.page, messageButtonStrategies)
	if err != nil {
		return models.Outcome{}, err
	}
	if !ok {
		return models.Skipped(profile, skipNoButton), nil
	}

	draft := models.BuildMessage(w.template, profile.Name, profile.Title)

	// Dry run stops here: the affordance exists, the message is composed,
	// nothing in the messaging UI is touched.
	if w.dryRun {
		return models.WouldSend(profile, draft), nil
	}

	if err := btn.Click(); err != nil {
		return models.Outcome{}, fmt.Errorf("click message button: %w", err)
	}
	if err := w.pace.WaitBetween(ctx, 1, 2); err != nil {
		return models.Outcome{}, err
	}

	field, ok, err := locate(w.page, textFieldStrategies)
	if err != nil {
		return models.Outcome{}, err
	}
	if !ok {
		return models.Skipped(profile, skipNoTextField), nil
	}
	if err := field.Click(); err != nil {
		return models.Outcome{}, fmt.Errorf("focus text field: %w", err)
	}
	if err := field.Fill(draft); err != nil {
		return models.Outcome{}, fmt.Errorf("fill message: %w", err)
	}
	if err := w.pace.WaitBetween(ctx, 0.8, 1.5); err != nil {
		return models.Outcome{}, err
	}

	sendBtn, ok, err := locate(w.page, sendButtonStrategies)
	if err != nil {
		return models.Outcome{}, err
	}
	if ok {
		if err := sendBtn.Click(); err != nil {
			return models.Outcome{}, fmt.Errorf("click send: %w", err)
		}
	} else {
		// No send control anywhere: submit from the text surface itself.
		if err := field.PressKeys("Control+Enter"); err != nil {
			return models.Outcome{}, fmt.Errorf("keyboard send: %w", err)
		}
	}
	if err := w.pace.WaitBetween(ctx, 1, 2); err != nil {
		return models.Outcome{}, err
	}
	return models.Sent(profile), nil
}
