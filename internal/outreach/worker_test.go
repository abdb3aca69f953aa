package outreach

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/boriloo/pythonScriptV2/internal/driver"
	"github.com/boriloo/pythonScriptV2/internal/logging"
	"github.com/boriloo/pythonScriptV2/internal/models"
	"github.com/boriloo/pythonScriptV2/internal/pacing"
)

const testTemplate = "Ola {nome}, vi seu trabalho como {cargo}."

var testProfile = models.Profile{
	Name:  "Maria Clara Souza",
	Title: "Engenheira de Dados",
	URL:   "https://www.linkedin.com/in/maria",
}

func noSleep() *pacing.Limiter {
	return pacing.NewWithSleep(0, 0, func(context.Context, time.Duration) error { return nil })
}

func newTestWorker(p driver.Page, dryRun bool) *Worker {
	return NewWorker(p, noSleep(), testTemplate, dryRun, logging.New("error"))
}

func profilePage(dom *driver.FakeDOM) *driver.FakePage {
	p := driver.NewFakePage()
	p.Routes[testProfile.URL] = dom
	return p
}

func TestProcessDryRunRecordsWithoutTouchingUI(t *testing.T) {
	btn := &driver.FakeElement{TextContent: "Mensagem"}
	p := profilePage(&driver.FakeDOM{
		Matches: map[string]*driver.FakeElement{"button|Mensagem": btn},
	})
	out := newTestWorker(p, true).Process(context.Background(), testProfile)
	if out.Kind != models.OutcomeWouldSend {
		t.Fatalf("outcome = %s, want would_send", out.Kind)
	}
	if !strings.Contains(out.Message, "Ola Maria,") || !strings.Contains(out.Message, "Engenheira de Dados") {
		t.Errorf("preview = %q", out.Message)
	}
	if btn.Clicks != 0 {
		t.Error("dry run must not click the message button")
	}
}

func TestProcessSkipsWhenNoMessageButton(t *testing.T) {
	p := profilePage(&driver.FakeDOM{})
	out := newTestWorker(p, false).Process(context.Background(), testProfile)
	if out.Kind != models.OutcomeSkipped {
		t.Fatalf("outcome = %s, want skipped", out.Kind)
	}
	if !strings.Contains(out.Reason, "nao e conexao") {
		t.Errorf("reason = %q, want the not-a-connection reason", out.Reason)
	}
}

func TestProcessSendsThroughSendButton(t *testing.T) {
	btn := &driver.FakeElement{TextContent: "Message"}
	field := &driver.FakeElement{}
	send := &driver.FakeElement{}
	p := profilePage(&driver.FakeDOM{
		Matches:  map[string]*driver.FakeElement{"button|Message": btn},
		Elements: map[string]*driver.FakeElement{".msg-form__contenteditable": field, ".msg-form__send-button": send},
	})
	out := newTestWorker(p, false).Process(context.Background(), testProfile)
	if out.Kind != models.OutcomeSent {
		t.Fatalf("outcome = %s (%s%s), want sent", out.Kind, out.Reason, out.Detail)
	}
	if btn.Clicks != 1 || send.Clicks != 1 {
		t.Errorf("clicks: button=%d send=%d, want 1 and 1", btn.Clicks, send.Clicks)
	}
	if len(field.Filled) != 1 || !strings.Contains(field.Filled[0], "Ola Maria,") {
		t.Errorf("filled = %v, want the rendered draft", field.Filled)
	}
}

func TestProcessFallsBackToKeyboardSend(t *testing.T) {
	btn := &driver.FakeElement{TextContent: "Message"}
	field := &driver.FakeElement{}
	p := profilePage(&driver.FakeDOM{
		Matches:  map[string]*driver.FakeElement{"button|Message": btn},
		Elements: map[string]*driver.FakeElement{".msg-form__contenteditable": field},
	})
	out := newTestWorker(p, false).Process(context.Background(), testProfile)
	if out.Kind != models.OutcomeSent {
		t.Fatalf("outcome = %s, want sent", out.Kind)
	}
	if len(field.Pressed) != 1 || field.Pressed[0] != "Control+Enter" {
		t.Errorf("pressed = %v, want the keyboard-shortcut submission", field.Pressed)
	}
}

func TestProcessSkipsWhenNoTextField(t *testing.T) {
	btn := &driver.FakeElement{TextContent: "Message"}
	p := profilePage(&driver.FakeDOM{
		Matches: map[string]*driver.FakeElement{"button|Message": btn},
	})
	out := newTestWorker(p, false).Process(context.Background(), testProfile)
	if out.Kind != models.OutcomeSkipped {
		t.Fatalf("outcome = %s, want skipped", out.Kind)
	}
	if out.Reason != skipNoTextField {
		t.Errorf("reason = %q, want %q", out.Reason, skipNoTextField)
	}
}

func TestProcessNavigationFailureBecomesErrored(t *testing.T) {
	p := driver.NewFakePage()
	p.NavErr[testProfile.URL] = errors.New("net::ERR_TIMED_OUT")
	out := newTestWorker(p, false).Process(context.Background(), testProfile)
	if out.Kind != models.OutcomeErrored {
		t.Fatalf("outcome = %s, want errored", out.Kind)
	}
	if !strings.Contains(out.Detail, "ERR_TIMED_OUT") {
		t.Errorf("detail = %q, want the driver fault", out.Detail)
	}
}

func TestProcessDriverFaultDuringLocateBecomesErrored(t *testing.T) {
	p := profilePage(&driver.FakeDOM{
		QueryErr: map[string]error{"button|Mensagem": errors.New("session closed")},
	})
	out := newTestWorker(p, false).Process(context.Background(), testProfile)
	if out.Kind != models.OutcomeErrored {
		t.Fatalf("outcome = %s, want errored", out.Kind)
	}
}
