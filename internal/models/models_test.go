package models

import (
	"strings"
	"testing"
)

const template = "Ola {nome}, tudo bem?\n\n" +
	"Vi seu perfil e fiquei interessado no seu trabalho como {cargo}.\n" +
	"Podemos conversar?"

func TestBuildMessageFirstNameAndFallbackRole(t *testing.T) {
	msg := BuildMessage(template, "Maria Clara Souza", "")
	if !strings.Contains(msg, "Ola Maria,") {
		t.Errorf("message %q should address the first name only", msg)
	}
	if strings.Contains(msg, "Clara") {
		t.Errorf("message %q should not contain the rest of the name", msg)
	}
	if !strings.Contains(msg, "como "+DefaultRole+".") {
		t.Errorf("message %q should fall back to %q for an empty title", msg, DefaultRole)
	}
}

func TestBuildMessageKeepsTitleVerbatim(t *testing.T) {
	msg := BuildMessage(template, "Maria Clara Souza", "Engenheira de Dados")
	if !strings.Contains(msg, "como Engenheira de Dados.") {
		t.Errorf("message %q should keep the title verbatim", msg)
	}
}

func TestBuildMessageEmptyName(t *testing.T) {
	msg := BuildMessage("oi {nome}", "", "x")
	if msg != "oi " {
		t.Errorf("message = %q, want placeholder replaced with empty name", msg)
	}
}

func TestOutcomeKindStrings(t *testing.T) {
	cases := map[OutcomeKind]string{
		OutcomeWouldSend: "would_send",
		OutcomeSent:      "sent",
		OutcomeSkipped:   "skipped",
		OutcomeErrored:   "errored",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("kind %d = %q, want %q", k, got, want)
		}
	}
}
