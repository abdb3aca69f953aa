package models

// OutcomeKind is the terminal classification of one processed profile.
type OutcomeKind int

const (
	OutcomeWouldSend OutcomeKind = iota
	OutcomeSent
	OutcomeSkipped
	OutcomeErrored
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeWouldSend:
		return "would_send"
	case OutcomeSent:
		return "sent"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeErrored:
		return "errored"
	}
	return "unknown"
}

// Outcome is the single result of processing one profile. Every profile that
// enters the worker resolves to exactly one Outcome.
type Outcome struct {
	Kind    OutcomeKind
	Profile Profile
	Message string // rendered draft, set for would-send outcomes
	Reason  string // set for skipped outcomes
	Detail  string // set for errored outcomes
}

func WouldSend(p Profile, preview string) Outcome {
	return Outcome{Kind: OutcomeWouldSend, Profile: p, Message: preview}
}

func Sent(p Profile) Outcome {
	return Outcome{Kind: OutcomeSent, Profile: p}
}

func Skipped(p Profile, reason string) Outcome {
	return Outcome{Kind: OutcomeSkipped, Profile: p, Reason: reason}
}

func Errored(p Profile, detail string) Outcome {
	return Outcome{Kind: OutcomeErrored, Profile: p, Detail: detail}
}
