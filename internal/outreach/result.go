package outreach

import "github.com/boriloo/pythonScriptV2/internal/models"

// Mode labels echoed in the run summary.
const (
	modeDryRun = "dry_run (simulacao)"
	modeReal   = "real (mensagens enviadas)"
)

// Aggregator files each outcome into exactly one bucket and keeps the shared
// send counter. Dry-run records count toward the quota like real sends.
type Aggregator struct {
	totalSent int
	wouldSend []models.WouldSendEntry
	sent      []models.Profile
	skipped   []models.SkippedEntry
	errors    []models.ErrorEntry
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		wouldSend: []models.WouldSendEntry{},
		sent:      []models.Profile{},
		skipped:   []models.SkippedEntry{},
		errors:    []models.ErrorEntry{},
	}
}

func (a *Aggregator) Add(o models.Outcome) {
	switch o.Kind {
	case models.OutcomeWouldSend:
		a.wouldSend = append(a.wouldSend, models.WouldSendEntry{
			Profile:        o.Profile,
			MessagePreview: o.Message,
		})
		a.totalSent++
	case models.OutcomeSent:
		a.sent = append(a.sent, o.Profile)
		a.totalSent++
	case models.OutcomeSkipped:
		a.skipped = append(a.skipped, models.SkippedEntry{Profile: o.Profile, Reason: o.Reason})
	case models.OutcomeErrored:
		a.errors = append(a.errors, models.ErrorEntry{Profile: o.Profile, Error: o.Detail})
	}
}

// TotalSent counts real and simulated sends; the quota check runs against it.
func (a *Aggregator) TotalSent() int { return a.totalSent }

func (a *Aggregator) Result(dryRun bool) models.RunResult {
	mode := modeReal
	if dryRun {
		mode = modeDryRun
	}
	return models.RunResult{
		Success: true,
		DryRun:  dryRun,
		Summary: models.Summary{
			Mode:         mode,
			TotalSent:    a.totalSent,
			TotalSkipped: len(a.skipped),
			TotalErrors:  len(a.errors),
		},
		WouldSend: a.wouldSend,
		Sent:      a.sent,
		Skipped:   a.skipped,
		Errors:    a.errors,
	}
}
