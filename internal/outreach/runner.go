package outreach

import (
	"context"
	"fmt"

	"github.com/boriloo/pythonScriptV2/internal/auth"
	"github.com/boriloo/pythonScriptV2/internal/driver"
	"github.com/boriloo/pythonScriptV2/internal/logging"
	"github.com/boriloo/pythonScriptV2/internal/models"
	"github.com/boriloo/pythonScriptV2/internal/pacing"
	"github.com/boriloo/pythonScriptV2/internal/search"
)

// Runner wires authentication, search and the per-profile worker into one
// strictly sequential outreach pass. Sequential is the point: the randomized
// gaps between actions are the anti-detection mechanism, and parallel visits
// would defeat them.
type Runner struct {
	page    driver.Page
	base    string
	cfg     models.RunConfig
	pace    *pacing.Limiter
	log     *logging.Logger
	baseLog *logging.Logger // untagged, handed to the sub-services
}

func NewRunner(page driver.Page, baseURL string, cfg models.RunConfig, pace *pacing.Limiter, log *logging.Logger) *Runner {
	if pace == nil {
		pace = pacing.New(cfg.DelayMin, cfg.DelayMax)
	}
	return &Runner{
		page:    page,
		base:    baseURL,
		cfg:     cfg,
		pace:    pace,
		log:     log.With("module", "runner"),
		baseLog: log,
	}
}

// Run executes the whole pipeline and returns one well-formed RunResult.
// Only authentication failure (or a search-level fault) aborts the run;
// everything at the profile level is absorbed into outcomes.
func (r *Runner) Run(ctx context.Context) (models.RunResult, error) {
	authn := auth.New(r.page, r.base, r.pace, r.baseLog)
	if err := authn.Login(ctx, r.cfg.Email, r.cfg.Password); err != nil {
		return models.RunResult{}, err
	}

	searcher := search.New(r.page, r.base, r.pace, r.baseLog)
	worker := NewWorker(r.page, r.pace, r.cfg.MessageTemplate, r.cfg.DryRun, r.baseLog)
	agg := NewAggregator()

	for _, keyword := range r.cfg.Keywords {
		if agg.TotalSent() >= r.cfg.MaxMessages {
			break
		}
		profiles, err := searcher.Find(ctx, keyword)
		if err != nil {
			return models.RunResult{}, fmt.Errorf("search %q: %w", keyword, err)
		}
		for _, profile := range profiles {
			if agg.TotalSent() >= r.cfg.MaxMessages {
				break
			}
			if err := r.pace.Wait(ctx); err != nil {
				return models.RunResult{}, err
			}
			out := worker.Process(ctx, profile)
			agg.Add(out)
			r.log.Info("profile processed",
				"url", profile.URL, "outcome", out.Kind.String(), "total_sent", agg.TotalSent())
			// Longer trailing gap after every profile, whatever happened.
			if err := r.pace.WaitBetweenProfiles(ctx); err != nil {
				return models.RunResult{}, err
			}
		}
	}

	res := agg.Result(r.cfg.DryRun)
	r.log.Info("run finished",
		"total_sent", res.Summary.TotalSent,
		"total_skipped", res.Summary.TotalSkipped,
		"total_errors", res.Summary.TotalErrors,
		"mode", res.Summary.Mode)
	return res, nil
}
