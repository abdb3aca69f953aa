package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/boriloo/pythonScriptV2/internal/driver"
	"github.com/boriloo/pythonScriptV2/internal/logging"
	"github.com/boriloo/pythonScriptV2/internal/models"
	"github.com/boriloo/pythonScriptV2/internal/pacing"
)

// Result-listing selectors.
const (
	entrySel = ".reusable-search__result-container"
	nameSel  = ".entity-result__title-text a"
	titleSel = ".entity-result__primary-subtitle"
)

type Searcher struct {
	page driver.Page
	base string
	pace *pacing.Limiter
	log  *logging.Logger
}

func New(page driver.Page, baseURL string, pace *pacing.Limiter, log *logging.Logger) *Searcher {
	return &Searcher{page: page, base: baseURL, pace: pace, log: log.With("module", "search")}
}

// Find runs one people-search for the keyword and extracts candidate
// profiles from the result listing. Malformed entries are dropped, not
// reported; they never become profiles.
func (s *Searcher) Find(ctx context.Context, keyword string) ([]models.Profile, error) {
	searchURL := fmt.Sprintf(
		"%ssearch/results/people/?keywords=%s&origin=GLOBAL_SEARCH_HEADER",
		s.base, encodeKeyword(keyword),
	)
	if err := s.page.Navigate(ctx, searchURL); err != nil {
		return nil, fmt.Errorf("navigate search: %w", err)
	}
	if err := s.page.WaitSettled(ctx); err != nil {
		return nil, fmt.Errorf("wait search results: %w", err)
	}
	if err := s.pace.WaitBetween(ctx, 2, 3); err != nil {
		return nil, err
	}

	entries, err := s.page.Elements(entrySel)
	if err != nil {
		return nil, fmt.Errorf("query result entries: %w", err)
	}
	var profiles []models.Profile
	for _, entry := range entries {
		p, ok := extract(entry)
		if !ok {
			s.log.Debug("dropped malformed result entry", "keyword", keyword)
			continue
		}
		profiles = append(profiles, p)
	}
	s.log.Info("search extracted", "keyword", keyword, "profiles", len(profiles))
	return profiles, nil
}

// extract pulls one Profile out of a result entry. The title-text anchor
// carries both the display name and the href. Entries missing it, entries
// whose link has no personal-profile segment, and entries hitting a driver
// fault are all dropped without disturbing the rest of the listing.
func extract(entry driver.Element) (models.Profile, bool) {
	anchor, ok, err := entry.Element(nameSel)
	if err != nil || !ok {
		return models.Profile{}, false
	}
	raw, err := anchor.Text()
	if err != nil {
		return models.Profile{}, false
	}
	name := firstLine(raw)
	if name == "" {
		return models.Profile{}, false
	}
	href, ok, err := anchor.Attribute("href")
	if err != nil || !ok {
		return models.Profile{}, false
	}
	if !strings.Contains(href, "/in/") {
		return models.Profile{}, false
	}

	title := ""
	if titleEl, ok, err := entry.Element(titleSel); err == nil && ok {
		if t, err := titleEl.Text(); err == nil {
			title = strings.TrimSpace(t)
		}
	}
	return models.Profile{
		Name:  name,
		Title: title,
		URL:   stripQuery(href),
	}, true
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func stripQuery(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	return u
}

// encodeKeyword escapes the keyword for the search URL, with spaces as %20.
func encodeKeyword(kw string) string {
	return strings.ReplaceAll(url.QueryEscape(kw), "+", "%20")
}
