package outreach

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/boriloo/pythonScriptV2/internal/auth"
	"github.com/boriloo/pythonScriptV2/internal/driver"
	"github.com/boriloo/pythonScriptV2/internal/logging"
	"github.com/boriloo/pythonScriptV2/internal/models"
)

const (
	base      = "https://www.linkedin.com/"
	entrySel  = ".reusable-search__result-container"
	anchorSel = ".entity-result__title-text a"
)

func runConfig(dryRun bool, maxMessages int, keywords ...string) models.RunConfig {
	return models.RunConfig{
		Email:           "user@example.com",
		Password:        "pw",
		Keywords:        keywords,
		MaxMessages:     maxMessages,
		DelayMin:        0,
		DelayMax:        0,
		DryRun:          dryRun,
		MessageTemplate: testTemplate,
	}
}

// pipelinePage builds a fake site: working login, one search listing per
// keyword, and a profile page per candidate URL.
func pipelinePage(keyword string, candidates ...string) *driver.FakePage {
	p := driver.NewFakePage()
	form := &driver.FakeDOM{
		Elements: map[string]*driver.FakeElement{
			"#username":       {},
			"#password":       {},
			`[type="submit"]`: {},
		},
	}
	// the fake applies redirects at navigation time, so the form has to be
	// routed at the landing location too
	p.Routes[base+"login"] = form
	p.Routes[base+"feed/"] = form
	p.Redirects[base+"login"] = base + "feed/"

	entries := make([]*driver.FakeElement, 0, len(candidates))
	for i, u := range candidates {
		entries = append(entries, &driver.FakeElement{
			Children: map[string]*driver.FakeElement{
				anchorSel: {
					TextContent: fmt.Sprintf("Pessoa %d Silva", i+1),
					Attrs:       map[string]string{"href": u},
				},
			},
		})
	}
	searchURL := base + "search/results/people/?keywords=" + keyword + "&origin=GLOBAL_SEARCH_HEADER"
	p.Routes[searchURL] = &driver.FakeDOM{Lists: map[string][]*driver.FakeElement{entrySel: entries}}
	return p
}

func messageable() *driver.FakeDOM {
	return &driver.FakeDOM{
		Matches:  map[string]*driver.FakeElement{"button|Mensagem": {TextContent: "Mensagem"}},
		Elements: map[string]*driver.FakeElement{".msg-form__contenteditable": {}, ".msg-form__send-button": {}},
	}
}

func candidateURLs(n int) []string {
	urls := make([]string, n)
	for i := range urls {
		urls[i] = fmt.Sprintf("%sin/pessoa-%d", base, i+1)
	}
	return urls
}

func TestRunDryRunStopsAtQuota(t *testing.T) {
	urls := candidateURLs(5)
	p := pipelinePage("kw", urls...)
	for _, u := range urls {
		p.Routes[u] = messageable()
	}
	r := NewRunner(p, base, runConfig(true, 2, "kw"), noSleep(), logging.New("error"))
	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.WouldSend) != 2 || len(res.Sent) != 0 {
		t.Fatalf("would_send=%d sent=%d, want 2 and 0", len(res.WouldSend), len(res.Sent))
	}
	if res.Summary.TotalSent != 2 {
		t.Errorf("totalSent = %d, want 2", res.Summary.TotalSent)
	}
	// candidates beyond the quota are never visited
	for _, u := range urls[2:] {
		for _, visited := range p.Navigated {
			if visited == u {
				t.Errorf("profile %s visited after quota was reached", u)
			}
		}
	}
}

func TestRunRealModeLeavesWouldSendEmpty(t *testing.T) {
	urls := candidateURLs(2)
	p := pipelinePage("kw", urls...)
	for _, u := range urls {
		p.Routes[u] = messageable()
	}
	r := NewRunner(p, base, runConfig(false, 10, "kw"), noSleep(), logging.New("error"))
	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.WouldSend) != 0 || len(res.Sent) != 2 {
		t.Fatalf("would_send=%d sent=%d, want 0 and 2", len(res.WouldSend), len(res.Sent))
	}
	if !strings.Contains(res.Summary.Mode, "real") {
		t.Errorf("mode = %q", res.Summary.Mode)
	}
}

func TestRunAbortsBeforeSearchOnAuthFailure(t *testing.T) {
	p := pipelinePage("kw", candidateURLs(1)...)
	p.Redirects[base+"login"] = base + "login" // stays on the login page
	r := NewRunner(p, base, runConfig(false, 10, "kw"), noSleep(), logging.New("error"))
	_, err := r.Run(context.Background())
	if !errors.Is(err, auth.ErrAuthentication) {
		t.Fatalf("err = %v, want ErrAuthentication", err)
	}
	for _, u := range p.Navigated {
		if strings.Contains(u, "search/results") {
			t.Error("search must not run after a failed login")
		}
	}
}

func TestRunPartitionsOutcomesDisjointly(t *testing.T) {
	urls := candidateURLs(3)
	p := pipelinePage("kw", urls...)
	p.Routes[urls[0]] = messageable()
	p.Routes[urls[1]] = &driver.FakeDOM{} // no message button -> skipped
	p.NavErr[urls[2]] = errors.New("net::ERR_ABORTED")
	r := NewRunner(p, base, runConfig(false, 10, "kw"), noSleep(), logging.New("error"))
	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Sent) != 1 || len(res.Skipped) != 1 || len(res.Errors) != 1 {
		t.Fatalf("sent=%d skipped=%d errors=%d, want 1 each", len(res.Sent), len(res.Skipped), len(res.Errors))
	}
	seen := map[string]int{}
	for _, pr := range res.Sent {
		seen[pr.URL]++
	}
	for _, e := range res.Skipped {
		seen[e.URL]++
	}
	for _, e := range res.Errors {
		seen[e.URL]++
	}
	for u, n := range seen {
		if n != 1 {
			t.Errorf("profile %s appears in %d buckets, want exactly 1", u, n)
		}
	}
	if res.Summary.TotalSent != 1 || res.Summary.TotalSkipped != 1 || res.Summary.TotalErrors != 1 {
		t.Errorf("summary = %+v", res.Summary)
	}
}

func TestRunQuotaSpansKeywords(t *testing.T) {
	urls := candidateURLs(2)
	p := pipelinePage("first", urls...)
	for _, u := range urls {
		p.Routes[u] = messageable()
	}
	// the second keyword's search page is never routed; reaching it would
	// navigate and yield zero profiles, so assert it is never visited
	r := NewRunner(p, base, runConfig(true, 2, "first", "second"), noSleep(), logging.New("error"))
	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Summary.TotalSent != 2 {
		t.Fatalf("totalSent = %d, want 2", res.Summary.TotalSent)
	}
	for _, u := range p.Navigated {
		if strings.Contains(u, "keywords=second") {
			t.Error("second keyword searched after quota was already met")
		}
	}
}
