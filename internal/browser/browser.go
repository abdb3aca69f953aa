// Package browser implements the driver interfaces on go-rod. One Browser is
// scoped to one outreach run: launched at the start, closed before the run
// reports, whatever the outcome.
package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/boriloo/pythonScriptV2/internal/config"
	"github.com/boriloo/pythonScriptV2/internal/driver"
	"github.com/boriloo/pythonScriptV2/internal/logging"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/120.0.0.0 Safari/537.36"

type Browser struct {
	rod *rod.Browser
	cfg *config.Config
	log *logging.Logger
}

func New(ctx context.Context, cfg *config.Config) (*Browser, error) {
	log := logging.New(cfg.Logging.Level).With("module", "browser")
	l := launcher.New().
		Leakless(false).
		Headless(cfg.Browser.Headless).
		Set("no-sandbox").
		Set("disable-setuid-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu")
	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	rb := rod.New().ControlURL(url).Context(ctx)
	if err := rb.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	log.Info("browser launched", "headless", cfg.Browser.Headless)
	return &Browser{rod: rb, cfg: cfg, log: log}, nil
}

// NewPage opens a stealth tab with the fixed viewport and user agent the
// rest of the pipeline assumes.
func (b *Browser) NewPage(ctx context.Context) (driver.Page, error) {
	p, err := stealth.Page(b.rod)
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	p = p.Context(ctx)
	if err := p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1280,
		Height:            800,
		DeviceScaleFactor: 1,
	}); err != nil {
		b.log.Warn("set viewport failed", "err", err)
	}
	if err := (proto.EmulationSetUserAgentOverride{UserAgent: userAgent}).Call(p); err != nil {
		b.log.Warn("set user agent failed", "err", err)
	}
	return &page{p: p}, nil
}

func (b *Browser) Close() {
	if b.rod != nil {
		_ = b.rod.Close()
	}
}
