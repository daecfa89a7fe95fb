// Package browser owns the single Chromium session used for the whole run.
// The browser is the one shared resource in the program: created once
// before the holdings loop, reused for every navigation, torn down exactly
// once afterwards.
package browser

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"pricecheck/config"
)

// Session is a running Chromium instance plus its devtools connection.
type Session struct {
	ctx         context.Context
	cancels     []context.CancelFunc
	waitTimeout time.Duration
}

// NewSession launches Chromium in the locked-down posture used for
// scraping: incognito, extensions and plugin discovery disabled, the
// default local profile. The binary location comes from config and falls
// back to the snap install path.
func NewSession(ctx context.Context, cfg *config.Config) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("incognito", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-plugins-discovery", true),
		chromedp.Flag("profile-directory", "Default"),
	)
	if cfg.ChromeBin != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromeBin))
	}
	if !cfg.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	taskCtx, taskCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(logrus.Debugf))
	s := &Session{
		ctx:         taskCtx,
		cancels:     []context.CancelFunc{taskCancel, allocCancel},
		waitTimeout: time.Duration(cfg.Timeout) * time.Second,
	}

	// Run an empty task list so launch failures (missing binary etc)
	// surface here rather than on the first navigation
	if err := chromedp.Run(taskCtx); err != nil {
		s.Close()
		return nil, errors.Wrap(err, "starting browser")
	}
	logrus.Debugf("Browser session started, element timeout %s", s.waitTimeout)
	return s, nil
}

// Navigate loads url, replacing whatever page the session showed before.
func (s *Session) Navigate(url string) error {
	return errors.Wrapf(chromedp.Run(s.ctx, chromedp.Navigate(url)), "navigating to %s", url)
}

// Text returns the text content of the first element matching the XPath
// expression on the current page, waiting up to the configured element
// timeout for it to appear. A timeout comes back as an error, which the
// site parsers treat the same as element-not-found. The lookup runs on the
// session's devtools context; ctx only carries caller cancellation.
func (s *Session) Text(ctx context.Context, xpath string) (string, error) {
	runCtx, cancel := context.WithTimeout(s.ctx, s.waitTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var text string
	if err := chromedp.Run(runCtx, chromedp.Text(xpath, &text, chromedp.BySearch)); err != nil {
		return "", errors.Wrapf(err, "locating %q", xpath)
	}
	return text, nil
}

// Close tears the browser down. Safe to call more than once.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
}
