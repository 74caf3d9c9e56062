// Package browser fetches rendered article text through a headless Chrome
// instance. The browser is scoped per call: launched, used, and torn down
// within one request, so no OS processes outlive the request.
package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/karimhaddad/estate-scout/internal/metrics"
)

// ErrEmptyContent is returned when the page yields no extractable text.
var ErrEmptyContent = errors.New("page yielded no text content")

// Fetcher extracts the readable text of a web page.
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// stripChromeJS removes navigation, ads, and script noise before extracting
// the page's visible text.
const stripChromeJS = `(() => {
	["nav", "footer", "aside", "script", "style", ".ad", "iframe"].forEach((selector) => {
		document.querySelectorAll(selector).forEach((el) => el.remove());
	});
	return document.body.innerText;
})()`

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ChromeFetcher implements Fetcher with chromedp.
type ChromeFetcher struct {
	execPath    string
	pageTimeout time.Duration
}

// ChromeOption configures the ChromeFetcher.
type ChromeOption func(*ChromeFetcher)

// WithExecPath pins the browser binary instead of auto-discovering one.
func WithExecPath(path string) ChromeOption {
	return func(f *ChromeFetcher) {
		f.execPath = path
	}
}

// WithPageTimeout bounds a single page load and extraction.
func WithPageTimeout(d time.Duration) ChromeOption {
	return func(f *ChromeFetcher) {
		f.pageTimeout = d
	}
}

// NewChromeFetcher creates a per-request headless Chrome fetcher.
func NewChromeFetcher(opts ...ChromeOption) *ChromeFetcher {
	f := &ChromeFetcher{
		execPath:    findChromeBinary(),
		pageTimeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchText loads the URL in a fresh headless browser, strips non-content
// elements, and returns the remaining visible text. The browser is always
// torn down before returning, on every exit path.
func (f *ChromeFetcher) FetchText(ctx context.Context, url string) (string, error) {
	start := time.Now()
	defer func() {
		metrics.BrowserFetchDuration.Observe(time.Since(start).Seconds())
	}()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	if f.execPath != "" {
		opts = append(opts, chromedp.ExecPath(f.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(
		allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}),
	)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, f.pageTimeout)
	defer cancelRun()

	var text string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.Evaluate(stripChromeJS, &text),
	)
	if err != nil {
		return "", fmt.Errorf("fetching page %s: %w", url, err)
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyContent
	}
	return text, nil
}

// findChromeBinary locates a Chrome or Chromium binary, honoring CHROME_BIN
// first. An empty return lets chromedp fall back to its own discovery.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
