package titles

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Driver loads url through the control endpoint at wsURL and returns the
// document title.
type Driver interface {
	Title(ctx context.Context, wsURL, url string) (string, error)
}

// ChromeDriver speaks the DevTools protocol through chromedp. Every call gets
// its own connection and page, both closed before it returns.
type ChromeDriver struct {
	logger *zap.SugaredLogger
}

func NewChromeDriver(logger *zap.SugaredLogger) *ChromeDriver {
	return &ChromeDriver{logger: logger}
}

func (d *ChromeDriver) Title(ctx context.Context, wsURL, url string) (string, error) {
	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(ctx, wsURL)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(d.logger.Debugf),
		chromedp.WithErrorf(d.logger.Debugf),
	)
	defer cancelTab()

	var title string
	if err := chromedp.Run(tabCtx,
		navigateUntilDOMContentLoaded(url),
		chromedp.WaitReady("title", chromedp.ByQuery),
		chromedp.TextContent("title", &title, chromedp.ByQuery),
	); err != nil {
		return "", err
	}

	return strings.Join(strings.Fields(title), " "), nil
}

// navigateUntilDOMContentLoaded issues Page.navigate and returns once the new
// document fires DOMContentLoaded, without waiting for subresources.
func navigateUntilDOMContentLoaded(url string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		listenCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		loaded := make(chan struct{})
		var once sync.Once
		chromedp.ListenTarget(listenCtx, func(ev any) {
			if _, ok := ev.(*page.EventDomContentEventFired); ok {
				once.Do(func() { close(loaded) })
			}
		})

		var res page.NavigateReturns
		if err := cdp.Execute(ctx, page.CommandNavigate, page.Navigate(url), &res); err != nil {
			return fmt.Errorf("navigate %s: %w", url, err)
		}
		if res.ErrorText != "" {
			return fmt.Errorf("navigate %s: %s", url, res.ErrorText)
		}

		select {
		case <-loaded:
			return nil
		case <-ctx.Done():
			return fmt.Errorf("wait for DOMContentLoaded on %s: %w", url, ctx.Err())
		}
	})
}
