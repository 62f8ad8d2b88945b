/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: browser.go
Description: Browser-backed example source using chromedp. Renders JavaScript-heavy
pages in headless Chrome, with custom header support, then extracts paired
input/output example tables from the rendered DOM.
*/

package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/kleascm/akaylee-mapper/pkg/patterns"
)

// BrowserSource loads example tables from pages that only materialize
// after JavaScript runs. Each Load launches a fresh headless browser.
type BrowserSource struct {
	url            string
	inputSelector  string
	outputSelector string
	headers        map[string]string
	waitSelector   string
}

// NewBrowserSource creates a browser-backed source for the given page and
// table selectors
func NewBrowserSource(url, inputSelector, outputSelector string) *BrowserSource {
	return &BrowserSource{
		url:            url,
		inputSelector:  inputSelector,
		outputSelector: outputSelector,
		headers:        make(map[string]string),
	}
}

// SetHeaders sets custom headers applied to all browser requests
func (s *BrowserSource) SetHeaders(headers map[string]string) {
	for k, v := range headers {
		s.headers[k] = v
	}
}

// SetWaitSelector makes Load block until the selector is visible before
// reading the DOM, for pages that populate their tables asynchronously
func (s *BrowserSource) SetWaitSelector(selector string) {
	s.waitSelector = selector
}

// Name identifies the source
func (s *BrowserSource) Name() string { return "browser:" + s.url }

// Description describes the source for display
func (s *BrowserSource) Description() string {
	return fmt.Sprintf("rendered HTML tables %q and %q at %s", s.inputSelector, s.outputSelector, s.url)
}

// Load renders the page in headless Chrome and extracts the paired records
func (s *BrowserSource) Load(ctx context.Context) ([]patterns.ExamplePair, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	actions := []chromedp.Action{network.Enable()}
	if len(s.headers) > 0 {
		hdrs := make(network.Headers, len(s.headers))
		for k, v := range s.headers {
			hdrs[k] = v
		}
		actions = append(actions, network.SetExtraHTTPHeaders(hdrs))
	}
	actions = append(actions, chromedp.Navigate(s.url))
	if s.waitSelector != "" {
		actions = append(actions, chromedp.WaitVisible(s.waitSelector))
	}

	var dom string
	actions = append(actions, chromedp.OuterHTML("html", &dom))
	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(dom))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered DOM: %w", err)
	}
	return pairsFromTables(doc, s.inputSelector, s.outputSelector)
}
