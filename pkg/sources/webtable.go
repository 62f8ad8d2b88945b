/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: webtable.go
Description: Web table example source. Fetches a static HTML page over HTTP and
extracts paired input/output example records from two tables on it.
*/

package sources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"github.com/kleascm/akaylee-mapper/pkg/patterns"
)

// WebTableSource loads example pairs from two HTML tables on one page: one
// table holding input records, one holding the corresponding outputs, row
// for row
type WebTableSource struct {
	url            string
	inputSelector  string
	outputSelector string
	client         *http.Client
}

// NewWebTableSource creates a source for the given page and table selectors
func NewWebTableSource(url, inputSelector, outputSelector string) *WebTableSource {
	return &WebTableSource{
		url:            url,
		inputSelector:  inputSelector,
		outputSelector: outputSelector,
		client:         http.DefaultClient,
	}
}

// SetClient overrides the HTTP client, mainly for tests
func (s *WebTableSource) SetClient(client *http.Client) {
	s.client = client
}

// Name identifies the source
func (s *WebTableSource) Name() string { return "web:" + s.url }

// Description describes the source for display
func (s *WebTableSource) Description() string {
	return fmt.Sprintf("HTML tables %q and %q at %s", s.inputSelector, s.outputSelector, s.url)
}

// Load fetches the page and extracts the paired records
func (s *WebTableSource) Load(ctx context.Context) ([]patterns.ExamplePair, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, s.url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return pairsFromTables(doc, s.inputSelector, s.outputSelector)
}

// pairsFromTables extracts both tables and zips their rows into pairs
func pairsFromTables(doc *goquery.Document, inputSelector, outputSelector string) ([]patterns.ExamplePair, error) {
	inputs, err := parseTable(doc, inputSelector)
	if err != nil {
		return nil, fmt.Errorf("input table: %w", err)
	}
	outputs, err := parseTable(doc, outputSelector)
	if err != nil {
		return nil, fmt.Errorf("output table: %w", err)
	}
	if len(inputs) != len(outputs) {
		return nil, fmt.Errorf("row count mismatch: %d input rows, %d output rows", len(inputs), len(outputs))
	}

	pairs := make([]patterns.ExamplePair, len(inputs))
	for i := range inputs {
		pairs[i] = patterns.ExamplePair{Input: inputs[i], Output: outputs[i]}
	}
	return pairs, nil
}
