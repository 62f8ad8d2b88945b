/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sources_test.go
Description: Tests for the example sources: JSON file decoding, paired CSV file
zipping with cell typing, and HTML table extraction over a local test server.
*/

package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-mapper/pkg/patterns"
	"github.com/kleascm/akaylee-mapper/pkg/values"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestJSONFileSourceBareList tests loading a bare list of example pairs
func TestJSONFileSourceBareList(t *testing.T) {
	path := writeFile(t, t.TempDir(), "examples.json", `[
		{"input": {"employee_id": "E1"}, "output": {"id": "E1"}},
		{"input": {"employee_id": "E2"}, "output": {"id": "E2"}}
	]`)

	pairs, err := NewJSONFileSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	id, ok := pairs[0].Input.Get("employee_id")
	require.True(t, ok)
	assert.Equal(t, "E1", id.StringVal())
}

// TestJSONFileSourceExamplesKey tests the wrapped document form
func TestJSONFileSourceExamplesKey(t *testing.T) {
	path := writeFile(t, t.TempDir(), "examples.json", `{
		"examples": [{"input": {"a": 1}, "output": {"b": 1}}]
	}`)

	pairs, err := NewJSONFileSource(path).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, pairs, 1)
}

// TestJSONFileSourceErrors tests missing files and malformed documents
func TestJSONFileSourceErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewJSONFileSource(filepath.Join(dir, "missing.json")).Load(context.Background())
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.json", `{"no_examples_key": true}`)
	_, err = NewJSONFileSource(bad).Load(context.Background())
	assert.Error(t, err)

	incomplete := writeFile(t, dir, "incomplete.json", `[{"input": {"a": 1}}]`)
	_, err = NewJSONFileSource(incomplete).Load(context.Background())
	assert.Error(t, err)
}

// TestCSVFileSource tests paired row zipping and cell typing
func TestCSVFileSource(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv", "employee_id,salary,note\nE1,95000,hi\nE2,72000.5,\n")
	out := writeFile(t, dir, "out.csv", "id,annual\nE1,95000\nE2,72000.5\n")

	pairs, err := NewCSVFileSource(in, out).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	salary, ok := pairs[0].Input.Get("salary")
	require.True(t, ok)
	assert.Equal(t, values.KindInt, salary.Kind(), "integral cells stay integers")

	salary2, _ := pairs[1].Input.Get("salary")
	assert.Equal(t, values.KindFloat, salary2.Kind())

	note, _ := pairs[1].Input.Get("note")
	assert.True(t, note.IsNull(), "empty cells are null")

	// Header order is record field order
	assert.Equal(t, []string{"employee_id", "salary", "note"}, pairs[0].Input.Keys())
}

// TestCSVFileSourceRowMismatch tests the row count check
func TestCSVFileSourceRowMismatch(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv", "a\n1\n2\n")
	out := writeFile(t, dir, "out.csv", "b\n1\n")

	_, err := NewCSVFileSource(in, out).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row count mismatch")
}

// TestWebTableSource tests HTML table extraction against a local server
func TestWebTableSource(t *testing.T) {
	const page = `<html><body>
		<table class="input">
			<tr><th>employee_id</th><th>salary</th></tr>
			<tr><td>E1</td><td>95000</td></tr>
			<tr><td>E2</td><td>72000</td></tr>
		</table>
		<table class="output">
			<tr><th>id</th><th>annual</th></tr>
			<tr><td>E1</td><td>95000.0</td></tr>
			<tr><td>E2</td><td>72000.0</td></tr>
		</table>
	</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	src := NewWebTableSource(srv.URL, "table.input", "table.output")
	src.SetClient(srv.Client())

	pairs, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	id, ok := pairs[1].Input.Get("employee_id")
	require.True(t, ok)
	assert.Equal(t, "E2", id.StringVal())

	salary, _ := pairs[0].Input.Get("salary")
	assert.Equal(t, values.KindInt, salary.Kind())

	// Extracted pairs feed straight into the parser
	parsed, err := patterns.ParseExamples(pairs)
	require.NoError(t, err)
	p, ok := parsed.PatternFor("id")
	require.True(t, ok)
	assert.Equal(t, patterns.FieldMapping, p.Type)
}

// TestWebTableSourceStatusError tests non-200 responses fail the load
func TestWebTableSourceStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewWebTableSource(srv.URL, "table.input", "table.output")
	src.SetClient(srv.Client())
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

// TestSourceNames tests the display identifiers
func TestSourceNames(t *testing.T) {
	assert.Equal(t, "json:a.json", NewJSONFileSource("a.json").Name())
	assert.Equal(t, "csv:in.csv", NewCSVFileSource("in.csv", "out.csv").Name())
	assert.Equal(t, "web:http://x", NewWebTableSource("http://x", "t.in", "t.out").Name())
}
