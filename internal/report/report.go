// Package report renders search results for the command line.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"

	"github.com/sells-group/entity-search/internal/model"
)

// Format names an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
)

// ParseFormat accepts a case-insensitive format name. Empty means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", eris.Errorf("report: unknown format %q (want table, json, csv or xlsx)", s)
}

// Write renders results to w in the given format.
func Write(w io.Writer, f Format, results []model.SearchResult) error {
	switch f {
	case FormatTable, "":
		return WriteTable(w, results)
	case FormatJSON:
		return WriteJSON(w, results)
	case FormatCSV:
		return WriteCSV(w, results)
	case FormatXLSX:
		return WriteXLSX(w, results)
	}
	return eris.Errorf("report: unknown format %q", f)
}

var header = []string{"rank", "kind", "name", "title/industry", "company", "score", "grade", "explanation"}

// row flattens a result into the shared column layout.
func row(rank int, r model.SearchResult) []string {
	var detail, company string
	switch {
	case r.Person != nil:
		detail, company = r.Person.Title, r.Person.Company
	case r.Organization != nil:
		detail = r.Organization.Industry
	}
	kind := string(r.Kind)
	if r.Derived {
		kind += "*"
	}
	return []string{
		strconv.Itoa(rank),
		kind,
		r.Name(),
		detail,
		company,
		strconv.FormatFloat(r.Score, 'f', 2, 64),
		string(r.Grade),
		r.Explanation,
	}
}

// WriteTable writes an aligned, human-readable table. Executives surfaced
// from an organization are marked with a trailing "*" on their kind.
func WriteTable(w io.Writer, results []model.SearchResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return eris.Wrap(err, "report: write table")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	upper := make([]string, len(header))
	rule := make([]string, len(header))
	for i, h := range header {
		upper[i] = strings.ToUpper(h)
		rule[i] = strings.Repeat("-", len(h))
	}
	_, _ = fmt.Fprintln(tw, strings.Join(upper, "\t"))
	_, _ = fmt.Fprintln(tw, strings.Join(rule, "\t"))
	for i, r := range results {
		_, _ = fmt.Fprintln(tw, strings.Join(row(i+1, r), "\t"))
	}
	return eris.Wrap(tw.Flush(), "report: write table")
}

// WriteCSV writes a header row followed by one row per result.
func WriteCSV(w io.Writer, results []model.SearchResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "report: write csv header")
	}
	for i, r := range results {
		if err := cw.Write(row(i+1, r)); err != nil {
			return eris.Wrapf(err, "report: write csv row %d", i+1)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush csv")
}

// WriteJSON writes the results as an indented JSON array.
func WriteJSON(w io.Writer, results []model.SearchResult) error {
	if results == nil {
		results = []model.SearchResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(results), "report: write json")
}
