// Package pipeline turns a raw delimited interview table into a validated,
// ordered dataset with a cumulative-unique-items column and summary
// statistics. It is the one piece of real logic in the repository: a pure
// function with no I/O beyond reading the supplied input and no state
// between invocations.
package pipeline

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Run executes the full pipeline against raw CSV input.
//
// Steps: structural validation (header + at least 3 columns), positional
// column binding, total numeric coercion (bad values become NaN), dropping
// rows with a NaN in any bound column, stable ascending sort by interview
// number, cumulative sum of new items, summary statistics. Failure modes
// are *StructuralError and *ProcessingError; nothing else escapes.
func Run(r io.Reader, opts Options) (*Result, error) {
	cr := csv.NewReader(r)
	cr.Comma = opts.comma()
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &StructuralError{Columns: 0}
	}
	if err != nil {
		return nil, &ProcessingError{Stage: "read", Err: err}
	}
	if len(header) < 3 {
		return nil, &StructuralError{Columns: len(header)}
	}

	ds := Dataset{
		Label:  opts.label(),
		Header: append([]string(nil), header...),
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ProcessingError{Stage: "read", Err: err}
		}
		rec, ok := coerceRow(row)
		if !ok {
			ds.DroppedRows++
			continue
		}
		ds.Records = append(ds.Records, rec)
	}

	if len(ds.Records) == 0 {
		return nil, &ProcessingError{Stage: "filtering", Err: errors.New("no valid rows remain after dropping non-numeric rows")}
	}

	// Cumulative sums are only meaningful in interview order. Stable so
	// that ties keep their post-filter relative order.
	sort.SliceStable(ds.Records, func(i, j int) bool {
		return ds.Records[i].InterviewNumber < ds.Records[j].InterviewNumber
	})

	var running float64
	for i := range ds.Records {
		running += ds.Records[i].NewItems
		ds.Records[i].CumulativeUnique = running
	}

	return &Result{Dataset: ds, Summary: summarize(ds.Records)}, nil
}

// coerceRow binds the first three columns by position and coerces them to
// numbers. A row that is too short or has a non-coercible bound value is
// rejected; coercion itself never fails the pipeline.
func coerceRow(row []string) (Record, bool) {
	if len(row) < 3 {
		return Record{}, false
	}
	n := coerce(row[0])
	collected := coerce(row[1])
	fresh := coerce(row[2])
	if math.IsNaN(n) || math.IsNaN(collected) || math.IsNaN(fresh) {
		return Record{}, false
	}
	rec := Record{
		InterviewNumber: n,
		ItemsCollected:  collected,
		NewItems:        fresh,
	}
	if len(row) > 3 {
		rec.Extra = append([]string(nil), row[3:]...)
	}
	return rec, true
}

// coerce parses a single cell, returning NaN as the missing-value marker.
func coerce(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// summarize computes the four scalar metrics. Callers guarantee at least
// one record, so the last-row read and the means are well defined.
func summarize(recs []Record) Summary {
	var collected, fresh float64
	for _, r := range recs {
		collected += r.ItemsCollected
		fresh += r.NewItems
	}
	n := float64(len(recs))
	return Summary{
		TotalInterviews:         len(recs),
		TotalUniqueItems:        int(recs[len(recs)-1].CumulativeUnique),
		AvgItemsPerInterview:    collected / n,
		AvgNewItemsPerInterview: fresh / n,
	}
}

// Example returns the built-in five-interview dataset shown as inline
// documentation of the expected format when no file has been supplied.
func Example(label string) *Result {
	res, err := Run(strings.NewReader(exampleCSV), Options{Label: label})
	if err != nil {
		// The example input is constant and valid.
		panic(err)
	}
	return res
}

const exampleCSV = `Interview_Number,Items_Collected,New_Items
1,10,10
2,15,8
3,12,5
4,18,10
5,14,6
`
