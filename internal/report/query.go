package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// ErrEmptyPath is returned by Query for a blank expression.
var ErrEmptyPath = errors.New("empty jsonpath expression")

// Document converts the report into the generic JSON value JSONPath
// expressions are evaluated against. Non-finite floats become null.
func Document(r Report) (any, error) {
	data, err := json.Marshal(sanitize(r))
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return doc, nil
}

// Query evaluates a JSONPath expression such as
// $.summaries.monthly.highest.month against the report.
func Query(r Report, path string) (any, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrEmptyPath
	}

	doc, err := Document(r)
	if err != nil {
		return nil, err
	}

	result, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("jsonpath %q: %w", path, err)
	}
	return result, nil
}

// Sanitized returns a copy of the report that encoding/json can marshal:
// NaN and infinities in the derived series are replaced with zero and the
// months they occur in are listed in the returned slice.
func Sanitized(r Report) (Report, []string) {
	var bad []string
	clean := func(month string, v *float64) {
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			*v = 0
			bad = appendOnce(bad, month)
		}
	}

	out := r
	out.Monthly = append(out.Monthly[:0:0], r.Monthly...)
	for i := range out.Monthly {
		m := &out.Monthly[i]
		clean(m.Month, &m.Strategy)
		clean(m.Month, &m.Gold)
	}
	out.Cumulative = append(out.Cumulative[:0:0], r.Cumulative...)
	for i := range out.Cumulative {
		c := &out.Cumulative[i]
		clean(c.Month, &c.StrategyProfit)
		clean(c.Month, &c.GoldProfit)
		clean(c.Month, &c.StrategyMonthly)
		clean(c.Month, &c.GoldMonthly)
	}
	out.Comparison = append(out.Comparison[:0:0], r.Comparison...)
	for i := range out.Comparison {
		c := &out.Comparison[i]
		clean(c.Month, &c.Outperformance)
		clean(c.Month, &c.Strategy)
		clean(c.Month, &c.Gold)
	}

	s := &out.Summaries
	clean("summary", &s.Balances.TotalReturnPercent)
	clean("summary", &s.Monthly.Highest.Value)
	clean("summary", &s.Monthly.Lowest.Value)
	clean("summary", &s.Monthly.Average)
	clean("summary", &s.Comparison.Average)
	clean("summary", &s.Comparison.Highest.Value)
	clean("summary", &s.Cumulative.FinalStrategy)
	clean("summary", &s.Cumulative.FinalGold)
	clean("summary", &s.Cumulative.Outperformance)
	return out, bad
}

func sanitize(r Report) Report {
	out, _ := Sanitized(r)
	return out
}

func appendOnce(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
