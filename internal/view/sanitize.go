package view

import "math"

// Sanitized returns a copy of the rendering that encoding/json can marshal.
// NaN and infinities in the chart are replaced with zero; the bool reports
// whether any were found.
func Sanitized(r Rendering) (Rendering, bool) {
	if r.Chart == nil {
		return r, false
	}

	found := false
	clean := func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			found = true
			return 0
		}
		return v
	}

	ch := *r.Chart
	ch.YAxis.Min = clean(ch.YAxis.Min)
	ch.YAxis.Max = clean(ch.YAxis.Max)
	ch.YAxis.Ticks = append([]float64(nil), ch.YAxis.Ticks...)
	for i, v := range ch.YAxis.Ticks {
		ch.YAxis.Ticks[i] = clean(v)
	}

	ch.Series = append([]Series(nil), ch.Series...)
	for i := range ch.Series {
		values := make([]float64, len(ch.Series[i].Values))
		for j, v := range ch.Series[i].Values {
			values[j] = clean(v)
		}
		ch.Series[i].Values = values
	}

	ch.Spokes = append([]Spoke(nil), ch.Spokes...)
	for i := range ch.Spokes {
		ch.Spokes[i].Value = clean(ch.Spokes[i].Value)
		ch.Spokes[i].Max = clean(ch.Spokes[i].Max)
	}

	out := r
	out.Chart = &ch
	return out, found
}
