package view

import "math"

// ChartKind is the chart primitive a view is drawn with.
type ChartKind string

const (
	ChartLine     ChartKind = "line"
	ChartArea     ChartKind = "area"
	ChartComposed ChartKind = "composed"
	ChartRadar    ChartKind = "radar"
)

// SeriesStyle says how one series of a chart is drawn.
type SeriesStyle string

const (
	StyleLine SeriesStyle = "line"
	StyleArea SeriesStyle = "area"
	StyleBar  SeriesStyle = "bar"
)

// ColorRole maps a series onto the theme palette.
type ColorRole string

const (
	RoleStrategy       ColorRole = "strategy"
	RoleGold           ColorRole = "gold"
	RoleOutperformance ColorRole = "outperformance"
)

// Series is one named set of values aligned with Chart.Labels.
type Series struct {
	Name   string      `json:"name" yaml:"name"`
	Style  SeriesStyle `json:"style" yaml:"style"`
	Role   ColorRole   `json:"role" yaml:"role"`
	Values []float64   `json:"values" yaml:"values"`
}

// Axis describes the value axis. Auto means the bounds come from the data.
type Axis struct {
	Label string    `json:"label,omitempty" yaml:"label,omitempty"`
	Min   float64   `json:"min" yaml:"min"`
	Max   float64   `json:"max" yaml:"max"`
	Ticks []float64 `json:"ticks,omitempty" yaml:"ticks,omitempty"`
	Auto  bool      `json:"auto" yaml:"auto"`
	Unit  string    `json:"unit" yaml:"unit"`
}

// Spoke is one axis of a radar chart.
type Spoke struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Max   float64 `json:"max" yaml:"max"`
}

// Chart is a framework independent chart description.
type Chart struct {
	Kind   ChartKind `json:"kind" yaml:"kind"`
	Labels []string  `json:"labels,omitempty" yaml:"labels,omitempty"`
	Series []Series  `json:"series,omitempty" yaml:"series,omitempty"`
	YAxis  Axis      `json:"y_axis" yaml:"y_axis"`
	Spokes []Spoke   `json:"spokes,omitempty" yaml:"spokes,omitempty"`
}

// Bounds returns the axis range, scanning the data when the axis is Auto.
func (c *Chart) Bounds() (float64, float64) {
	if !c.YAxis.Auto {
		return c.YAxis.Min, c.YAxis.Max
	}

	first := true
	var lo, hi float64
	for _, s := range c.Series {
		for _, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if first {
				lo, hi = v, v
				first = false
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if lo > 0 {
		lo = 0
	}
	return lo, hi
}
