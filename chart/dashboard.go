package chart

import (
	"fmt"
	"io"

	"insurecost/report"
)

// Chart names as used in URLs and output file names.
const (
	AgeHistogram = "age-histogram"
	SexMean      = "sex-mean"
	SexCount     = "sex-count"
	SmokerMean   = "smoker-mean"
	SmokerCount  = "smoker-count"
)

// Names lists the dashboard charts in display order.
func Names() []string {
	return []string{AgeHistogram, SexMean, SexCount, SmokerMean, SmokerCount}
}

var palettes = map[string][]string{
	SexMean:     {"#d0b3ff", "#ffcc99"},
	SexCount:    {"#c2c2f0", "#ff9999"},
	SmokerMean:  {"#AED6F1", "#F5B7B1"},
	SmokerCount: {"#A2D9CE", "#F1948A"},
}

// UnknownChartError is returned by Render for a name outside Names.
type UnknownChartError struct {
	Name string
}

func (e *UnknownChartError) Error() string {
	return fmt.Sprintf("unknown chart %q", e.Name)
}

// Render writes the named chart for summary.
func Render(w io.Writer, name string, summary report.Summary, locale report.Locale) error {
	t := locale.Titles
	switch name {
	case AgeHistogram:
		return Histogram(w, t.AgeHistogram, summary.AgeHistogram)
	case SexMean:
		return Pie(w, t.SexMean, meanSlices(summary.Sex), palettes[name])
	case SexCount:
		return Pie(w, t.SexCount, countSlices(summary.Sex), palettes[name])
	case SmokerMean:
		return Pie(w, t.SmokerMean, meanSlices(summary.Smoker), palettes[name])
	case SmokerCount:
		return Pie(w, t.SmokerCount, countSlices(summary.Smoker), palettes[name])
	default:
		return &UnknownChartError{Name: name}
	}
}

func meanSlices(g report.GroupSummary) []Slice {
	slices := make([]Slice, len(g.Groups))
	for i, s := range g.Groups {
		slices[i] = Slice{Label: s.Label, Value: s.MeanCharges}
	}
	return slices
}

func countSlices(g report.GroupSummary) []Slice {
	groups := g.ByCount()
	slices := make([]Slice, len(groups))
	for i, s := range groups {
		slices[i] = Slice{Label: s.Label, Value: float64(s.Count)}
	}
	return slices
}
