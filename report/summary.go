// Package report aggregates stored predictions into the histogram and the
// grouped mean/count views shown on the dashboard.
package report

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"insurecost/insurance"
)

// Summary is every aggregate the dashboard shows.
type Summary struct {
	Total        int          `json:"total"`
	AgeHistogram AgeHistogram `json:"age_histogram"`
	Sex          GroupSummary `json:"sex"`
	Smoker       GroupSummary `json:"smoker"`
}

// GroupSummary holds one grouping ordered by code.
type GroupSummary struct {
	Groups []GroupStat `json:"groups"`
}

// GroupStat is one category of a grouping. MeanShare is the category's share
// of the summed means and CountShare its share of all rows, both in percent.
// MeanShare is left at zero when any category mean is negative.
type GroupStat struct {
	Code        int     `json:"code"`
	Label       string  `json:"label"`
	Count       int     `json:"count"`
	MeanCharges float64 `json:"mean_charges"`
	MeanShare   float64 `json:"mean_share"`
	CountShare  float64 `json:"count_share"`
}

// Summarize aggregates records without filtering. Callers treat an empty
// slice as "no data yet" and skip it; Summarize then returns a zero Summary.
func Summarize(records []insurance.PredictionRecord, locale Locale) Summary {
	if len(records) == 0 {
		return Summary{}
	}
	ages := make([]float64, len(records))
	for i, r := range records {
		ages[i] = float64(r.Age)
	}
	return Summary{
		Total:        len(records),
		AgeHistogram: BuildHistogram(ages, HistogramBins),
		Sex: groupBy(records,
			func(r insurance.PredictionRecord) int { return r.Sex },
			locale.sexLabel),
		Smoker: groupBy(records,
			func(r insurance.PredictionRecord) int { return r.Smoker },
			locale.smokerLabel),
	}
}

func groupBy(records []insurance.PredictionRecord, key func(insurance.PredictionRecord) int, labelOf func(int) string) GroupSummary {
	charges := make(map[int][]float64)
	for _, r := range records {
		k := key(r)
		charges[k] = append(charges[k], r.PredictedCharges)
	}

	codes := make([]int, 0, len(charges))
	for k := range charges {
		codes = append(codes, k)
	}
	sort.Ints(codes)

	groups := make([]GroupStat, 0, len(codes))
	means := make([]float64, 0, len(codes))
	for _, code := range codes {
		vals := charges[code]
		mean := stat.Mean(vals, nil)
		means = append(means, mean)
		groups = append(groups, GroupStat{
			Code:        code,
			Label:       labelOf(code),
			Count:       len(vals),
			MeanCharges: mean,
			CountShare:  100 * float64(len(vals)) / float64(len(records)),
		})
	}
	// MeanShare stays zero when any mean is negative.
	if floats.Min(means) >= 0 {
		if total := floats.Sum(means); total > 0 {
			for i := range groups {
				groups[i].MeanShare = 100 * groups[i].MeanCharges / total
			}
		}
	}
	return GroupSummary{Groups: groups}
}

// ByCount returns the groups ordered by descending count, ties by code. This
// is the order the count charts use.
func (g GroupSummary) ByCount() []GroupStat {
	out := append([]GroupStat(nil), g.Groups...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Find returns the stat for code.
func (g GroupSummary) Find(code int) (GroupStat, bool) {
	for _, s := range g.Groups {
		if s.Code == code {
			return s, true
		}
	}
	return GroupStat{}, false
}
