package report

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	HistogramBins = 10
	densityPoints = 200
)

// AgeHistogram holds equal-width bin counts and, when the data allows it, a
// kernel density curve scaled to the same count axis.
type AgeHistogram struct {
	Edges   []float64      `json:"edges"`
	Counts  []int          `json:"counts"`
	Density []DensityPoint `json:"density,omitempty"`
}

// DensityPoint is one sample of the density curve.
type DensityPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BinWidth returns the common bin width, or 0 for an empty histogram.
func (h AgeHistogram) BinWidth() float64 {
	if len(h.Edges) < 2 {
		return 0
	}
	return h.Edges[1] - h.Edges[0]
}

// MaxCount returns the tallest bin.
func (h AgeHistogram) MaxCount() int {
	max := 0
	for _, c := range h.Counts {
		if c > max {
			max = c
		}
	}
	return max
}

// BuildHistogram bins values into n equal-width bins over [min, max]. The last
// bin is closed on the right. A single distinct value is widened by 0.5 on
// each side.
func BuildHistogram(values []float64, n int) AgeHistogram {
	if len(values) == 0 || n <= 0 {
		return AgeHistogram{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	edges := floats.Span(make([]float64, n+1), lo, hi)
	// stat.Histogram bins are half-open; nudge the last divider so hi lands
	// in the final bin.
	dividers := append([]float64(nil), edges...)
	dividers[n] = math.Nextafter(hi, math.Inf(1))
	weights := stat.Histogram(nil, dividers, sorted, nil)

	counts := make([]int, n)
	for i, w := range weights {
		counts[i] = int(w)
	}

	h := AgeHistogram{Edges: edges, Counts: counts}
	h.Density = densityCurve(sorted, lo, hi, h.BinWidth())
	return h
}

// densityCurve is a Gaussian KDE with Scott's bandwidth, multiplied by
// n*binWidth so it overlays the bar counts.
func densityCurve(values []float64, lo, hi, binWidth float64) []DensityPoint {
	if len(values) < 2 {
		return nil
	}
	n := float64(len(values))
	_, std := stat.MeanStdDev(values, nil)
	if std == 0 || math.IsNaN(std) {
		return nil
	}
	bandwidth := std * math.Pow(n, -0.2)

	kernels := make([]distuv.Normal, len(values))
	for i, v := range values {
		kernels[i] = distuv.Normal{Mu: v, Sigma: bandwidth}
	}
	xs := floats.Span(make([]float64, densityPoints), lo, hi)
	points := make([]DensityPoint, densityPoints)
	for i, x := range xs {
		sum := 0.0
		for _, k := range kernels {
			sum += k.Prob(x)
		}
		// mean density times n*binWidth
		points[i] = DensityPoint{X: x, Y: sum * binWidth}
	}
	return points
}
