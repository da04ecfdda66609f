// Package chart draws the dashboard charts as PNG images.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"insurecost/report"
)

// Canvas size in pixels.
const (
	Width  = 640
	Height = 480
)

// ErrNoSlices is returned when there is nothing to draw.
var ErrNoSlices = errors.New("chart has no slices")

// NotDrawableError reports data a pie cannot show, such as a negative wedge.
type NotDrawableError struct {
	Label  string
	Reason string
}

func (e *NotDrawableError) Error() string {
	return fmt.Sprintf("chart not drawable: %s %s", e.Label, e.Reason)
}

// Slice is one wedge of a pie chart.
type Slice struct {
	Label string
	Value float64
}

func newCanvas(title string) *gg.Context {
	dc := gg.NewContext(Width, Height)
	dc.SetHexColor("#ffffff")
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetHexColor("#222222")
	dc.DrawStringAnchored(title, Width/2, 24, 0.5, 0.5)
	return dc
}

// Pie draws slices counterclockwise from twelve o'clock, each labelled with
// its percentage. Colors cycle through palette.
func Pie(w io.Writer, title string, slices []Slice, palette []string) error {
	total := 0.0
	for _, s := range slices {
		if s.Value < 0 {
			return &NotDrawableError{Label: s.Label, Reason: "has a negative value"}
		}
		total += s.Value
	}
	if len(slices) == 0 || total == 0 {
		return ErrNoSlices
	}
	if len(palette) == 0 {
		palette = []string{"#4B8BBE"}
	}

	dc := newCanvas(title)
	cx, cy := float64(Width)/2, float64(Height)/2+10
	radius := math.Min(float64(Width), float64(Height))/2 - 60

	angle := -math.Pi / 2
	for i, s := range slices {
		sweep := 2 * math.Pi * s.Value / total
		end := angle - sweep

		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, angle, end)
		dc.ClosePath()
		dc.SetHexColor(palette[i%len(palette)])
		dc.FillPreserve()
		dc.SetHexColor("#ffffff")
		dc.SetLineWidth(1.5)
		dc.Stroke()

		mid := angle - sweep/2
		dc.SetHexColor("#222222")
		pct := fmt.Sprintf("%.1f%%", 100*s.Value/total)
		dc.DrawStringAnchored(pct, cx+0.6*radius*math.Cos(mid), cy+0.6*radius*math.Sin(mid), 0.5, 0.5)
		dc.DrawStringAnchored(s.Label, cx+1.12*radius*math.Cos(mid), cy+1.12*radius*math.Sin(mid), 0.5, 0.5)

		angle = end
	}
	return dc.EncodePNG(w)
}

// Histogram draws the bin counts as bars with the density curve on top.
func Histogram(w io.Writer, title string, h report.AgeHistogram) error {
	if len(h.Counts) == 0 {
		return ErrNoSlices
	}
	dc := newCanvas(title)

	const left, right, top, bottom = 50.0, 20.0, 50.0, 40.0
	plotW := float64(Width) - left - right
	plotH := float64(Height) - top - bottom
	maxY := float64(h.MaxCount())
	for _, p := range h.Density {
		maxY = math.Max(maxY, p.Y)
	}
	maxY *= 1.1

	lo, hi := h.Edges[0], h.Edges[len(h.Edges)-1]
	xOf := func(x float64) float64 { return left + (x-lo)/(hi-lo)*plotW }
	yOf := func(y float64) float64 { return top + plotH - y/maxY*plotH }

	dc.SetHexColor("#4B8BBE")
	for i, c := range h.Counts {
		x0, x1 := xOf(h.Edges[i]), xOf(h.Edges[i+1])
		y := yOf(float64(c))
		dc.DrawRectangle(x0, y, x1-x0, top+plotH-y)
	}
	dc.FillPreserve()
	dc.SetHexColor("#ffffff")
	dc.SetLineWidth(1)
	dc.Stroke()

	if len(h.Density) > 1 {
		dc.SetHexColor("#1f3b57")
		dc.SetLineWidth(2)
		for i, p := range h.Density {
			if i == 0 {
				dc.MoveTo(xOf(p.X), yOf(p.Y))
				continue
			}
			dc.LineTo(xOf(p.X), yOf(p.Y))
		}
		dc.Stroke()
	}

	dc.SetHexColor("#222222")
	dc.SetLineWidth(1)
	dc.DrawLine(left, top+plotH, left+plotW, top+plotH)
	dc.DrawLine(left, top, left, top+plotH)
	dc.Stroke()
	dc.DrawStringAnchored(fmt.Sprintf("%.0f", lo), left, top+plotH+14, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.0f", hi), left+plotW, top+plotH+14, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%d", h.MaxCount()), left-8, yOf(float64(h.MaxCount())), 1, 0.5)
	return dc.EncodePNG(w)
}
