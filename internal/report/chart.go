package report

import (
	"github.com/shopspring/decimal"

	"github.com/Simplici0/pollos/internal/profit"
)

const (
	chartWidth     = 610
	chartHeight    = 320
	chartTopPad    = 36
	chartBottomPad = 40
	barWidth       = 160

	costColor    = "#ff9999"
	revenueColor = "#99ff99"
)

// Bar is one bar of the revenue versus cost comparison, in SVG user units.
type Bar struct {
	Label  string
	Value  string
	Color  string
	X      float64
	Y      float64
	Width  float64
	Height float64
	// LabelX and LabelY position the value label centred above the bar.
	LabelX float64
	LabelY float64

	// CategoryY is the baseline of the category name under the axis.
	CategoryY float64
}

// BarChart describes the "Ingresos vs Costos" chart.
type BarChart struct {
	Title     string
	Width     int
	Height    int
	BaselineY float64
	Bars      []Bar
}

// NewBarChart lays out total cost and total revenue as two bars scaled to
// the larger of both values.
func NewBarChart(result profit.Result) BarChart {
	chart := BarChart{
		Title:     "Ingresos vs Costos",
		Width:     chartWidth,
		Height:    chartHeight,
		BaselineY: float64(chartHeight - chartBottomPad),
	}

	values := []struct {
		label string
		value decimal.Decimal
		color string
	}{
		{profit.ConceptTotalCost, result.TotalCost, costColor},
		{profit.ConceptRevenue, result.TotalRevenue, revenueColor},
	}

	maxValue := decimal.Max(result.TotalCost, result.TotalRevenue)
	plotHeight := float64(chartHeight - chartTopPad - chartBottomPad)
	slot := float64(chartWidth) / float64(len(values))

	for i, v := range values {
		height := 0.0
		if maxValue.IsPositive() && v.value.IsPositive() {
			height = v.value.Div(maxValue).InexactFloat64() * plotHeight
		}
		x := slot*float64(i) + (slot-barWidth)/2
		y := chart.BaselineY - height
		chart.Bars = append(chart.Bars, Bar{
			Label:  v.label,
			Value:  "$" + humanizeInt(v.value),
			Color:  v.color,
			X:      x,
			Y:      y,
			Width:  barWidth,
			Height: height,
			LabelX: x + barWidth/2,
			LabelY: y - 6,

			CategoryY: chart.BaselineY + 18,
		})
	}

	return chart
}
