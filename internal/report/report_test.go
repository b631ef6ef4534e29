package report

import (
	"bytes"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/pollos/internal/profit"
)

func referenceInput() profit.Input {
	return profit.Input{
		ChickensPurchased:    50,
		PricePerChicken:      decimal.RequireFromString("4000"),
		FeedBags:             6,
		PricePerBag:          decimal.RequireFromString("108000"),
		AvgWeightLbs:         decimal.RequireFromString("6.25"),
		PricePerLb:           decimal.RequireFromString("6500"),
		MortalityRate:        decimal.RequireFromString("0.05"),
		SlaughterCostPerBird: decimal.RequireFromString("1500"),
		ExtraExpense:         decimal.Zero,
	}
}

func TestXLSX_TwoSheetsWithSummaryAndParameters(t *testing.T) {
	in := referenceInput()
	raw, err := XLSX(in, profit.Calculate(in))
	if err != nil {
		t.Fatalf("XLSX returned error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("open generated workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != SummarySheet || sheets[1] != ParametersSheet {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	summary, err := f.GetRows(SummarySheet, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("read summary rows: %v", err)
	}
	wantSummary := [][]string{
		{"Concepto", "Valor (COP)"},
		{"Compra de pollos", "200000"},
		{"Alimento", "648000"},
		{"Sacrificio", "70500"},
		{"Gasto Extra", "0"},
		{"Total Costos", "918500"},
		{"Ingresos por venta", "1909375"},
		{"Ganancia neta", "990875"},
	}
	assertRows(t, SummarySheet, summary, wantSummary)

	params, err := f.GetRows(ParametersSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("read parameter rows: %v", err)
	}
	wantParams := [][]string{
		{"Parámetro", "Valor"},
		{"Pollos Comprados", "50"},
		{"Precio por Pollo (COP)", "4000"},
		{"Bultos de Alimento", "6"},
		{"Costo por Bulto (COP)", "108000"},
		{"Peso Promedio por Pollo (lbs)", "6.25"},
		{"Precio por Libra (COP)", "6500"},
		{"Tasa de Mortalidad (%)", "5"},
		{"Costo Sacrificio por Pollo (COP)", "1500"},
		{"Gasto Extra / Eventualidad (COP)", "0"},
	}
	assertRows(t, ParametersSheet, params, wantParams)
}

func TestXLSX_KeepsNegativeProfit(t *testing.T) {
	in := referenceInput()
	in.PricePerLb = decimal.RequireFromString("1000")
	in.ExtraExpense = decimal.RequireFromString("250000")

	raw, err := XLSX(in, profit.Calculate(in))
	if err != nil {
		t.Fatalf("XLSX returned error: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("open generated workbook: %v", err)
	}
	defer f.Close()

	value, err := f.GetCellValue(SummarySheet, "B8", excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("read net profit cell: %v", err)
	}
	if value != "-874750" {
		t.Fatalf("net profit cell = %q, want %q", value, "-874750")
	}
}

func TestNewBarChart_ScalesToLargerValue(t *testing.T) {
	chart := NewBarChart(profit.Calculate(referenceInput()))

	if len(chart.Bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(chart.Bars))
	}
	cost, revenue := chart.Bars[0], chart.Bars[1]
	if cost.Label != profit.ConceptTotalCost || revenue.Label != profit.ConceptRevenue {
		t.Fatalf("unexpected bar labels: %q, %q", cost.Label, revenue.Label)
	}
	if cost.Value != "$918,500" || revenue.Value != "$1,909,375" {
		t.Fatalf("unexpected bar values: %q, %q", cost.Value, revenue.Value)
	}

	plotHeight := float64(chartHeight - chartTopPad - chartBottomPad)
	if revenue.Height != plotHeight {
		t.Fatalf("revenue bar height = %v, want %v", revenue.Height, plotHeight)
	}
	if cost.Height <= 0 || cost.Height >= revenue.Height {
		t.Fatalf("cost bar height = %v, want between 0 and %v", cost.Height, revenue.Height)
	}
	if math.Abs(cost.Y+cost.Height-chart.BaselineY) > 1e-9 || math.Abs(revenue.Y+revenue.Height-chart.BaselineY) > 1e-9 {
		t.Fatalf("bars do not sit on the baseline: %+v", chart.Bars)
	}
	if cost.LabelY >= cost.Y {
		t.Fatalf("value label must sit above the bar: %+v", cost)
	}
	if cost.Color != costColor || revenue.Color != revenueColor {
		t.Fatalf("unexpected colors: %q, %q", cost.Color, revenue.Color)
	}
}

func TestNewBarChart_NoRevenue(t *testing.T) {
	in := referenceInput()
	in.MortalityRate = decimal.RequireFromString("1")

	chart := NewBarChart(profit.Calculate(in))

	if chart.Bars[1].Height != 0 {
		t.Fatalf("revenue bar height = %v, want 0", chart.Bars[1].Height)
	}
	if chart.Bars[1].Value != "$0" {
		t.Fatalf("revenue label = %q, want %q", chart.Bars[1].Value, "$0")
	}
}

func TestFormatting(t *testing.T) {
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"cop", COP(decimal.RequireFromString("1909375")), "$1,909,375 COP"},
		{"cop rounds", COP(decimal.RequireFromString("918499.6")), "$918,500 COP"},
		{"cop negative", COP(decimal.RequireFromString("-874750")), "$-874,750 COP"},
		{"cop beyond int64", COP(decimal.RequireFromString("5000000000000000000000")), "$5,000,000,000,000,000,000,000 COP"},
		{"cop negative beyond int64", COP(decimal.RequireFromString("-12345678901234567890123.4")), "$-12,345,678,901,234,567,890,123 COP"},
		{"pounds", Pounds(decimal.RequireFromString("293.75")), "293.75 lbs"},
		{"pounds rounds", Pounds(decimal.RequireFromString("0.125")), "0.13 lbs"},
		{"pounds beyond int64", Pounds(decimal.RequireFromString("10000000000000000000.5")), "10,000,000,000,000,000,000.50 lbs"},
		{"pounds thousands", Pounds(decimal.RequireFromString("6100")), "6,100.00 lbs"},
		{"units", Units(47), "47 u."},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s = %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestNewBarChart_LabelsBeyondInt64(t *testing.T) {
	chart := NewBarChart(profit.Result{
		TotalCost:    decimal.RequireFromString("5000000000000000000000"),
		TotalRevenue: decimal.RequireFromString("2500000000000000000000"),
	})

	if chart.Bars[0].Value != "$5,000,000,000,000,000,000,000" {
		t.Fatalf("cost label = %q", chart.Bars[0].Value)
	}
	if math.Abs(chart.Bars[1].Height*2-chart.Bars[0].Height) > 0.001 {
		t.Fatalf("revenue bar should be half the cost bar: %+v", chart.Bars)
	}
}

func assertRows(t *testing.T, sheet string, got, want [][]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: expected %d rows, got %d: %v", sheet, len(want), len(got), got)
	}
	for i := range want {
		if len(got[i]) < 2 || got[i][0] != want[i][0] || got[i][1] != want[i][1] {
			t.Fatalf("%s row %d = %v, want %v", sheet, i+1, got[i], want[i])
		}
	}
}
