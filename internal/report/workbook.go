package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/pollos/internal/profit"
)

const (
	// Filename is the name under which the workbook is offered for download.
	Filename = "informe_pollos_engorde.xlsx"
	// ContentType is the OOXML spreadsheet media type.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	SummarySheet    = "Resumen Financiero"
	ParametersSheet = "Parametros de Entrada"
)

// Workbook builds the two-sheet report: the financial summary (with a
// revenue versus cost chart) and the input parameters.
func Workbook(in profit.Input, result profit.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename summary sheet: %w", err)
	}
	if _, err := f.NewSheet(ParametersSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("create parameters sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}
	// Built-in format 3 is "#,##0".
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create money style: %w", err)
	}

	if err := writeSummary(f, result.LineItems(), headerStyle, moneyStyle); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeParameters(f, in.Parameters(), headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	if err := addComparisonChart(f); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// XLSX renders the report workbook to bytes.
func XLSX(in profit.Input, result profit.Result) ([]byte, error) {
	f, err := Workbook(in, result)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, items []profit.LineItem, headerStyle, moneyStyle int) error {
	if err := f.SetSheetRow(SummarySheet, "A1", &[]any{"Concepto", "Valor (COP)"}); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &[]any{item.Concept, item.Value.InexactFloat64()}); err != nil {
			return fmt.Errorf("write summary row %q: %w", item.Concept, err)
		}
	}

	if err := f.SetRowStyle(SummarySheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style summary header: %w", err)
	}
	last := fmt.Sprintf("B%d", len(items)+1)
	if err := f.SetCellStyle(SummarySheet, "B2", last, moneyStyle); err != nil {
		return fmt.Errorf("style summary values: %w", err)
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 22); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "B", "B", 18)
}

func writeParameters(f *excelize.File, params []profit.Parameter, headerStyle int) error {
	if err := f.SetSheetRow(ParametersSheet, "A1", &[]any{"Parámetro", "Valor"}); err != nil {
		return fmt.Errorf("write parameters header: %w", err)
	}
	for i, p := range params {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ParametersSheet, cell, &[]any{p.Name, p.Value.InexactFloat64()}); err != nil {
			return fmt.Errorf("write parameter %q: %w", p.Name, err)
		}
	}

	if err := f.SetRowStyle(ParametersSheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style parameters header: %w", err)
	}
	return f.SetColWidth(ParametersSheet, "A", "A", 34)
}

// addComparisonChart plots the "Total Costos" and "Ingresos por venta" rows
// (5th and 6th line items, rows 6 and 7) of the summary sheet.
func addComparisonChart(f *excelize.File) error {
	ref := "'" + SummarySheet + "'!"
	err := f.AddChart(SummarySheet, "D2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       ref + "$B$1",
			Categories: ref + "$A$6:$A$7",
			Values:     ref + "$B$6:$B$7",
		}},
		Title:     []excelize.RichTextRun{{Text: "Ingresos vs Costos"}},
		Legend:    excelize.ChartLegend{Position: "none"},
		PlotArea:  excelize.ChartPlotArea{ShowVal: true},
		Dimension: excelize.ChartDimension{Width: 480, Height: 260},
	})
	if err != nil {
		return fmt.Errorf("add comparison chart: %w", err)
	}
	return nil
}
