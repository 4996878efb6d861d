package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/database"
)

const (
	ReportsSheet = "Reports"
	CostSheet    = "Cost Details"

	// ContentType is the media type of the generated workbook
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const dateLayout = "2006-01-02"

var reportHeader = []any{
	"Report Number", "Farmer ID", "Farmer Name", "Place", "Hatch Date",
	"Chicks Housed", "Mortality Nos", "Total Mortality %", "Birds Lifted", "Shortage",
	"Bird Weight (kg)", "FCR", "Lifting %", "Avg Weight (kg)", "Lot Grade",
	"Production Cost/kg", "Basic Rate", "Final Amount", "Approved", "Approved At",
}

var costHeader = []any{"Report Number", "Item", "Quantity", "Rate", "Amount"}

// WriteReports renders reports, with their cost details on a second sheet,
// as an XLSX workbook.
func WriteReports(w io.Writer, reports []*database.ProductionReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(CostSheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := writeRow(f, ReportsSheet, 1, reportHeader); err != nil {
		return err
	}
	if err := writeRow(f, CostSheet, 1, costHeader); err != nil {
		return err
	}
	if err := f.SetRowStyle(ReportsSheet, 1, 1, bold); err != nil {
		return err
	}
	if err := f.SetRowStyle(CostSheet, 1, 1, bold); err != nil {
		return err
	}

	costRow := 2
	for i, r := range reports {
		if err := writeRow(f, ReportsSheet, i+2, reportRow(r)); err != nil {
			return err
		}
		for _, cd := range r.CostDetails {
			row := []any{r.ReportNumber, cd.Item, cd.Quantity, cd.Rate, cd.Amount}
			if err := writeRow(f, CostSheet, costRow, row); err != nil {
				return err
			}
			costRow++
		}
	}

	if err := f.SetPanes(ReportsSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}
	return f.Write(w)
}

func reportRow(r *database.ProductionReport) []any {
	approvedAt := ""
	if r.ApprovedAt != nil {
		approvedAt = r.ApprovedAt.UTC().Format("2006-01-02 15:04:05")
	}
	approved := "No"
	if r.Approved {
		approved = "Yes"
	}
	return []any{
		r.ReportNumber, r.FarmerID, r.FarmerName, r.Place, r.HatchDate.Format(dateLayout),
		r.ChicksHoused, r.MortalityNos, r.TotalMortalityPercent, r.BirdLifted, r.Shortage,
		r.BirdWeightKg, r.FcrPercent, r.LiftingPercent, r.AvgWeightKg, r.LotGrade,
		r.ProductionCostPerKg, r.BasicRate, r.FinalAmount, approved, approvedAt,
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
