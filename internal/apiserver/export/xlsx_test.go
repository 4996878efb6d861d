package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/database"
)

func TestWriteReports(t *testing.T) {
	approvedAt := time.Date(2024, 4, 2, 9, 30, 0, 0, time.UTC)
	reports := []*database.ProductionReport{
		{
			ReportNumber: "RPT20240301ABCDEF12",
			FarmerID:     7,
			FarmerName:   "Ravi",
			Place:        "Hosur",
			HatchDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			ChicksHoused: 5000,
			LotGrade:     "A",
			Approved:     true,
			ApprovedAt:   &approvedAt,
			CostDetails: []database.CostDetail{
				{Item: "Chicks", Quantity: "5000", Rate: "35", Amount: 175000},
				{Item: "Feed", Quantity: "9000", Rate: "42", Amount: 378000},
			},
		},
		{ReportNumber: "RPT20240302ABCDEF13", FarmerName: "Meena", HatchDate: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), LotGrade: "B"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReports(&buf, reports))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ReportsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Report Number", rows[0][0])
	assert.Equal(t, "RPT20240301ABCDEF12", rows[1][0])
	assert.Equal(t, "2024-03-01", rows[1][4])
	assert.Equal(t, "Yes", rows[1][18])
	assert.Equal(t, "2024-04-02 09:30:00", rows[1][19])
	assert.Equal(t, "No", rows[2][18])

	costs, err := f.GetRows(CostSheet)
	require.NoError(t, err)
	require.Len(t, costs, 3)
	assert.Equal(t, []string{"RPT20240301ABCDEF12", "Feed", "9000", "42", "378000"}, costs[2])
}

func TestWriteReports_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReports(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{ReportsSheet, CostSheet}, f.GetSheetList())
}
