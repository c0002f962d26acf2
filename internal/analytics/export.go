// AngelaMos | 2026
// export.go

package analytics

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/carterperez-dev/leadtrack/internal/submission"
)

// ExportRow flattens a submission for spreadsheet output. Column order
// matches the struct field order.
type ExportRow struct {
	ID             string `csv:"id"`
	FirstName      string `csv:"first_name"`
	LastName       string `csv:"last_name"`
	Email          string `csv:"email"`
	Phone          string `csv:"phone"`
	Address        string `csv:"address"`
	City           string `csv:"city"`
	State          string `csv:"state"`
	Zip            string `csv:"zip"`
	Gender         string `csv:"gender"`
	DOB            string `csv:"dob"`
	DiagnosisYear  string `csv:"diagnosis_year"`
	Country        string `csv:"country"`
	Region         string `csv:"region"`
	GeoCity        string `csv:"geo_city"`
	DeviceType     string `csv:"device_type"`
	Browser        string `csv:"browser"`
	CaseType       string `csv:"case_type"`
	Campaign       string `csv:"campaign"`
	Status         string `csv:"status"`
	QualityScore   int    `csv:"quality_score"`
	SubmissionDate string `csv:"submission_date"`
}

func toExportRows(subs []submission.Submission) []ExportRow {
	rows := make([]ExportRow, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, ExportRow{
			ID:             s.ID,
			FirstName:      s.FirstName,
			LastName:       s.LastName,
			Email:          s.Email,
			Phone:          s.Phone,
			Address:        s.Address,
			City:           s.City,
			State:          s.State,
			Zip:            s.Zip,
			Gender:         s.Gender,
			DOB:            s.DOB.Format("2006-01-02"),
			DiagnosisYear:  s.DiagnosisYear.Format("2006-01-02"),
			Country:        s.GeoCountry,
			Region:         s.GeoRegion,
			GeoCity:        s.GeoCity,
			DeviceType:     s.DeviceType,
			Browser:        s.BrowserFamily,
			CaseType:       s.CaseType,
			Campaign:       s.Campaign,
			Status:         s.Status,
			QualityScore:   s.QualityScore,
			SubmissionDate: s.SubmissionDate.Format(time.RFC3339),
		})
	}
	return rows
}

func ExportFilename(ext string) string {
	return fmt.Sprintf("leadtrack_submissions_%s.%s",
		time.Now().Format("20060102_150405"), ext)
}

func WriteCSV(w io.Writer, subs []submission.Submission) error {
	rows := toExportRows(subs)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

var exportHeaders = []string{
	"ID", "First Name", "Last Name", "Email", "Phone", "Address", "City",
	"State", "Zip", "Gender", "DOB", "Diagnosis Year", "Country",
	"Region", "Geo City", "Device", "Browser", "Case Type", "Campaign",
	"Status", "Quality Score", "Submission Date",
}

func WriteExcel(w io.Writer, subs []submission.Submission) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Submissions"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"4472C4"},
			Pattern: 1,
		},
	})
	if err != nil {
		return fmt.Errorf("excel header style: %w", err)
	}

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("excel header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("excel header cell: %w", err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err != nil {
		return fmt.Errorf("excel header range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("excel header style: %w", err)
	}

	for i, row := range toExportRows(subs) {
		values := []any{
			row.ID, row.FirstName, row.LastName, row.Email, row.Phone,
			row.Address, row.City, row.State, row.Zip, row.Gender,
			row.DOB, row.DiagnosisYear, row.Country, row.Region,
			row.GeoCity, row.DeviceType, row.Browser, row.CaseType,
			row.Campaign, row.Status, row.QualityScore,
			row.SubmissionDate,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("excel cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("excel cell: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write excel: %w", err)
	}
	return nil
}
