package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/policy-intake/internal/ingest"
)

const (
	PoliciesSheet  = "Policies"
	CoveragesSheet = "Coverages"
)

var policyHeaders = []string{
	"Source Path",
	"Status",
	"Method",
	"Issuer",
	"Product",
	"Policy Number",
	"Holder",
	"Tax ID",
	"Effective Start",
	"Effective End",
	"Payment Type",
	"Net Premium",
	"Total",
	"Client ID",
	"Agent ID",
	"Agent Code Registered",
	"Error",
}

var coverageHeaders = []string{"Source Path", "Policy Number", "Coverage", "Insured Amount", "Deductible", "Premium"}

// Service produces XLSX reports of batch runs.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// PoliciesXLSX returns a workbook (as bytes) with one Policies row per result,
// failures included, and one Coverages row per coverage of each extracted record.
// Money columns are numeric cells when the value parses as a decimal.
func (s *Service) PoliciesXLSX(results []ingest.FileResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	// the default sheet becomes Policies
	if err := f.SetSheetName(f.GetSheetName(0), PoliciesSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(CoveragesSheet); err != nil {
		return nil, err
	}
	writeHeader(f, PoliciesSheet, policyHeaders)
	writeHeader(f, CoveragesSheet, coverageHeaders)

	row, covRow := 2, 2
	for _, res := range results {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(PoliciesSheet, cell, v)
		}
		write(1, res.Path)
		write(2, string(res.State))
		if res.Outcome == nil {
			write(17, truncate(res.Err, 240))
			row++
			continue
		}
		out := res.Outcome
		rec := out.Record
		write(3, string(out.Method))
		write(4, rec.Issuer)
		write(5, rec.Product)
		write(6, rec.PolicyNumber)
		write(7, rec.HolderName())
		write(8, rec.TaxID)
		write(9, rec.EffectiveStart)
		write(10, rec.EffectiveEnd)
		write(11, rec.PaymentType)
		write(12, money(rec.NetPremium))
		write(13, money(rec.Total))
		if out.MatchedClient != nil {
			write(14, out.MatchedClient.ID)
		}
		if out.MatchedAgent != nil {
			write(15, out.MatchedAgent.ID)
		}
		write(16, out.AgentCodeAlreadyRegistered)
		row++

		for _, c := range rec.Coverages {
			for col, v := range []any{res.Path, rec.PolicyNumber, c.Name, money(c.InsuredAmount), c.Deductible, money(c.Premium)} {
				cell, _ := excelize.CoordinatesToCellName(col+1, covRow)
				_ = f.SetCellValue(CoveragesSheet, cell, v)
			}
			covRow++
		}
	}

	_ = f.SetColWidth(PoliciesSheet, "A", "A", 60) // path
	_ = f.SetColWidth(PoliciesSheet, "B", "E", 16)
	_ = f.SetColWidth(PoliciesSheet, "F", "H", 24)
	_ = f.SetColWidth(PoliciesSheet, "I", "M", 14)
	_ = f.SetColWidth(PoliciesSheet, "N", "O", 38) // ids
	_ = f.SetColWidth(PoliciesSheet, "Q", "Q", 60) // error
	_ = f.SetColWidth(CoveragesSheet, "A", "A", 60)
	_ = f.SetColWidth(CoveragesSheet, "B", "F", 22)
	_ = f.SetPanes(PoliciesSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	s.logger.Info("export.xlsx.ok",
		"rows", row-2,
		"coverage_rows", covRow-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
}

// money keeps non-numeric values such as AMPARADA as text.
func money(s string) any {
	if s == "" {
		return ""
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d.InexactFloat64()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
