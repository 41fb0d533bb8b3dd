package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// upsertBatchSize caps how many rows go into a single upsert statement.
const upsertBatchSize = 1000

var (
	// ErrEmptyImport means the file held no valid rows after
	// validation. Distinct from an unreadable file.
	ErrEmptyImport = errors.New("no valid rows to import")
	// ErrMalformedCSV means the tabular structure itself could not be
	// parsed, e.g. a missing sku/name header.
	ErrMalformedCSV = errors.New("malformed CSV input")
)

// PartialImportError reports an upsert failure after some batches were
// already applied. Applied batches are not rolled back.
type PartialImportError struct {
	Processed int
	Err       error
}

func (e *PartialImportError) Error() string {
	return fmt.Sprintf("import failed after %d rows: %v", e.Processed, e.Err)
}

func (e *PartialImportError) Unwrap() error { return e.Err }

// SkippedRow records a rejected CSV row with its 1-based source line
// (the header is line 1) and the raw cells for operator review.
type SkippedRow struct {
	Line   int      `json:"line"`
	Reason string   `json:"reason"`
	Raw    []string `json:"row"`
}

// ImportReport summarizes one catalog import run.
type ImportReport struct {
	Processed int          `json:"processed"`
	Skipped   []SkippedRow `json:"skipped"`
}

// productRow is a validated CSV row before it becomes a Product.
type productRow struct {
	SKU      string
	Name     string
	Category string
	Brand    string
	IsActive bool
}

// ImportService reconciles a product CSV feed into the catalog.
type ImportService struct {
	repo   Repository
	logger *zap.Logger
}

// NewImportService creates a new catalog import service.
func NewImportService(repo Repository, logger *zap.Logger) *ImportService {
	return &ImportService{repo: repo, logger: logger}
}

// ImportCatalog parses, validates, and upserts a product feed for one
// organization. Valid rows are applied in fixed-size upsert batches;
// re-running the same file is idempotent. Row-level validation
// failures are skipped and reported, never fatal. A storage failure
// mid-run returns a PartialImportError carrying the rows already
// applied.
func (s *ImportService) ImportCatalog(ctx context.Context, orgID string, input io.Reader) (*ImportReport, error) {
	oid, err := uuid.Parse(orgID)
	if err != nil {
		return nil, fmt.Errorf("invalid organization id: %w", err)
	}

	rows, skipped, err := parseProductCSV(input)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Skipped: skipped}
	if len(rows) == 0 {
		return report, ErrEmptyImport
	}

	for start := 0; start < len(rows); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(rows) {
			end = len(rows)
		}

		batch := make([]*Product, 0, end-start)
		for _, row := range rows[start:end] {
			batch = append(batch, &Product{
				ID:             uuid.New(),
				OrganizationID: oid,
				SKU:            row.SKU,
				Name:           row.Name,
				Category:       optional(row.Category),
				Brand:          optional(row.Brand),
				IsActive:       row.IsActive,
			})
		}

		if err := s.repo.UpsertBatch(ctx, batch); err != nil {
			s.logger.Error("catalog upsert batch failed",
				zap.String("organization_id", orgID),
				zap.Int("processed", report.Processed),
				zap.Error(err))
			return report, &PartialImportError{Processed: report.Processed, Err: err}
		}
		report.Processed += len(batch)
	}

	s.logger.Info("catalog import finished",
		zap.String("organization_id", orgID),
		zap.Int("processed", report.Processed),
		zap.Int("skipped", len(report.Skipped)))
	return report, nil
}

// parseProductCSV reads a comma-delimited feed with a required header
// row. Columns are matched by name regardless of order; unrecognized
// columns are ignored. Rows missing sku or name are skipped with their
// source line number, taken from the reader so blank lines in the file
// do not shift the reported positions.
func parseProductCSV(input io.Reader) ([]productRow, []SkippedRow, error) {
	reader := csv.NewReader(input)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("%w: missing header row", ErrMalformedCSV)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["sku"]; !ok {
		return nil, nil, fmt.Errorf("%w: header has no sku column", ErrMalformedCSV)
	}
	if _, ok := columns["name"]; !ok {
		return nil, nil, fmt.Errorf("%w: header has no name column", ErrMalformedCSV)
	}

	field := func(record []string, column string) string {
		idx, ok := columns[column]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var rows []productRow
	var skipped []SkippedRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
		}
		line, _ := reader.FieldPos(0)

		sku := field(record, "sku")
		name := field(record, "name")
		switch {
		case sku == "":
			skipped = append(skipped, SkippedRow{Line: line, Reason: "missing sku", Raw: record})
			continue
		case name == "":
			skipped = append(skipped, SkippedRow{Line: line, Reason: "missing name", Raw: record})
			continue
		}

		rows = append(rows, productRow{
			SKU:      sku,
			Name:     name,
			Category: field(record, "category"),
			Brand:    field(record, "brand"),
			IsActive: parseActiveFlag(field(record, "is_active")),
		})
	}
	return rows, skipped, nil
}

// parseActiveFlag coerces the is_active column: empty defaults to
// true, the usual truthy spellings mean true, anything else is false.
func parseActiveFlag(value string) bool {
	if value == "" {
		return true
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
