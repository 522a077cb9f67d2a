package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
)

// Export projections. "students" drops the role column; "teachers" drops
// role and group.
const (
	ProjectionAll      = "all"
	ProjectionStudents = "students"
	ProjectionTeachers = "teachers"
)

type ExportService interface {
	// ExportCSV renders the attendance table as CSV. The header row is
	// unquoted; every data cell is double-quoted.
	ExportCSV(ctx context.Context, projection string) ([]byte, error)
	// ExportXLSX renders the same projection as an Excel workbook.
	ExportXLSX(ctx context.Context, projection string) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

type exportTable struct {
	header []string
	rows   [][]string
}

func (s *exportService) table(ctx context.Context, projection string) (*exportTable, error) {
	filters := repositories.AttendanceFilters{}
	switch projection {
	case "", ProjectionAll:
		projection = ProjectionAll
	case ProjectionStudents:
		role := models.RoleStudent
		filters.Role = &role
	case ProjectionTeachers:
		role := models.RoleTeacher
		filters.Role = &role
	default:
		return nil, ErrUnknownProjection
	}

	records, err := s.repo.Attendance().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list records for export: %w", err)
	}

	table := &exportTable{}
	switch projection {
	case ProjectionStudents:
		table.header = []string{"name", "national_id", "group", "classroom", "kind", "date", "time", "status"}
		for _, r := range records {
			table.rows = append(table.rows, []string{
				r.Name, r.NationalID, r.Group, r.Classroom, string(r.Kind), r.Date, r.Time, string(r.Status),
			})
		}
	case ProjectionTeachers:
		table.header = []string{"name", "national_id", "classroom", "kind", "date", "time", "status"}
		for _, r := range records {
			table.rows = append(table.rows, []string{
				r.Name, r.NationalID, r.Classroom, string(r.Kind), r.Date, r.Time, string(r.Status),
			})
		}
	default:
		table.header = []string{"name", "national_id", "role", "group", "classroom", "kind", "date", "time", "status"}
		for _, r := range records {
			table.rows = append(table.rows, []string{
				r.Name, r.NationalID, string(r.Role), r.Group, r.Classroom, string(r.Kind), r.Date, r.Time, string(r.Status),
			})
		}
	}
	return table, nil
}

func (s *exportService) ExportCSV(ctx context.Context, projection string) ([]byte, error) {
	table, err := s.table(ctx, projection)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(strings.Join(table.header, ","))
	buf.WriteString("\n")
	for _, row := range table.rows {
		for i, cell := range row {
			if i > 0 {
				buf.WriteString(",")
			}
			buf.WriteString(quoteCell(cell))
		}
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// quoteCell always wraps the value in double quotes, doubling embedded
// quotes. Consumers of these files expect every data cell quoted, which
// encoding/csv does not guarantee.
func quoteCell(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func (s *exportService) ExportXLSX(ctx context.Context, projection string) ([]byte, error) {
	table, err := s.table(ctx, projection)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Attendance"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create export sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	writeRow := func(rowNum int, values []string) error {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRow(1, table.header); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}
	for i, row := range table.rows {
		if err := writeRow(i+2, row); err != nil {
			return nil, fmt.Errorf("failed to write export row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
