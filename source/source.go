// Package source materializes the payroll transactions sheet from files, SQL tables and Google Sheets.
package source

import (
	"context"
	"errors"

	"github.com/pivolan/payroll_analyzer/domain/models"
)

var (
	ErrUnsupportedArchive = errors.New("unsupported file type")
	ErrEmptySheet         = errors.New("sheet has no header row")
)

// Source loads the raw transactions table.
type Source interface {
	Fetch(ctx context.Context) (*models.RawTable, error)
}

// Appender is a Source that also accepts new rows.
type Appender interface {
	Source
	Append(ctx context.Context, raw *models.RawTable) (int, error)
}
