package payroll

import (
	"errors"
	"fmt"

	"github.com/pivolan/payroll_analyzer/domain/models"
)

var (
	ErrNilTable         = errors.New("nil table")
	ErrInvalidBandWidth = errors.New("invalid salary band width")
	ErrMissingColumn    = errors.New("missing column")
)

// MissingColumnError reports a structurally required column that the source did not carry.
type MissingColumnError struct {
	Field models.Field
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Field.Header())
}

func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}
