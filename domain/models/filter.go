package models

import (
	"fmt"
	"strings"
	"time"
)

// Dimension is a filterable axis of the dataset.
type Dimension string

const (
	DimAgency       Dimension = "agency"
	DimGender       Dimension = "gender"
	DimReason       Dimension = "reason"
	DimAnalyst      Dimension = "analyst"
	DimPayrollMonth Dimension = "payroll_month"
	DimUploadedBy   Dimension = "uploaded_by"
	DimBankLane     Dimension = "bank_lane"
	DimLRDBank      Dimension = "lrd_bank"
	DimUSDBank      Dimension = "usd_bank"
	DimSalaryBand   Dimension = "salary_band"
	DimUploadedAt   Dimension = "uploaded_at"
)

// Dimensions returns all filter dimensions in display order.
func Dimensions() []Dimension {
	return []Dimension{
		DimAgency, DimGender, DimReason, DimAnalyst,
		DimPayrollMonth, DimUploadedBy, DimBankLane,
		DimLRDBank, DimUSDBank, DimSalaryBand, DimUploadedAt,
	}
}

// Selection is either unconstrained or pinned to one value.
// The zero value is unconstrained.
type Selection struct {
	value  string
	pinned bool
}

func Any() Selection { return Selection{} }

func Only(v string) Selection { return Selection{value: v, pinned: true} }

func (s Selection) Value() (string, bool) { return s.value, s.pinned }

func (s Selection) IsAny() bool { return !s.pinned }

func (s Selection) String() string {
	if !s.pinned {
		return "All"
	}
	return fmt.Sprintf("%q", s.value)
}

// BankLane is the currency channel that decides which bank column is filtered.
type BankLane string

const (
	LaneAny BankLane = ""
	LaneLRD BankLane = "LRD"
	LaneUSD BankLane = "USD"
)

func ParseBankLane(s string) (BankLane, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ALL":
		return LaneAny, nil
	case "LRD":
		return LaneLRD, nil
	case "USD":
		return LaneUSD, nil
	}
	return LaneAny, fmt.Errorf("unknown bank lane %q", s)
}

// Field returns the bank-name column of the lane.
func (l BankLane) Field() (Field, bool) {
	switch l {
	case LaneLRD:
		return FieldLRDBank, true
	case LaneUSD:
		return FieldUSDBank, true
	}
	return 0, false
}

// BankFilter pins a bank name inside one lane. Name is only consulted for LaneLRD/LaneUSD.
type BankFilter struct {
	Lane BankLane
	Name Selection
}

// DateRange bounds uploaded_at by calendar day, both ends inclusive.
// The zero value is unconstrained.
type DateRange struct {
	start, end time.Time
	set        bool
}

func AnyDate() DateRange { return DateRange{} }

func Between(start, end time.Time) DateRange {
	return DateRange{start: start, end: end, set: true}
}

func (d DateRange) Bounds() (start, end time.Time, ok bool) {
	return d.start, d.end, d.set
}

func (d DateRange) IsAny() bool { return !d.set }

// FilterSpec is one selection per dimension. FilterSpec{} selects everything.
type FilterSpec struct {
	Agency       Selection
	Gender       Selection
	Reason       Selection
	Analyst      Selection
	PayrollMonth Selection
	UploadedBy   Selection
	SalaryBand   Selection
	Bank         BankFilter
	Dates        DateRange
}

// IsUnconstrained reports whether no dimension restricts the view.
func (f FilterSpec) IsUnconstrained() bool {
	if !f.Agency.IsAny() || !f.Gender.IsAny() || !f.Reason.IsAny() || !f.Analyst.IsAny() ||
		!f.PayrollMonth.IsAny() || !f.UploadedBy.IsAny() || !f.SalaryBand.IsAny() {
		return false
	}
	if f.Bank.Lane != LaneAny && !f.Bank.Name.IsAny() {
		return false
	}
	return f.Dates.IsAny()
}

// CatalogEntry describes the values offered for one dimension.
type CatalogEntry struct {
	Available bool      `json:"available"`
	Values    []string  `json:"values,omitempty"`
	Min       time.Time `json:"min,omitempty"`
	Max       time.Time `json:"max,omitempty"`
}

type Catalog map[Dimension]CatalogEntry
