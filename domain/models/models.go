package models

import "time"

// Field is a semantic column of the payroll transactions sheet.
type Field int

const (
	FieldNo Field = iota
	FieldEmployeeID
	FieldFirstName
	FieldMiddleName
	FieldLastName
	FieldGender
	FieldAgencyCode
	FieldAgency
	FieldAdjSalary
	FieldCurrentSalary
	FieldDifference
	FieldCurrentPosition
	FieldNewPosition
	FieldReason
	FieldLRDBank
	FieldLRDBankAccount
	FieldUSDBank
	FieldUSDAccount
	FieldDOB
	FieldAnalyst
	FieldUploadedBy
	FieldUploadedAt
)

type ColumnKind int

const (
	KindText ColumnKind = iota
	KindNumeric
	KindTimestamp
)

// ExpectedHeaders is the column order of the transactions worksheet.
var ExpectedHeaders = []string{
	"NO", "Employee ID", "First Name", "Middle Name", "Last Name",
	"Gender", "Agency Code", "Agency", "Adj. Salary", "Current Salary",
	"Difference", "Current Position", "New position", "Reason",
	"LRD BANK", "LRD BANK ACCOUNT", "USD BANK", "USD ACCOUNT",
	"DOB", "Analyst", "uploaded_by", "uploaded_at",
}

// Fields returns every semantic field in worksheet order.
func Fields() []Field {
	fields := make([]Field, len(ExpectedHeaders))
	for i := range fields {
		fields[i] = Field(i)
	}
	return fields
}

func (f Field) Header() string {
	if f < 0 || int(f) >= len(ExpectedHeaders) {
		return ""
	}
	return ExpectedHeaders[f]
}

func (f Field) String() string { return f.Header() }

func (f Field) Kind() ColumnKind {
	switch f {
	case FieldAdjSalary, FieldCurrentSalary, FieldDifference:
		return KindNumeric
	case FieldDOB, FieldUploadedAt:
		return KindTimestamp
	}
	return KindText
}

// RawTable is a dataset as a source hands it over: headers and untyped cells.
// Rows may be shorter than Headers, missing cells are treated as empty.
type RawTable struct {
	Headers []string
	Rows    [][]interface{}
}

// Cell returns the value at row i for the given header position, nil when out of range.
func (r *RawTable) Cell(row, col int) interface{} {
	if row < 0 || row >= len(r.Rows) || col < 0 || col >= len(r.Rows[row]) {
		return nil
	}
	return r.Rows[row][col]
}

// Schema tells which semantic fields the source actually carried.
type Schema struct {
	Columns map[Field]string `json:"columns"` // field -> raw header

	// PayrollMonthColumn is the raw header the payroll month was taken from,
	// empty when the month is derived from uploaded_at.
	PayrollMonthColumn string `json:"payrollMonthColumn,omitempty"`
}

func (s Schema) Has(f Field) bool {
	_, ok := s.Columns[f]
	return ok
}

// Missing lists expected fields absent from the source.
func (s Schema) Missing() []Field {
	var missing []Field
	for _, f := range Fields() {
		if !s.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Timestamp is a parsed date; Valid=false is the "no value" marker.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

// Day returns the calendar day as yyyymmdd, 0 for an invalid timestamp.
func (t Timestamp) Day() int {
	if !t.Valid {
		return 0
	}
	return DayOf(t.Time)
}

func DayOf(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

const UnknownLabel = "unknown"

// PayrollMonth is the reporting period of a record. The zero value is the unknown month.
type PayrollMonth struct {
	Label string
	Known bool
}

func (m PayrollMonth) String() string {
	if !m.Known {
		return UnknownLabel
	}
	return m.Label
}

// Record is one payroll adjustment row after normalization.
type Record struct {
	Row int `json:"row"` // position in the source table

	No              string `json:"no"`
	EmployeeID      string `json:"employeeId"`
	FirstName       string `json:"firstName"`
	MiddleName      string `json:"middleName"`
	LastName        string `json:"lastName"`
	Gender          string `json:"gender"`
	AgencyCode      string `json:"agencyCode"`
	Agency          string `json:"agency"`
	CurrentPosition string `json:"currentPosition"`
	NewPosition     string `json:"newPosition"`
	Reason          string `json:"reason"`
	LRDBank         string `json:"lrdBank"`
	LRDBankAccount  string `json:"lrdBankAccount"`
	USDBank         string `json:"usdBank"`
	USDAccount      string `json:"usdAccount"`
	Analyst         string `json:"analyst"`
	UploadedBy      string `json:"uploadedBy"`

	AdjSalary     float64 `json:"adjSalary"`
	CurrentSalary float64 `json:"currentSalary"`
	Difference    float64 `json:"difference"`

	DOB        Timestamp `json:"dob"`
	UploadedAt Timestamp `json:"uploadedAt"`

	PayrollMonth PayrollMonth `json:"payrollMonth"`
	SalaryBand   string       `json:"salaryBand,omitempty"`
}

// Text returns the value of a text field, "" for other kinds.
func (r *Record) Text(f Field) string {
	switch f {
	case FieldNo:
		return r.No
	case FieldEmployeeID:
		return r.EmployeeID
	case FieldFirstName:
		return r.FirstName
	case FieldMiddleName:
		return r.MiddleName
	case FieldLastName:
		return r.LastName
	case FieldGender:
		return r.Gender
	case FieldAgencyCode:
		return r.AgencyCode
	case FieldAgency:
		return r.Agency
	case FieldCurrentPosition:
		return r.CurrentPosition
	case FieldNewPosition:
		return r.NewPosition
	case FieldReason:
		return r.Reason
	case FieldLRDBank:
		return r.LRDBank
	case FieldLRDBankAccount:
		return r.LRDBankAccount
	case FieldUSDBank:
		return r.USDBank
	case FieldUSDAccount:
		return r.USDAccount
	case FieldAnalyst:
		return r.Analyst
	case FieldUploadedBy:
		return r.UploadedBy
	}
	return ""
}

// SetText assigns a text field; other kinds are ignored.
func (r *Record) SetText(f Field, v string) {
	switch f {
	case FieldNo:
		r.No = v
	case FieldEmployeeID:
		r.EmployeeID = v
	case FieldFirstName:
		r.FirstName = v
	case FieldMiddleName:
		r.MiddleName = v
	case FieldLastName:
		r.LastName = v
	case FieldGender:
		r.Gender = v
	case FieldAgencyCode:
		r.AgencyCode = v
	case FieldAgency:
		r.Agency = v
	case FieldCurrentPosition:
		r.CurrentPosition = v
	case FieldNewPosition:
		r.NewPosition = v
	case FieldReason:
		r.Reason = v
	case FieldLRDBank:
		r.LRDBank = v
	case FieldLRDBankAccount:
		r.LRDBankAccount = v
	case FieldUSDBank:
		r.USDBank = v
	case FieldUSDAccount:
		r.USDAccount = v
	case FieldAnalyst:
		r.Analyst = v
	case FieldUploadedBy:
		r.UploadedBy = v
	}
}

// Amount returns a monetary field, 0 for other kinds.
func (r *Record) Amount(f Field) float64 {
	switch f {
	case FieldAdjSalary:
		return r.AdjSalary
	case FieldCurrentSalary:
		return r.CurrentSalary
	case FieldDifference:
		return r.Difference
	}
	return 0
}

func (r *Record) SetAmount(f Field, v float64) {
	switch f {
	case FieldAdjSalary:
		r.AdjSalary = v
	case FieldCurrentSalary:
		r.CurrentSalary = v
	case FieldDifference:
		r.Difference = v
	}
}

func (r *Record) SetTimestamp(f Field, v Timestamp) {
	switch f {
	case FieldDOB:
		r.DOB = v
	case FieldUploadedAt:
		r.UploadedAt = v
	}
}

// Table is a normalized dataset or a filtered view of one.
type Table struct {
	Schema  Schema   `json:"schema"`
	Records []Record `json:"records"`

	// BandWidth is the salary band width used, 0 when the table has no bands.
	BandWidth int `json:"bandWidth,omitempty"`
	// Bands lists the band labels in bin order: every bin for a narrow salary range,
	// only the occupied ones when the range spans too many bins.
	Bands []string `json:"bands,omitempty"`

	// Coercions counts cells per field that failed to parse and were defaulted.
	Coercions map[Field]int `json:"-"`
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

func (t *Table) HasBands() bool {
	return t != nil && t.BandWidth > 0
}

// View returns a table sharing t's schema and bands with the given records.
func (t *Table) View(records []Record) *Table {
	return &Table{
		Schema:    t.Schema,
		Records:   records,
		BandWidth: t.BandWidth,
		Bands:     t.Bands,
	}
}
