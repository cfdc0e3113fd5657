package source

import (
	"time"

	"github.com/pivolan/payroll_analyzer/domain/models"
)

const (
	uploadedByHeader = "uploaded_by"
	uploadedAtHeader = "uploaded_at"
)

// StampUpload returns a copy of raw with uploaded_by and uploaded_at set on every row.
// Existing audit columns are overwritten, missing ones are appended.
func StampUpload(raw *models.RawTable, user string, now time.Time) *models.RawTable {
	if raw == nil {
		return nil
	}
	out := &models.RawTable{Headers: append([]string(nil), raw.Headers...)}
	byCol, atCol := indexOf(out.Headers, uploadedByHeader), indexOf(out.Headers, uploadedAtHeader)
	if byCol < 0 {
		byCol = len(out.Headers)
		out.Headers = append(out.Headers, uploadedByHeader)
	}
	if atCol < 0 {
		atCol = len(out.Headers)
		out.Headers = append(out.Headers, uploadedAtHeader)
	}

	stamp := isoUTC(now)
	out.Rows = make([][]interface{}, len(raw.Rows))
	for i, src := range raw.Rows {
		row := make([]interface{}, len(out.Headers))
		copy(row, src)
		row[byCol] = user
		row[atCol] = stamp
		out.Rows[i] = row
	}
	return out
}

// isoUTC formats like an ISO timestamp without zone, microseconds only when present.
func isoUTC(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/1000 != 0 {
		return t.Format("2006-01-02T15:04:05.000000")
	}
	return t.Format("2006-01-02T15:04:05")
}

func indexOf(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}
