package payroll

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pivolan/payroll_analyzer/domain/models"
)

type cellState int

const (
	cellOK cellState = iota
	cellBlank
	cellInvalid
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
}

func toNumber(v interface{}) (float64, cellState) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, cellBlank
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case uint32:
		f = float64(x)
	case []byte:
		return toNumber(string(x))
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, cellBlank
		}
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil {
			return 0, cellInvalid
		}
		f = parsed
	default:
		return 0, cellInvalid
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, cellInvalid
	}
	return f, cellOK
}

func toTimestamp(v interface{}) (models.Timestamp, cellState) {
	switch x := v.(type) {
	case nil:
		return models.Timestamp{}, cellBlank
	case time.Time:
		if x.IsZero() {
			return models.Timestamp{}, cellBlank
		}
		return models.Timestamp{Time: x, Valid: true}, cellOK
	case []byte:
		return toTimestamp(string(x))
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return models.Timestamp{}, cellBlank
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return models.Timestamp{Time: t, Valid: true}, cellOK
			}
		}
	}
	return models.Timestamp{}, cellInvalid
}

func toText(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case []byte:
		return strings.TrimSpace(string(x))
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format("2006-01-02")
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
