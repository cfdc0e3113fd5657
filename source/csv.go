package source

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pivolan/payroll_analyzer/domain/models"
	"github.com/pivolan/payroll_analyzer/payroll"
	"go.uber.org/zap"
)

// CSVSource reads the sheet from a CSV file, optionally gzip, zip or lz4 compressed.
type CSVSource struct {
	Path   string
	logger *zap.Logger
}

func NewCSVSource(path string, logger *zap.Logger) *CSVSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVSource{Path: path, logger: logger}
}

func (s *CSVSource) Fetch(ctx context.Context) (*models.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := openData(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer rc.Close()

	raw, err := ReadCSV(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	s.logger.Info("csv loaded", zap.String("path", s.Path), zap.Int("rows", len(raw.Rows)), zap.Int("columns", len(raw.Headers)))
	return raw, nil
}

// ReadCSV parses a comma, semicolon or tab separated table. A first row that
// looks like data is kept as data: with 22 columns it is bound to the expected
// headers, otherwise columns are named column_1, column_2 and so on.
func ReadCSV(r io.Reader) (*models.RawTable, error) {
	br := bufio.NewReader(r)
	peek, _ := br.Peek(4096)
	cr := csv.NewReader(br)
	cr.Comma = detectComma(string(peek))
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptySheet
	}
	first := records[0]
	if len(first) > 0 {
		first[0] = strings.TrimPrefix(first[0], "\ufeff")
	}

	raw := &models.RawTable{}
	data := records[1:]
	switch {
	case isHeaderRow(first):
		raw.Headers = first
	case len(first) == len(models.ExpectedHeaders):
		raw.Headers = append([]string(nil), models.ExpectedHeaders...)
		data = records
	default:
		raw.Headers = make([]string, len(first))
		for i := range first {
			raw.Headers[i] = generateColumnName(i)
		}
		data = records
	}

	raw.Rows = make([][]interface{}, 0, len(data))
	for _, rec := range data {
		if isBlankRecord(rec) {
			continue
		}
		row := make([]interface{}, len(rec))
		for i, v := range rec {
			row[i] = v
		}
		raw.Rows = append(raw.Rows, row)
	}
	return raw, nil
}

func detectComma(sample string) rune {
	line := sample
	if i := strings.IndexByte(sample, '\n'); i >= 0 {
		line = sample[:i]
	}
	best, bestCount := ',', strings.Count(line, ",")
	for _, c := range []rune{';', '\t'} {
		if n := strings.Count(line, string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// isHeaderRow treats a row naming any payroll column as a header, and otherwise
// falls back to the share of header-like cells.
func isHeaderRow(row []string) bool {
	likely := 0
	for _, field := range row {
		if payroll.KnownHeader(field) {
			return true
		}
		if isLikelyHeader(field) {
			likely++
		}
	}
	if len(row) == len(models.ExpectedHeaders) {
		return false
	}
	return len(row) > 0 && float64(likely)/float64(len(row)) >= 0.5
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`),
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[\sT]\d{2}:\d{2}:\d{2}(\.\d+)?Z?$`),
}

func isLikelyHeader(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}
	for _, p := range datePatterns {
		if p.MatchString(text) {
			return false
		}
	}

	letters, others := 0, 0
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsSpace(r):
		default:
			others++
		}
	}
	return letters > 0 && float64(letters)/float64(letters+others) >= 0.3
}

func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}
