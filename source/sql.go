package source

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/pivolan/payroll_analyzer/domain/models"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SQLSource reads the sheet from a database table whose columns carry the sheet headers.
type SQLSource struct {
	db     *gorm.DB
	table  string
	logger *zap.Logger
}

// OpenSQL connects to MySQL with the given DSN.
func OpenSQL(dsn, table string, log *zap.Logger) (*SQLSource, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to database: %w", err)
	}
	return NewSQLSource(db, table, log)
}

func NewSQLSource(db *gorm.DB, table string, log *zap.Logger) (*SQLSource, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLSource{db: db, table: table, logger: log}, nil
}

func (s *SQLSource) Fetch(ctx context.Context) (*models.RawTable, error) {
	rows, err := s.db.WithContext(ctx).Table(s.table).Rows()
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", s.table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	raw := &models.RawTable{Headers: columns}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		for i, v := range values {
			values[i] = sqlValue(v)
		}
		raw.Rows = append(raw.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	s.logger.Info("sql table loaded", zap.String("table", s.table), zap.Int("rows", len(raw.Rows)))
	return raw, nil
}

// Append inserts the rows, keyed by header, into the table.
func (s *SQLSource) Append(ctx context.Context, raw *models.RawTable) (int, error) {
	if raw == nil || len(raw.Rows) == 0 {
		return 0, nil
	}
	batch := make([]map[string]interface{}, 0, len(raw.Rows))
	for i := range raw.Rows {
		row := make(map[string]interface{}, len(raw.Headers))
		for col, h := range raw.Headers {
			row[h] = raw.Cell(i, col)
		}
		batch = append(batch, row)
	}
	tx := s.db.WithContext(ctx).Table(s.table).Create(&batch)
	if tx.Error != nil {
		return 0, fmt.Errorf("insert into %s: %w", s.table, tx.Error)
	}
	s.logger.Info("rows appended", zap.String("table", s.table), zap.Int64("rows", tx.RowsAffected))
	return len(batch), nil
}

// sqlValue turns driver bytes into text so the normalizer sees strings.
func sqlValue(v interface{}) interface{} {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case time.Time:
		return x
	}
	return v
}
