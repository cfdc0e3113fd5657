package source

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSQLSourceTableName(t *testing.T) {
	tests := []struct {
		table string
		ok    bool
	}{
		{"transactions", true},
		{"payroll.transactions", true},
		{"_staging2", true},
		{"transactions; DROP TABLE users", false},
		{"2024_data", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			src, err := NewSQLSource(nil, tt.table, nil)
			if tt.ok {
				assert.NoError(t, err)
				assert.Equal(t, tt.table, src.table)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSQLValue(t *testing.T) {
	at := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Health", sqlValue([]byte("Health")))
	assert.Equal(t, at, sqlValue(at))
	assert.Equal(t, int64(5), sqlValue(int64(5)))
	assert.Nil(t, sqlValue(nil))
}
