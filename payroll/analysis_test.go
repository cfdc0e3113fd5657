package payroll

import (
	"errors"
	"testing"

	"github.com/pivolan/payroll_analyzer/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAnalyze(t *testing.T) {
	table := mustNormalize(t, sampleSheet())
	spec := models.FilterSpec{Reason: models.Only("Promotion")}

	a, err := Analyze(table, spec, Capabilities{Graph: true}, WithLogger(zap.NewExample()))
	require.NoError(t, err)
	assert.Len(t, a.SessionID, 36)
	assert.Equal(t, []int{0, 2}, rowsOf(a.View))
	assert.Equal(t, 2, a.Metrics.Transactions)
	assert.Equal(t, 700.0, a.Metrics.TotalDifference)
	assert.Equal(t, []string{"Health", "Education", "Ann", "Promotion"}, a.Flow.Graph.Nodes)

	b, err := Analyze(table, spec, Capabilities{})
	require.NoError(t, err)
	assert.NotEqual(t, a.SessionID, b.SessionID)
	assert.Len(t, b.Flow.Groups, 2)
}

func TestAnalyzeMissingDifference(t *testing.T) {
	raw := narrowSheet([]string{"Agency", "Analyst", "Reason"},
		[]interface{}{"Health", "Ann", "Promotion"},
		[]interface{}{"Education", "Bob", "Correction"})
	table := mustNormalize(t, raw)

	a, err := Analyze(table, models.FilterSpec{Agency: models.Only("Health")}, Capabilities{Graph: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	require.NotNil(t, a, "partial analysis is returned with the error")
	assert.Nil(t, a.Metrics)
	assert.Equal(t, 1, a.View.Len())
	assert.Equal(t, []string{"Health", "Ann", "Promotion"}, a.Flow.Graph.Nodes)

	catalog := BuildCatalog(table)
	assert.Equal(t, []string{"Education", "Health"}, catalog[models.DimAgency].Values)
}

func TestAnalyzeNil(t *testing.T) {
	_, err := Analyze(nil, models.FilterSpec{}, Capabilities{})
	assert.True(t, errors.Is(err, ErrNilTable))
}
