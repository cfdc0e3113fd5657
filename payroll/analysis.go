package payroll

import (
	"fmt"

	"github.com/pivolan/payroll_analyzer/domain/models"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
)

// Analyze filters t, then computes metrics and the flow for the resulting view.
// When metrics cannot be computed the partial analysis is returned along with the error.
func Analyze(t *models.Table, spec models.FilterSpec, caps Capabilities, opts ...Option) (*models.Analysis, error) {
	if t == nil {
		return nil, ErrNilTable
	}
	o := newOptions(opts)
	a := &models.Analysis{
		SessionID: uuid.NewV4().String(),
		Spec:      spec,
	}
	a.View = Apply(t, spec)
	a.Flow = BuildFlow(a.View, caps, opts...)

	metrics, err := Summarize(a.View)
	if err != nil {
		o.logger.Warn("metrics unavailable", zap.String("session", a.SessionID), zap.Error(err))
		return a, fmt.Errorf("analysis %s: %w", a.SessionID, err)
	}
	a.Metrics = metrics
	o.logger.Debug("analysis done",
		zap.String("session", a.SessionID),
		zap.Int("rows", a.View.Len()),
		zap.Int("of", t.Len()),
		zap.Bool("graph", a.Flow.Graph != nil),
	)
	return a, nil
}
