package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pivolan/payroll_analyzer/domain/models"
	"github.com/pivolan/payroll_analyzer/plot"
	"go.uber.org/zap"
)

// artifact is one rendered chart of an analysis.
type artifact struct {
	Name    string
	Caption string
	Bytes   []byte
}

// renderArtifacts draws every chart the analysis has data for. Charts without data are skipped.
func renderArtifacts(a *models.Analysis, log *zap.Logger) ([]artifact, error) {
	var out []artifact
	add := func(name, caption string, data []byte, err error) error {
		if errors.Is(err, plot.ErrNoData) {
			log.Debug("chart skipped", zap.String("chart", name), zap.Error(err))
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, artifact{Name: name, Caption: caption, Bytes: data})
		return nil
	}

	var buf bytes.Buffer
	var err error
	if a.Flow.Graph != nil {
		err = plot.SankeyHTML(&buf, "Agency → Analyst → Reason", a.Flow.Graph, log)
		err = add("flow.html", "Transaction flow: agency → analyst → reason", buf.Bytes(), err)
	} else {
		err = plot.GroupedBarHTML(&buf, "Transactions by reason and agency", a.Flow.Groups)
		err = add("flow_groups.html", "Transactions by reason, grouped by agency", buf.Bytes(), err)
	}
	if err != nil {
		return nil, err
	}

	if a.Metrics != nil {
		png, err := plot.DrawPlotBar(plot.DifferenceByAgency(a.Metrics))
		if err := add("difference_by_agency.png", "Total salary difference per agency", png, err); err != nil {
			return nil, err
		}
		png, err = plot.DrawPlotBar(plot.TransactionsByReason(a.Metrics))
		if err := add("transactions_by_reason.png", "Number of transactions per reason", png, err); err != nil {
			return nil, err
		}
	}
	if a.View.HasBands() && a.View.Len() > 0 {
		png, err := plot.DrawPlotBar(plot.NewDataBandsForGraph(a.View))
		if err := add("salary_bands.png", "Transactions per adjusted salary band", png, err); err != nil {
			return nil, err
		}
	}
	png, err := plot.DrawPlotBar(plot.NewDataDaysForGraph(a.View))
	if err := add("uploads_per_day.png", "Uploaded transactions per day", png, err); err != nil {
		return nil, err
	}
	return out, nil
}

// writeArtifacts stores the charts under dir/<session> and returns the written paths.
func writeArtifacts(dir, session string, arts []artifact) ([]string, error) {
	target := filepath.Join(dir, session)
	if err := os.MkdirAll(target, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	paths := make([]string, 0, len(arts))
	for _, a := range arts {
		p := filepath.Join(target, a.Name)
		if err := os.WriteFile(p, a.Bytes, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", a.Name, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// removeOldFiles deletes files under dirPath last modified before maxAge, and the directories they leave empty.
func removeOldFiles(dirPath string, maxAge time.Time, log *zap.Logger) error {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}

	for _, file := range files {
		filePath := filepath.Join(dirPath, file.Name())

		if file.IsDir() {
			if err := removeOldFiles(filePath, maxAge, log); err != nil {
				return err
			}
			if rest, err := os.ReadDir(filePath); err == nil && len(rest) == 0 {
				_ = os.Remove(filePath)
			}
			continue
		}
		info, err := file.Info()
		if err != nil {
			return err
		}
		if info.ModTime().Before(maxAge) {
			if err := os.Remove(filePath); err != nil {
				return err
			}
			log.Debug("removed file", zap.String("path", filePath))
		}
	}
	return nil
}
