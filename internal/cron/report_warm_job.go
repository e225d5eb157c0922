package cron

import (
	"context"
	"errors"

	"github.com/angelmondragon/sales-analytics/pkg/logger"
)

const reportWarmJobName = "report_warm"

// ReportWarmer precomputes the default reports into the report cache.
type ReportWarmer interface {
	WarmReports(ctx context.Context) (int, error)
}

// ReportWarmJob refreshes cached reports so the first request after expiry stays fast.
type ReportWarmJob struct {
	warmer ReportWarmer
	logg   *logger.Logger
}

func NewReportWarmJob(warmer ReportWarmer, logg *logger.Logger) (*ReportWarmJob, error) {
	if warmer == nil {
		return nil, errors.New("report warmer required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &ReportWarmJob{warmer: warmer, logg: logg}, nil
}

func (j *ReportWarmJob) Name() string { return reportWarmJobName }

func (j *ReportWarmJob) Run(ctx context.Context) error {
	warmed, err := j.warmer.WarmReports(ctx)
	j.logg.Info(j.logg.WithField(ctx, "reports_warmed", warmed), "report cache warmed")
	return err
}
