package service

import (
	"context"
	"time"

	"github.com/alexanderramin/estimate/internal/export"
)

type exportService struct {
	projects ProjectService
	opts     export.Options
	observer UseCaseObserver
	now      func() time.Time
}

func NewExportService(projects ProjectService, opts export.Options, observers ...UseCaseObserver) ExportService {
	return &exportService{
		projects: projects,
		opts:     opts,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *exportService) Render(ctx context.Context, projectID string, format export.Format) (out []byte, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID, "format": string(format)}
	defer observe(ctx, s.observer, "export-project", startedAt, fields, &err)

	est, err := s.projects.Estimate(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out, err = export.Render(export.Document{
		Project:     est.Project,
		JobTypes:    est.JobTypes,
		Summary:     est.Summary,
		GeneratedAt: s.now(),
	}, format, s.opts)
	if err != nil {
		return nil, err
	}
	fields["bytes"] = len(out)
	return out, nil
}
