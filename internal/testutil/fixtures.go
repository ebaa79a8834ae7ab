package testutil

import (
	"time"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/google/uuid"
)

// Project options
type ProjectOption func(*domain.EstimateProject)

func WithWorkItems(items ...domain.WorkItem) ProjectOption {
	return func(p *domain.EstimateProject) {
		p.WorkItems = append(p.WorkItems, items...)
	}
}

func WithCustomer(name string) ProjectOption {
	return func(p *domain.EstimateProject) {
		p.CustomerName = name
	}
}

func WithTimestamps(created, updated time.Time) ProjectOption {
	return func(p *domain.EstimateProject) {
		p.CreatedAt = created
		p.UpdatedAt = updated
	}
}

func WithProjectID(id string) ProjectOption {
	return func(p *domain.EstimateProject) {
		p.ID = id
	}
}

// NewTestProject builds a project with second-precision UTC timestamps so it
// compares equal after a JSON round trip.
func NewTestProject(name string, opts ...ProjectOption) domain.EstimateProject {
	now := time.Now().UTC().Truncate(time.Second)
	p := domain.EstimateProject{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		WorkItems: []domain.WorkItem{},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func NewTestWorkItem(name, jobTypeID string, manMonths float64) domain.WorkItem {
	return domain.WorkItem{
		ID:        uuid.New().String(),
		Name:      name,
		JobTypeID: jobTypeID,
		ManMonths: manMonths,
	}
}

func NewTestJobType(name string, monthlyRate float64) domain.JobType {
	return domain.JobType{
		ID:          uuid.New().String(),
		Name:        name,
		MonthlyRate: monthlyRate,
	}
}

// NewTestTemplate builds a template from work items, stripping their ids.
func NewTestTemplate(name string, items ...domain.WorkItem) domain.Template {
	t := domain.Template{
		ID:        uuid.New().String(),
		Name:      name,
		WorkItems: make([]domain.TemplateItem, 0, len(items)),
	}
	for _, item := range items {
		t.WorkItems = append(t.WorkItems, item.Stencil())
	}
	return t
}
