package service

import (
	"context"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/estimate"
	"github.com/alexanderramin/estimate/internal/export"
	"github.com/alexanderramin/estimate/internal/importer"
)

// NewProjectInput describes a project to create. TemplateID, when set,
// seeds the project with a copy of that template's items.
type NewProjectInput struct {
	Name         string
	CustomerName string
	TemplateID   string
}

// ProjectPatch holds the project fields that can be edited. Nil means keep.
type ProjectPatch struct {
	Name         *string
	CustomerName *string
}

// WorkItemInput describes a new work item. An empty JobTypeID selects the
// first job type of the current settings.
type WorkItemInput struct {
	Name      string
	JobTypeID string
	ManMonths float64
}

// WorkItemPatch holds the work item fields that can be edited.
type WorkItemPatch struct {
	Name      *string
	JobTypeID *string
	ManMonths *float64
}

// JobTypePatch holds the job type fields that can be edited.
type JobTypePatch struct {
	Name        *string
	MonthlyRate *float64
}

// JobTypeUsage counts the items that still reference a job type.
type JobTypeUsage struct {
	WorkItems     int
	TemplateItems int
}

// ProjectEstimate is a project together with the rate table it was priced
// against and the derived totals.
type ProjectEstimate struct {
	Project  domain.EstimateProject
	JobTypes []domain.JobType
	Summary  estimate.Summary
}

// TemplateImportResult reports what an import changed.
type TemplateImportResult struct {
	Added    int
	Replaced int
	Warnings []string
}

type ProjectService interface {
	List(ctx context.Context) ([]domain.EstimateProject, error)
	GetByID(ctx context.Context, id string) (*domain.EstimateProject, error)
	Create(ctx context.Context, in NewProjectInput) (*domain.EstimateProject, error)
	Save(ctx context.Context, p *domain.EstimateProject) error
	Update(ctx context.Context, id string, patch ProjectPatch) (*domain.EstimateProject, error)
	Delete(ctx context.Context, id string) error

	AddWorkItem(ctx context.Context, projectID string, in WorkItemInput) (*domain.WorkItem, error)
	UpdateWorkItem(ctx context.Context, projectID, itemID string, patch WorkItemPatch) (*domain.WorkItem, error)
	RemoveWorkItem(ctx context.Context, projectID, itemID string) error
	ApplyTemplate(ctx context.Context, projectID, templateID string) ([]domain.WorkItem, error)

	Estimate(ctx context.Context, projectID string) (*ProjectEstimate, error)
}

type SettingsService interface {
	Get(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, s domain.Settings) error
	IsCustomized(ctx context.Context) (bool, error)
	Reset(ctx context.Context) error

	AddJobType(ctx context.Context, name string, monthlyRate float64) (*domain.JobType, error)
	UpdateJobType(ctx context.Context, id string, patch JobTypePatch) (*domain.JobType, error)
	RemoveJobType(ctx context.Context, id string) (JobTypeUsage, error)
}

type TemplateService interface {
	List(ctx context.Context) ([]domain.Template, error)
	Get(ctx context.Context, id string) (*domain.Template, error)
	Save(ctx context.Context, t domain.Template) (*domain.Template, error)
	Remove(ctx context.Context, id string) error
	Rename(ctx context.Context, id, name string) (*domain.Template, error)
	AddItem(ctx context.Context, id string, in WorkItemInput) (*domain.TemplateItem, error)
	UpdateItem(ctx context.Context, id string, index int, patch WorkItemPatch) (*domain.TemplateItem, error)
	RemoveItem(ctx context.Context, id string, index int) error
	FromProject(ctx context.Context, projectID, name string) (*domain.Template, error)
	Import(ctx context.Context, doc *importer.TemplateFile) (*TemplateImportResult, error)
	Export(ctx context.Context, ids []string) (*importer.TemplateFile, error)
}

type ExportService interface {
	Render(ctx context.Context, projectID string, format export.Format) ([]byte, error)
}
