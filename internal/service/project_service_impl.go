package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/estimate"
	"github.com/alexanderramin/estimate/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	settings repository.SettingsRepo
	observer UseCaseObserver
	now      func() time.Time
	newID    func() string
}

func NewProjectService(
	projects repository.ProjectRepo,
	settings repository.SettingsRepo,
	observers ...UseCaseObserver,
) ProjectService {
	return &projectService{
		projects: projects,
		settings: settings,
		observer: useCaseObserverOrNoop(observers),
		now:      nowUTC,
		newID:    newID,
	}
}

func (s *projectService) List(ctx context.Context) ([]domain.EstimateProject, error) {
	return s.projects.List(ctx)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.EstimateProject, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) Create(ctx context.Context, in NewProjectInput) (p *domain.EstimateProject, err error) {
	startedAt := time.Now()
	fields := map[string]any{"template_id": in.TemplateID}
	defer observe(ctx, s.observer, "create-project", startedAt, fields, &err)

	name, err := requireName("project", in.Name)
	if err != nil {
		return nil, err
	}

	now := s.now()
	p = &domain.EstimateProject{
		ID:           s.newID(),
		Name:         name,
		CustomerName: in.CustomerName,
		CreatedAt:    now,
		UpdatedAt:    now,
		WorkItems:    []domain.WorkItem{},
	}
	fields["project_id"] = p.ID

	if in.TemplateID != "" {
		settings, err := s.settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		t := domain.FindTemplate(settings.Templates, in.TemplateID)
		if t == nil {
			return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, in.TemplateID)
		}
		p.AppendTemplate(*t, s.newID)
	}

	if err := s.projects.Save(ctx, *p); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return p, nil
}

// Save validates and stores p. CreatedAt is taken from the stored copy when
// one exists; UpdatedAt is always refreshed.
func (s *projectService) Save(ctx context.Context, p *domain.EstimateProject) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": p.ID}
	defer observe(ctx, s.observer, "save-project", startedAt, fields, &err)

	name, err := requireName("project", p.Name)
	if err != nil {
		return err
	}
	p.Name = name

	now := s.now()
	if p.ID == "" {
		p.ID = s.newID()
		fields["project_id"] = p.ID
	} else if stored, err := s.projects.GetByID(ctx, p.ID); err == nil {
		p.CreatedAt = stored.CreatedAt
	} else if !isProjectNotFound(err) {
		return err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if p.WorkItems == nil {
		p.WorkItems = []domain.WorkItem{}
	}
	normalizeWorkItems(p.WorkItems, s.newID)
	fields["work_items"] = len(p.WorkItems)

	return s.projects.Save(ctx, *p)
}

func (s *projectService) Update(ctx context.Context, id string, patch ProjectPatch) (*domain.EstimateProject, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.CustomerName != nil {
		p.CustomerName = *patch.CustomerName
	}
	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "delete-project", startedAt, map[string]any{"project_id": id}, &err)
	return s.projects.Delete(ctx, id)
}

func (s *projectService) AddWorkItem(ctx context.Context, projectID string, in WorkItemInput) (*domain.WorkItem, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	jobTypeID := in.JobTypeID
	if jobTypeID == "" {
		settings, err := s.settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		jobTypeID = defaultJobTypeID(settings)
	}

	item := domain.WorkItem{
		ID:        s.newID(),
		Name:      in.Name,
		JobTypeID: jobTypeID,
		ManMonths: domain.NonNegative(in.ManMonths),
	}
	p.WorkItems = append(p.WorkItems, item)

	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *projectService) UpdateWorkItem(ctx context.Context, projectID, itemID string, patch WorkItemPatch) (*domain.WorkItem, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	idx := p.FindWorkItem(itemID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrWorkItemNotFound, itemID)
	}

	item := &p.WorkItems[idx]
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.JobTypeID != nil {
		item.JobTypeID = *patch.JobTypeID
	}
	if patch.ManMonths != nil {
		item.ManMonths = domain.NonNegative(*patch.ManMonths)
	}
	updated := *item

	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *projectService) RemoveWorkItem(ctx context.Context, projectID, itemID string) error {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	idx := p.FindWorkItem(itemID)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrWorkItemNotFound, itemID)
	}
	p.WorkItems = append(p.WorkItems[:idx], p.WorkItems[idx+1:]...)
	return s.Save(ctx, p)
}

func (s *projectService) ApplyTemplate(ctx context.Context, projectID, templateID string) (added []domain.WorkItem, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID, "template_id": templateID}
	defer observe(ctx, s.observer, "apply-template", startedAt, fields, &err)

	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	t := domain.FindTemplate(settings.Templates, templateID)
	if t == nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, templateID)
	}

	added = p.AppendTemplate(*t, s.newID)
	fields["added"] = len(added)
	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	return added, nil
}

func (s *projectService) Estimate(ctx context.Context, projectID string) (*ProjectEstimate, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &ProjectEstimate{
		Project:  *p,
		JobTypes: settings.JobTypes,
		Summary:  estimate.Summarize(p.WorkItems, settings.JobTypes),
	}, nil
}
