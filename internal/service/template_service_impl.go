package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/importer"
	"github.com/alexanderramin/estimate/internal/repository"
)

type templateService struct {
	settings SettingsService
	projects repository.ProjectRepo
	observer UseCaseObserver
	newID    func() string
}

// NewTemplateService edits templates through the settings service so all
// settings writes share one validation path.
func NewTemplateService(
	settings SettingsService,
	projects repository.ProjectRepo,
	observers ...UseCaseObserver,
) TemplateService {
	return &templateService{
		settings: settings,
		projects: projects,
		observer: useCaseObserverOrNoop(observers),
		newID:    newID,
	}
}

func (s *templateService) List(ctx context.Context) ([]domain.Template, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return settings.Templates, nil
}

func (s *templateService) Get(ctx context.Context, id string) (*domain.Template, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	t := domain.FindTemplate(settings.Templates, id)
	if t == nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	return t, nil
}

// Save upserts t by id, appending when the id is new or empty.
func (s *templateService) Save(ctx context.Context, t domain.Template) (*domain.Template, error) {
	name, err := requireName("template", t.Name)
	if err != nil {
		return nil, err
	}
	t = t.Clone()
	t.Name = name
	normalizeTemplateItems(t.WorkItems)
	if t.ID == "" {
		t.ID = s.newID()
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if existing := domain.FindTemplate(settings.Templates, t.ID); existing != nil {
		*existing = t
	} else {
		settings.Templates = append(settings.Templates, t)
	}
	if err := s.settings.Save(ctx, settings); err != nil {
		return nil, err
	}
	return domain.FindTemplate(settings.Templates, t.ID), nil
}

func (s *templateService) Remove(ctx context.Context, id string) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	kept := make([]domain.Template, 0, len(settings.Templates))
	for _, t := range settings.Templates {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(settings.Templates) {
		return fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	settings.Templates = kept
	return s.settings.Save(ctx, settings)
}

// Rename changes a template's name.
func (s *templateService) Rename(ctx context.Context, id, name string) (*domain.Template, error) {
	name, err := requireName("template", name)
	if err != nil {
		return nil, err
	}
	return s.edit(ctx, "rename-template", id, func(_ domain.Settings, t *domain.Template) error {
		t.Name = name
		return nil
	})
}

// AddItem appends an item to a template. An empty JobTypeID selects the
// first job type.
func (s *templateService) AddItem(ctx context.Context, id string, in WorkItemInput) (*domain.TemplateItem, error) {
	t, err := s.edit(ctx, "add-template-item", id, func(settings domain.Settings, t *domain.Template) error {
		t.WorkItems = append(t.WorkItems, domain.TemplateItem{
			Name:      in.Name,
			JobTypeID: domain.CoalesceStr(in.JobTypeID, defaultJobTypeID(settings)),
			ManMonths: in.ManMonths,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	added := t.WorkItems[len(t.WorkItems)-1]
	return &added, nil
}

// UpdateItem patches the item at index, counted from zero.
func (s *templateService) UpdateItem(ctx context.Context, id string, index int, patch WorkItemPatch) (*domain.TemplateItem, error) {
	t, err := s.edit(ctx, "update-template-item", id, func(_ domain.Settings, t *domain.Template) error {
		if err := checkItemIndex(t, index); err != nil {
			return err
		}
		item := &t.WorkItems[index]
		if patch.Name != nil {
			item.Name = *patch.Name
		}
		if patch.JobTypeID != nil {
			item.JobTypeID = *patch.JobTypeID
		}
		if patch.ManMonths != nil {
			item.ManMonths = *patch.ManMonths
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	updated := t.WorkItems[index]
	return &updated, nil
}

// RemoveItem deletes the item at index, counted from zero.
func (s *templateService) RemoveItem(ctx context.Context, id string, index int) error {
	_, err := s.edit(ctx, "remove-template-item", id, func(_ domain.Settings, t *domain.Template) error {
		if err := checkItemIndex(t, index); err != nil {
			return err
		}
		t.WorkItems = append(t.WorkItems[:index], t.WorkItems[index+1:]...)
		return nil
	})
	return err
}

// edit loads the template with the given id, applies fn to it and saves
// the settings record.
func (s *templateService) edit(
	ctx context.Context,
	useCase, id string,
	fn func(settings domain.Settings, t *domain.Template) error,
) (out *domain.Template, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, useCase, startedAt, map[string]any{"template_id": id}, &err)

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	t := domain.FindTemplate(settings.Templates, id)
	if t == nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	if err := fn(settings, t); err != nil {
		return nil, err
	}
	normalizeTemplateItems(t.WorkItems)

	if err := s.settings.Save(ctx, settings); err != nil {
		return nil, err
	}
	edited := t.Clone()
	return &edited, nil
}

func checkItemIndex(t *domain.Template, index int) error {
	if index < 0 || index >= len(t.WorkItems) {
		return fmt.Errorf("%w: template item #%d (template has %d items)", ErrWorkItemNotFound, index+1, len(t.WorkItems))
	}
	return nil
}

// FromProject stores the project's work items, without ids, as a new
// template.
func (s *templateService) FromProject(ctx context.Context, projectID, name string) (*domain.Template, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	t := domain.Template{Name: name, WorkItems: make([]domain.TemplateItem, 0, len(p.WorkItems))}
	for _, item := range p.WorkItems {
		t.WorkItems = append(t.WorkItems, item.Stencil())
	}
	return s.Save(ctx, t)
}

func (s *templateService) Import(ctx context.Context, doc *importer.TemplateFile) (result *TemplateImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"templates": len(doc.Templates)}
	defer observe(ctx, s.observer, "import-templates", startedAt, fields, &err)

	if errs := importer.ValidateTemplateFile(doc); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %d problem(s) in template file, first: %v", ErrValidation, len(errs), errs[0])
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	templates, warnings := importer.Convert(doc, settings.JobTypes, s.newID)

	result = &TemplateImportResult{Warnings: warnings}
	for _, t := range templates {
		if existing := domain.FindTemplate(settings.Templates, t.ID); existing != nil {
			*existing = t
			result.Replaced++
		} else {
			settings.Templates = append(settings.Templates, t)
			result.Added++
		}
	}
	fields["added"] = result.Added
	fields["replaced"] = result.Replaced

	if err := s.settings.Save(ctx, settings); err != nil {
		return nil, err
	}
	return result, nil
}

// Export returns the templates with the given ids, or all templates when ids
// is empty.
func (s *templateService) Export(ctx context.Context, ids []string) (*importer.TemplateFile, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return importer.FromTemplates(settings.Templates), nil
	}
	selected := make([]domain.Template, 0, len(ids))
	for _, id := range ids {
		t := domain.FindTemplate(settings.Templates, id)
		if t == nil {
			return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
		}
		selected = append(selected, *t)
	}
	return importer.FromTemplates(selected), nil
}
