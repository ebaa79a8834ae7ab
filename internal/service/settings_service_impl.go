package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/repository"
)

type settingsService struct {
	settings repository.SettingsRepo
	projects repository.ProjectRepo
	observer UseCaseObserver
	newID    func() string
}

func NewSettingsService(
	settings repository.SettingsRepo,
	projects repository.ProjectRepo,
	observers ...UseCaseObserver,
) SettingsService {
	return &settingsService{
		settings: settings,
		projects: projects,
		observer: useCaseObserverOrNoop(observers),
		newID:    newID,
	}
}

func (s *settingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.settings.Get(ctx)
}

// Save validates names, coerces negative numbers and overwrites the record.
// Save validates and stores a copy of settings; the caller's slices are
// left untouched.
func (s *settingsService) Save(ctx context.Context, settings domain.Settings) error {
	settings = settings.Clone()
	return s.save(ctx, &settings)
}

// save normalizes settings in place, so callers that fetched their own copy
// see minted ids and trimmed names afterwards.
func (s *settingsService) save(ctx context.Context, settings *domain.Settings) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"job_types": len(settings.JobTypes), "templates": len(settings.Templates)}
	defer observe(ctx, s.observer, "save-settings", startedAt, fields, &err)

	seen := make(map[string]bool, len(settings.JobTypes))
	for i := range settings.JobTypes {
		jt := &settings.JobTypes[i]
		if jt.ID == "" {
			jt.ID = s.newID()
		}
		if seen[jt.ID] {
			return fmt.Errorf("%w: duplicate job type id %q", ErrValidation, jt.ID)
		}
		seen[jt.ID] = true
		if jt.Name, err = requireName("job type", jt.Name); err != nil {
			return err
		}
		jt.MonthlyRate = domain.NonNegative(jt.MonthlyRate)
	}

	seen = make(map[string]bool, len(settings.Templates))
	for i := range settings.Templates {
		t := &settings.Templates[i]
		if t.ID == "" {
			t.ID = s.newID()
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: duplicate template id %q", ErrValidation, t.ID)
		}
		seen[t.ID] = true
		if t.Name, err = requireName("template", t.Name); err != nil {
			return err
		}
		if t.WorkItems == nil {
			t.WorkItems = []domain.TemplateItem{}
		}
		normalizeTemplateItems(t.WorkItems)
	}

	if settings.JobTypes == nil {
		settings.JobTypes = []domain.JobType{}
	}
	if settings.Templates == nil {
		settings.Templates = []domain.Template{}
	}
	return s.settings.Save(ctx, *settings)
}

func (s *settingsService) IsCustomized(ctx context.Context) (bool, error) {
	return s.settings.Exists(ctx)
}

// Reset stores the built-in defaults, discarding custom job types and
// templates.
func (s *settingsService) Reset(ctx context.Context) error {
	settings := domain.DefaultSettings()
	return s.save(ctx, &settings)
}

func (s *settingsService) AddJobType(ctx context.Context, name string, monthlyRate float64) (*domain.JobType, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	jt := domain.JobType{
		ID:          s.newID(),
		Name:        name,
		MonthlyRate: domain.NonNegative(monthlyRate),
	}
	settings.JobTypes = append(settings.JobTypes, jt)
	if err := s.save(ctx, &settings); err != nil {
		return nil, err
	}
	added := settings.JobTypes[len(settings.JobTypes)-1]
	return &added, nil
}

func (s *settingsService) UpdateJobType(ctx context.Context, id string, patch JobTypePatch) (*domain.JobType, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	jt := domain.FindJobType(settings.JobTypes, id)
	if jt == nil {
		return nil, fmt.Errorf("%w: %q", ErrJobTypeNotFound, id)
	}
	if patch.Name != nil {
		jt.Name = *patch.Name
	}
	if patch.MonthlyRate != nil {
		jt.MonthlyRate = *patch.MonthlyRate
	}
	if err := s.save(ctx, &settings); err != nil {
		return nil, err
	}
	updated := *domain.FindJobType(settings.JobTypes, id)
	return &updated, nil
}

// RemoveJobType deletes a job type without touching the items that use it.
// The returned usage tells the caller how many items are now orphaned.
func (s *settingsService) RemoveJobType(ctx context.Context, id string) (JobTypeUsage, error) {
	var usage JobTypeUsage

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return usage, err
	}
	idx := -1
	for i, jt := range settings.JobTypes {
		if jt.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return usage, fmt.Errorf("%w: %q", ErrJobTypeNotFound, id)
	}
	settings.JobTypes = append(settings.JobTypes[:idx], settings.JobTypes[idx+1:]...)

	for _, t := range settings.Templates {
		for _, item := range t.WorkItems {
			if item.JobTypeID == id {
				usage.TemplateItems++
			}
		}
	}
	projects, err := s.projects.List(ctx)
	if err != nil {
		return usage, err
	}
	for _, p := range projects {
		for _, item := range p.WorkItems {
			if item.JobTypeID == id {
				usage.WorkItems++
			}
		}
	}

	return usage, s.save(ctx, &settings)
}
