package repository

import (
	"context"

	"github.com/alexanderramin/estimate/internal/domain"
)

// Record keys. Each record is one JSON document in the key-value store.
const (
	ProjectsKey = "estimate_projects"
	SettingsKey = "estimate_settings"
)

// ProjectRepo persists the projects collection as a single record.
type ProjectRepo interface {
	List(ctx context.Context) ([]domain.EstimateProject, error)
	GetByID(ctx context.Context, id string) (*domain.EstimateProject, error)
	Save(ctx context.Context, p domain.EstimateProject) error
	Delete(ctx context.Context, id string) error
}

// SettingsRepo persists the settings singleton.
type SettingsRepo interface {
	Get(ctx context.Context) (domain.Settings, error)
	Exists(ctx context.Context) (bool, error)
	Save(ctx context.Context, s domain.Settings) error
}
