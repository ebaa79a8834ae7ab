package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/kv"
)

// KVProjectRepo implements ProjectRepo on a key-value store. Every write
// rewrites the whole collection under ProjectsKey.
//
// The read-modify-write in Save and Delete is not guarded across
// processes: two sessions writing the same store can lose an update.
type KVProjectRepo struct {
	store kv.Store
}

// NewKVProjectRepo creates a new KVProjectRepo.
func NewKVProjectRepo(store kv.Store) *KVProjectRepo {
	return &KVProjectRepo{store: store}
}

// List returns the stored projects in stored order, or an empty slice when
// nothing has been saved yet.
func (r *KVProjectRepo) List(ctx context.Context) ([]domain.EstimateProject, error) {
	raw, ok, err := r.store.Get(ctx, ProjectsKey)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	if !ok {
		return []domain.EstimateProject{}, nil
	}

	var projects []domain.EstimateProject
	if err := decodeRecord(ProjectsKey, raw, &projects); err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []domain.EstimateProject{}
	}
	return projects, nil
}

func (r *KVProjectRepo) GetByID(ctx context.Context, id string) (*domain.EstimateProject, error) {
	projects, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrProjectNotFound, id)
}

// Save replaces the project with the same id in place, or appends it.
func (r *KVProjectRepo) Save(ctx context.Context, p domain.EstimateProject) error {
	projects, err := r.List(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range projects {
		if projects[i].ID == p.ID {
			projects[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		projects = append(projects, p)
	}

	return r.write(ctx, projects)
}

// Delete removes the project with the given id. A missing id is not an
// error and leaves the store untouched.
func (r *KVProjectRepo) Delete(ctx context.Context, id string) error {
	projects, err := r.List(ctx)
	if err != nil {
		return err
	}

	kept := make([]domain.EstimateProject, 0, len(projects))
	for _, p := range projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(projects) {
		return nil
	}

	return r.write(ctx, kept)
}

func (r *KVProjectRepo) write(ctx context.Context, projects []domain.EstimateProject) error {
	raw, err := encodeRecord(ProjectsKey, projects)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, ProjectsKey, raw); err != nil {
		return fmt.Errorf("saving projects: %w", err)
	}
	return nil
}
