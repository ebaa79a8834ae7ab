package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/repository"
	"github.com/google/uuid"
)

func newID() string {
	return uuid.New().String()
}

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// requireName trims s and rejects an empty result.
func requireName(what, s string) (string, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return "", fmt.Errorf("%w: %s name is required", ErrValidation, what)
	}
	return name, nil
}

// normalizeWorkItems gives every item an id and clamps negative effort.
func normalizeWorkItems(items []domain.WorkItem, mint func() string) {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = mint()
		}
		items[i].ManMonths = domain.NonNegative(items[i].ManMonths)
	}
}

func normalizeTemplateItems(items []domain.TemplateItem) {
	for i := range items {
		items[i].ManMonths = domain.NonNegative(items[i].ManMonths)
	}
}

// defaultJobTypeID returns the first configured job type id, or "".
func defaultJobTypeID(s domain.Settings) string {
	if len(s.JobTypes) == 0 {
		return ""
	}
	return s.JobTypes[0].ID
}

func isProjectNotFound(err error) bool {
	return errors.Is(err, repository.ErrProjectNotFound)
}
