package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/estimate/internal/domain"
)

// resolveProjectID resolves a project reference which can be a full id, a
// unique id prefix (as shown by 'project list') or an exact name.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	if len(matches) == 0 {
		for _, p := range projects {
			if strings.EqualFold(p.Name, input) {
				matches = append(matches, p.ID)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project reference %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveWorkItemID resolves a work item reference within p: a 1-based
// position as shown by 'project show', a full id, or a unique id prefix.
func resolveWorkItemID(p *domain.EstimateProject, input string) (string, error) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(p.WorkItems) {
			return "", fmt.Errorf("work item #%d not found (project has %d items)", n, len(p.WorkItems))
		}
		return p.WorkItems[n-1].ID, nil
	}
	if p.FindWorkItem(input) >= 0 {
		return input, nil
	}

	var matches []string
	for _, item := range p.WorkItems {
		if strings.HasPrefix(item.ID, input) {
			matches = append(matches, item.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("work item not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("work item prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTemplateItemIndex turns a 1-based position as shown by
// 'template show' into a 0-based index. Template items have no ids.
func resolveTemplateItemIndex(t *domain.Template, input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("template item must be a number from 'template show', got %q", input)
	}
	if n < 1 || n > len(t.WorkItems) {
		return 0, fmt.Errorf("template item #%d not found (template has %d items)", n, len(t.WorkItems))
	}
	return n - 1, nil
}

// resolveJobTypeID accepts a job type id, a case-insensitive name, or a
// unique id prefix.
func resolveJobTypeID(jobTypes []domain.JobType, input string) (string, error) {
	input = strings.TrimSpace(input)
	if jt := domain.FindJobType(jobTypes, input); jt != nil {
		return jt.ID, nil
	}
	for _, jt := range jobTypes {
		if strings.EqualFold(jt.Name, input) {
			return jt.ID, nil
		}
	}

	var matches []string
	for _, jt := range jobTypes {
		if strings.HasPrefix(jt.ID, input) {
			matches = append(matches, jt.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("job type not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("job type reference %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTemplateID accepts a template id, a case-insensitive name, or a
// unique id prefix.
func resolveTemplateID(templates []domain.Template, input string) (string, error) {
	input = strings.TrimSpace(input)
	if t := domain.FindTemplate(templates, input); t != nil {
		return t.ID, nil
	}
	for _, t := range templates {
		if strings.EqualFold(t.Name, input) {
			return t.ID, nil
		}
	}

	var matches []string
	for _, t := range templates {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("template not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("template reference %q is ambiguous (%d matches)", input, len(matches))
	}
}
