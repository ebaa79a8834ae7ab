package importer

import (
	"fmt"
	"strings"
)

// ValidateTemplateFile checks a template file before conversion.
// Returns a slice of all validation errors found.
func ValidateTemplateFile(f *TemplateFile) []error {
	var errs []error

	if len(f.Templates) == 0 {
		errs = append(errs, fmt.Errorf("templates: at least one template is required"))
	}

	seenIDs := make(map[string]bool)
	for i, t := range f.Templates {
		prefix := fmt.Sprintf("templates[%d]", i)
		if strings.TrimSpace(t.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if id := strings.TrimSpace(t.ID); id != "" {
			if seenIDs[id] {
				errs = append(errs, fmt.Errorf("%s.id %q is duplicated", prefix, id))
			}
			seenIDs[id] = true
		}
		for j, item := range t.Items {
			if strings.TrimSpace(item.JobType) == "" {
				errs = append(errs, fmt.Errorf("%s.items[%d].job_type is required", prefix, j))
			}
		}
	}

	return errs
}
