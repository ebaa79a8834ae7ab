package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/estimate/internal/domain"
)

// Convert transforms a validated TemplateFile into domain templates.
// Job types are resolved by id first, then by case-insensitive name. An
// unresolved job type is kept verbatim as a dangling reference and reported
// as a warning, as are negative efforts, which are coerced to zero.
// Templates without an id get one from newID.
func Convert(f *TemplateFile, jobTypes []domain.JobType, newID func() string) ([]domain.Template, []string) {
	var warnings []string
	templates := make([]domain.Template, 0, len(f.Templates))

	for _, ti := range f.Templates {
		id := strings.TrimSpace(ti.ID)
		if id == "" {
			id = newID()
		}
		t := domain.Template{
			ID:        id,
			Name:      strings.TrimSpace(ti.Name),
			WorkItems: make([]domain.TemplateItem, 0, len(ti.Items)),
		}
		for j, item := range ti.Items {
			jobTypeID, ok := resolveJobType(jobTypes, item.JobType)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("%s: item %d (%s): unknown job type %q", t.Name, j+1, item.Name, item.JobType))
			}
			mm := domain.Float64FromPtrWithDefault(0, item.ManMonths)
			if mm < 0 {
				warnings = append(warnings, fmt.Sprintf("%s: item %d (%s): negative man_months %g set to 0", t.Name, j+1, item.Name, mm))
			}
			t.WorkItems = append(t.WorkItems, domain.TemplateItem{
				Name:      item.Name,
				JobTypeID: jobTypeID,
				ManMonths: domain.NonNegative(mm),
			})
		}
		templates = append(templates, t)
	}

	return templates, warnings
}

// FromTemplates builds an exportable file. Job types are written by id so a
// round trip through Convert resolves them unambiguously.
func FromTemplates(templates []domain.Template) *TemplateFile {
	f := &TemplateFile{Templates: make([]TemplateImport, 0, len(templates))}
	for _, t := range templates {
		ti := TemplateImport{ID: t.ID, Name: t.Name, Items: make([]ItemImport, 0, len(t.WorkItems))}
		for _, item := range t.WorkItems {
			mm := item.ManMonths
			ti.Items = append(ti.Items, ItemImport{Name: item.Name, JobType: item.JobTypeID, ManMonths: &mm})
		}
		f.Templates = append(f.Templates, ti)
	}
	return f
}

func resolveJobType(jobTypes []domain.JobType, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if jt := domain.FindJobType(jobTypes, ref); jt != nil {
		return jt.ID, true
	}
	for _, jt := range jobTypes {
		if strings.EqualFold(jt.Name, ref) {
			return jt.ID, true
		}
	}
	return ref, false
}
