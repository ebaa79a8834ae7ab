package domain

// Template is a named, reusable set of work items used to seed projects.
type Template struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	WorkItems []TemplateItem `json:"workItems"`
}

// Clone returns a copy that shares no slice storage with t.
func (t Template) Clone() Template {
	out := t
	out.WorkItems = append([]TemplateItem(nil), t.WorkItems...)
	return out
}

// FindTemplate returns the template with the given id, or nil.
func FindTemplate(templates []Template, id string) *Template {
	for i := range templates {
		if templates[i].ID == id {
			return &templates[i]
		}
	}
	return nil
}
