package domain

// WorkItem is a single task line of an estimate. JobTypeID is a loose
// reference: a work item may outlive the job type it points at.
type WorkItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	JobTypeID string  `json:"jobTypeId"`
	ManMonths float64 `json:"manMonths"`
}

// TemplateItem is a work item without identity. It only exists inside a
// Template and receives an id when copied into a project.
type TemplateItem struct {
	Name      string  `json:"name"`
	JobTypeID string  `json:"jobTypeId"`
	ManMonths float64 `json:"manMonths"`
}

// Stencil strips the id from a work item.
func (w WorkItem) Stencil() TemplateItem {
	return TemplateItem{Name: w.Name, JobTypeID: w.JobTypeID, ManMonths: w.ManMonths}
}

// Instantiate returns a work item carrying the given id.
func (t TemplateItem) Instantiate(id string) WorkItem {
	return WorkItem{ID: id, Name: t.Name, JobTypeID: t.JobTypeID, ManMonths: t.ManMonths}
}
