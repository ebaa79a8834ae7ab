package domain

import "time"

// EstimateProject is the top-level persisted estimate. WorkItems keep
// insertion order, which is display order only.
type EstimateProject struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	CustomerName string     `json:"customerName,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	WorkItems    []WorkItem `json:"workItems"`
}

// DisplayID returns the first 8 characters of the id for listings.
func (p *EstimateProject) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// Clone returns a copy that shares no slice storage with p.
func (p EstimateProject) Clone() EstimateProject {
	out := p
	out.WorkItems = append([]WorkItem(nil), p.WorkItems...)
	return out
}

// FindWorkItem returns the index of the work item with the given id, or -1.
func (p *EstimateProject) FindWorkItem(id string) int {
	for i := range p.WorkItems {
		if p.WorkItems[i].ID == id {
			return i
		}
	}
	return -1
}

// AppendTemplate copies the template's items onto the end of the project,
// giving each copy an id from newID. Existing items are left untouched.
// It returns the appended items.
func (p *EstimateProject) AppendTemplate(t Template, newID func() string) []WorkItem {
	added := make([]WorkItem, 0, len(t.WorkItems))
	for _, item := range t.WorkItems {
		added = append(added, item.Instantiate(newID()))
	}
	p.WorkItems = append(p.WorkItems, added...)
	return added
}
