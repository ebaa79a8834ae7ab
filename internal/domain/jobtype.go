package domain

// JobType is a billable role with a monthly rate.
type JobType struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	MonthlyRate float64 `json:"monthlyRate"`
}

// FindJobType returns the job type with the given id, or nil.
func FindJobType(jobTypes []JobType, id string) *JobType {
	for i := range jobTypes {
		if jobTypes[i].ID == id {
			return &jobTypes[i]
		}
	}
	return nil
}
