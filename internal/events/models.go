package events

// JobCreatedEvent is emitted after a job is accepted at intake.
type JobCreatedEvent struct {
	JobID     string `json:"job_id"`
	Plate     string `json:"plate"`
	CreatedBy string `json:"created_by"`
}

// StatusChangedEvent is emitted after every accepted status transition.
type StatusChangedEvent struct {
	JobID     string `json:"job_id"`
	Plate     string `json:"plate"`
	From      string `json:"from"`
	To        string `json:"to"`
	ChangedBy string `json:"changed_by"`
}
