package models

// IngestedFileResult describes one successfully ingested upload.
type IngestedFileResult struct {
	ID       string            `json:"id"`
	Field    string            `json:"field"`
	Document *IngestedDocument `json:"document"`
}

// IngestResponse is the body of a successful POST /api/v1/ingest.
type IngestResponse struct {
	Message   string               `json:"message"`
	Documents []IngestedFileResult `json:"documents"`
	Progress  []string             `json:"progress,omitempty"`
}
