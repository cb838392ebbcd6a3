package models

import "errors"

// IngestedDocument is the normalized result of processing one uploaded file.
// Exactly one of Text or Base64 is populated: text form when the file has an
// extractable text layer, binary form otherwise. The JSON keys are the wire
// contract shared with the evaluate endpoint.
type IngestedDocument struct {
	Text     string `json:"text,omitempty"`
	Base64   string `json:"base64,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Name     string `json:"name"`
	IsDocx   bool   `json:"isDocx"`
}

// IsText reports whether the document was ingested in text form.
func (d *IngestedDocument) IsText() bool {
	return d.Text != ""
}

func (d *IngestedDocument) Validate() error {
	if d == nil {
		return errors.New("document is missing")
	}
	if d.Text == "" && d.Base64 == "" {
		return errors.New("document has neither text nor base64 content")
	}
	if d.Text != "" && d.Base64 != "" {
		return errors.New("document must not carry both text and base64 content")
	}
	if d.Base64 != "" && d.MimeType == "" {
		return errors.New("binary document is missing its MIME type")
	}
	return nil
}

// EvaluationRequest is the body of POST /api/v1/evaluate. Both documents are
// carried verbatim in whatever form ingestion chose for them.
type EvaluationRequest struct {
	SourceDoc        *IngestedDocument `json:"sourceDoc"`
	DirtyFeedbackDoc *IngestedDocument `json:"dirtyFeedbackDoc"`
}
