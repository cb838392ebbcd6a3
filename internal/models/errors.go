package models

import "errors"

// ErrorKind is the closed set of failure classes exposed on the wire, so
// clients pick a remediation hint from a machine field instead of matching
// substrings of the message.
type ErrorKind string

const (
	KindIngestion       ErrorKind = "ingestion"
	KindPayloadTooLarge ErrorKind = "payload_too_large"
	KindConfig          ErrorKind = "config"
	KindProvider        ErrorKind = "provider"
	KindUnknown         ErrorKind = "unknown"
)

var (
	ErrFileTooLarge      = errors.New("file too large")
	ErrUnreadableFile    = errors.New("failed to read file")
	ErrExtractionFailed  = errors.New("failed to extract document text")
	ErrMissingCredential = errors.New("provider API key missing in environment")
	ErrProviderFailure   = errors.New("AI provider call failed")
)

// ClassifyError maps an error to its wire kind.
func ClassifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrFileTooLarge):
		return KindPayloadTooLarge
	case errors.Is(err, ErrUnreadableFile), errors.Is(err, ErrExtractionFailed):
		return KindIngestion
	case errors.Is(err, ErrMissingCredential):
		return KindConfig
	case errors.Is(err, ErrProviderFailure):
		return KindProvider
	default:
		return KindUnknown
	}
}

// RemediationHint returns the user-facing tip shown next to an error of the
// given kind.
func RemediationHint(kind ErrorKind) string {
	switch kind {
	case KindPayloadTooLarge:
		return "Compress the file or upload documents under the size limit."
	case KindIngestion:
		return "Ensure the document has a readable text layer, or convert scanned pages to a single PDF."
	case KindConfig:
		return "Deployment issue: verify the evaluation service configuration."
	case KindProvider:
		return "Evaluation failed. This usually occurs with very large documents or server timeouts. Try splitting large documents."
	default:
		return "Please retry the analysis."
	}
}

// ErrorResponse is the JSON error body every failing endpoint returns.
type ErrorResponse struct {
	Error string    `json:"error"`
	Kind  ErrorKind `json:"kind,omitempty"`
	Hint  string    `json:"hint,omitempty"`
}

// NewErrorResponse builds the wire error for err, classifying it and
// attaching the matching hint.
func NewErrorResponse(err error) ErrorResponse {
	kind := ClassifyError(err)
	return ErrorResponse{
		Error: err.Error(),
		Kind:  kind,
		Hint:  RemediationHint(kind),
	}
}
