package models

import (
	"encoding/json"
	"fmt"
)

// QuestionFeedback is one row of the evaluation table: one entry per exam
// question covered by the faculty notes, in question order.
type QuestionFeedback struct {
	QNo            string   `json:"qNo"`
	FeedbackPoints []string `json:"feedbackPoints"`
	Marks          float64  `json:"marks"`
}

// GeneralFeedback holds the eight fixed feedback categories. Categories may
// come back empty; the renderer substitutes a placeholder, never drops them.
type GeneralFeedback struct {
	OverallPerformance    []string `json:"overallPerformance"`
	MCQs                  []string `json:"mcqs"`
	ContentAccuracy       []string `json:"contentAccuracy"`
	CompletenessOfAnswers []string `json:"completenessOfAnswers"`
	PresentationDiagrams  []string `json:"presentationDiagrams"`
	Investigations        []string `json:"investigations"`
	AttemptingQuestions   []string `json:"attemptingQuestions"`
	ActionPoints          []string `json:"actionPoints"`
}

// EvaluationReport is the structured result the provider is schema-bound to
// produce. Marks originate from the faculty notes; feedback text from the
// student's script.
type EvaluationReport struct {
	StudentName     string             `json:"studentName"`
	TestTitle       string             `json:"testTitle"`
	TestTopics      string             `json:"testTopics"`
	TestDate        string             `json:"testDate"`
	TotalScore      float64            `json:"totalScore"`
	MaxScore        float64            `json:"maxScore"`
	Questions       []QuestionFeedback `json:"questions"`
	GeneralFeedback GeneralFeedback    `json:"generalFeedback"`
}

// ParseReport parses provider output into the typed report shape. The
// gateway relays the raw JSON untouched; this boundary parse is for local
// consumers (the HTML renderer and tests) that need the typed form.
func ParseReport(data []byte) (*EvaluationReport, error) {
	var report EvaluationReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation report: %w", err)
	}
	return &report, nil
}
