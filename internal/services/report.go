package services

import (
	"strings"

	"github.com/samber/lo"

	"anatomyguru/script-evaluator/internal/models"
)

// QuestionStatus classifies one question row for styling purposes.
type QuestionStatus string

const (
	StatusUnattempted QuestionStatus = "unattempted"
	StatusCorrect     QuestionStatus = "correct"
	StatusPartial     QuestionStatus = "partial"
)

// Fixed keyword table for status classification. Matching is literal
// case-insensitive substring matching, so "partially correct" classifies as
// correct via the "correct" keyword. That mirrors the report's historical
// behavior and is deliberate; see DESIGN.md.
var (
	unattemptedKeywords = []string{"not attempted", "skipped"}
	correctKeywords     = []string{"excellent", "perfect", "precise", "correct", "great"}
)

// noFeedbackPlaceholder renders in place of an empty feedback category.
const noFeedbackPlaceholder = "No specific feedback provided"

// CalculatedSum returns the arithmetic sum of all question marks. Displayed
// alongside the report's own totalScore as a cross-check; never reconciled
// against it.
func CalculatedSum(report *models.EvaluationReport) float64 {
	if report == nil {
		return 0
	}
	return lo.SumBy(report.Questions, func(q models.QuestionFeedback) float64 {
		return q.Marks
	})
}

// GetQuestionStatus is a pure function of (marks, feedbackPoints).
func GetQuestionStatus(marks float64, feedbackPoints []string) QuestionStatus {
	joined := strings.ToLower(strings.Join(feedbackPoints, " "))

	if marks == 0 || containsAny(joined, unattemptedKeywords) {
		return StatusUnattempted
	}
	if containsAny(joined, correctKeywords) {
		return StatusCorrect
	}
	return StatusPartial
}

func containsAny(s string, keywords []string) bool {
	return lo.SomeBy(keywords, func(kw string) bool {
		return strings.Contains(s, kw)
	})
}

// FeedbackSection is one labeled general-feedback category, ready for
// rendering.
type FeedbackSection struct {
	Title string
	Items []string
}

// NormalizedGeneralFeedback returns all eight categories in their fixed
// order. Empty categories carry the neutral placeholder rather than being
// omitted.
func NormalizedGeneralFeedback(gf models.GeneralFeedback) []FeedbackSection {
	sections := []FeedbackSection{
		{Title: "Overall Performance", Items: gf.OverallPerformance},
		{Title: "MCQs", Items: gf.MCQs},
		{Title: "Content Accuracy", Items: gf.ContentAccuracy},
		{Title: "Completeness of Answers", Items: gf.CompletenessOfAnswers},
		{Title: "Presentation & Diagrams", Items: gf.PresentationDiagrams},
		{Title: "Investigations", Items: gf.Investigations},
		{Title: "Attempting All Questions", Items: gf.AttemptingQuestions},
		{Title: "What To Do Next (Action Points)", Items: gf.ActionPoints},
	}

	for i := range sections {
		if len(sections[i].Items) == 0 {
			sections[i].Items = []string{noFeedbackPlaceholder}
		}
	}
	return sections
}
