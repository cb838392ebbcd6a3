package services

import "google.golang.org/genai"

// generalFeedbackCategories lists the eight mandatory categories in
// presentation order. The renderer iterates the same list.
var generalFeedbackCategories = []string{
	"overallPerformance",
	"mcqs",
	"contentAccuracy",
	"completenessOfAnswers",
	"presentationDiagrams",
	"investigations",
	"attemptingQuestions",
	"actionPoints",
}

// ReportSchema is the structural contract the provider is constrained to
// honor. It mirrors models.EvaluationReport field for field.
func ReportSchema() *genai.Schema {
	stringArray := func() *genai.Schema {
		return &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		}
	}

	generalFeedback := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: map[string]*genai.Schema{},
		Required:   generalFeedbackCategories,
	}
	for _, category := range generalFeedbackCategories {
		generalFeedback.Properties[category] = stringArray()
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"studentName": {Type: genai.TypeString},
			"testTitle":   {Type: genai.TypeString},
			"testTopics":  {Type: genai.TypeString},
			"testDate":    {Type: genai.TypeString},
			"totalScore":  {Type: genai.TypeNumber},
			"maxScore":    {Type: genai.TypeNumber},
			"questions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"qNo":            {Type: genai.TypeString},
						"feedbackPoints": stringArray(),
						"marks":          {Type: genai.TypeNumber},
					},
					Required: []string{"qNo", "feedbackPoints", "marks"},
				},
			},
			"generalFeedback": generalFeedback,
		},
		Required: []string{
			"studentName", "testTitle", "testTopics", "testDate",
			"totalScore", "maxScore", "questions", "generalFeedback",
		},
	}
}
