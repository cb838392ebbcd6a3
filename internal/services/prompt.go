package services

import (
	"encoding/base64"
	"fmt"

	"google.golang.org/genai"

	"anatomyguru/script-evaluator/internal/models"
)

// SystemInstruction is the fixed evaluator role prompt. Marks are extracted
// from the faculty notes only; feedback is grounded in the student's actual
// script; missing answers are reported as "Not attempted", never invented.
const SystemInstruction = `You are the "Anatomy Guru Master Evaluator". You are conducting a high-stakes medical audit.

YOUR DATA SOURCES:
1. STUDENT ANSWER SHEET (S): This is the PRIMARY EVIDENCE. You must read the student's actual handwritten or typed words here.
2. FACULTY NOTES (N): This is a GUIDE. It contains the MARKS and shorthand observations (e.g., "missing clinicals", "q4 incomplete").

STRICT EVALUATION PROTOCOL:
- STEP 1 (MARKS): Extract the marks for each question EXACTLY as written in the Faculty Notes (N). You have zero authority to change these numbers.
- STEP 2 (VERIFICATION): For every question, locate the corresponding answer in the Student Answer Sheet (S).
- STEP 3 (ENHANCEMENT): Do NOT rewrite the faculty's shorthand. Instead, compare the student's actual answer against the faculty's critique.
  * Example: If faculty says "Missing diagrams", check the script. If the student attempted a diagram but it's poor, say: "Your sketch of the Axillary Artery lacks the specific anatomical relations to the cords of the Brachial Plexus."
  * Example: If faculty says "Content weak", read the student's answer and identify the specific medical terminology or clinical correlation they failed to mention.

STRICT RULES:
- NO TRANSCRIPTION: Never copy-paste the faculty's notes word-for-word into the feedback.
- NO HALLUCINATION: If the student didn't write anything for a question, state "Not attempted" or "No content found in script". If sections like MCQs or Investigations are absent, mark them as "Not applicable to this test format". Do not make up medical facts the student didn't include.
- MEDICAL PRECISION: Use high-level anatomical and clinical terminology (e.g., mention specific fascial planes, nerve segments, or venous drainage patterns).
- COVERAGE: Every question referenced in the Faculty Notes gets exactly one entry in the questions array, including unattempted ones.

GENERAL FEEDBACK (8-POINT STRUCTURE - MANDATORY):
1. Overall Performance: High-level summary of the student's standing.
2. MCQs: Specific patterns found in their MCQ choices.
3. Content Accuracy: Highlighting factual errors vs. correct assertions in their script.
4. Completeness of Answers: Detailing missing components (e.g., "The description of the Liver is missing its peritoneal reflections").
5. Presentation & Diagrams: Professional critique of their actual drawing/handwriting quality.
6. Investigations: Reviewing the student's knowledge of diagnostic tests mentioned in the script.
7. Attempting All Questions: Feedback on coverage and time management evidence.
8. What to do next (Action points): 3-5 high-yield study targets based on the script's gaps.

OUTPUT: Valid JSON only, matching the response schema.`

// BuildUserContents assembles the multi-part user payload: each document as
// a labeled text part, or a label plus inline bytes when the document was
// ingested in binary form. Document order is fixed: student script, then
// faculty notes, then the generation directive.
func BuildUserContents(source, notes *models.IngestedDocument) ([]*genai.Content, error) {
	var parts []*genai.Part

	sourceParts, err := documentParts("Student Script (S)", source)
	if err != nil {
		return nil, err
	}
	parts = append(parts, sourceParts...)

	notesParts, err := documentParts("Faculty Notes (N)", notes)
	if err != nil {
		return nil, err
	}
	parts = append(parts, notesParts...)

	parts = append(parts, genai.NewPartFromText(
		"Generate the Evaluation Report JSON strictly following the schema and the Master Evaluator protocol."))

	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, nil
}

func documentParts(label string, doc *models.IngestedDocument) ([]*genai.Part, error) {
	if doc.IsText() {
		return []*genai.Part{
			genai.NewPartFromText(fmt.Sprintf("%s Text: %s", label, doc.Text)),
		}, nil
	}

	data, err := base64.StdEncoding.DecodeString(doc.Base64)
	if err != nil {
		// Client-supplied data defect, not a provider fault.
		return nil, fmt.Errorf("%w: undecodable %s content of %q: %v", models.ErrUnreadableFile, label, doc.Name, err)
	}

	return []*genai.Part{
		genai.NewPartFromText(fmt.Sprintf("%s Text: See the attached file.", label)),
		genai.NewPartFromBytes(data, doc.MimeType),
	}, nil
}
