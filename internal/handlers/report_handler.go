package handlers

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"anatomyguru/script-evaluator/internal/models"
	"anatomyguru/script-evaluator/internal/services"
)

type ReportHandler struct {
	tmpl *template.Template
}

func NewReportHandler() *ReportHandler {
	return &ReportHandler{
		tmpl: template.Must(template.New("report").Parse(reportTemplate)),
	}
}

type questionRow struct {
	QNo            string
	FeedbackPoints []string
	Marks          float64
	Status         services.QuestionStatus
}

type reportView struct {
	Report        *models.EvaluationReport
	Questions     []questionRow
	CalculatedSum float64
	Sections      []services.FeedbackSection
}

// HandleRenderReport turns an EvaluationReport JSON body into the printable
// report document. The platform print dialog is the PDF-export mechanism;
// no PDF is generated here.
func (h *ReportHandler) HandleRenderReport(c *fiber.Ctx) error {
	report, err := models.ParseReport(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: err.Error(),
			Kind:  models.KindUnknown,
		})
	}

	rows := make([]questionRow, 0, len(report.Questions))
	for _, q := range report.Questions {
		rows = append(rows, questionRow{
			QNo:            q.QNo,
			FeedbackPoints: q.FeedbackPoints,
			Marks:          q.Marks,
			Status:         services.GetQuestionStatus(q.Marks, q.FeedbackPoints),
		})
	}

	view := reportView{
		Report:        report,
		Questions:     rows,
		CalculatedSum: services.CalculatedSum(report),
		Sections:      services.NormalizedGeneralFeedback(report.GeneralFeedback),
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, view); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "failed to render report",
			Kind:  models.KindUnknown,
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>AnatomyGuru Report - {{.Report.StudentName}}</title>
<style>
  body { font-family: Georgia, serif; color: #1e1e1e; max-width: 850px; margin: 2rem auto; }
  h1 { letter-spacing: -1px; margin-bottom: 0; }
  .tagline { font-style: italic; color: #64748b; font-weight: bold; font-size: 11px; }
  .title { color: #dc2626; text-decoration: underline; text-transform: uppercase; }
  .date { color: #1d4ed8; font-weight: bold; }
  table { width: 100%; border-collapse: collapse; border: 1px solid #94a3b8; }
  th { color: #dc2626; border: 1px solid #94a3b8; padding: 8px; }
  td { border: 1px solid #94a3b8; padding: 10px; vertical-align: top; }
  td.qno, td.marks { text-align: center; font-weight: bold; }
  tr.unattempted { background: #fef2f2; }
  tr.correct { background: #f0fdf4; }
  tr.partial { background: #fffbeb; }
  .score { margin-top: 1rem; font-weight: bold; }
  .section h3 { color: #dc2626; text-transform: uppercase; font-size: 13px; letter-spacing: 2px; }
  @media print { .no-print { display: none; } }
</style>
</head>
<body>
<header>
  <h1>ANATOMY GURU</h1>
  <p class="tagline">Nothing Left Undissected !!</p>
  <h2 class="title">{{.Report.TestTitle}}</h2>
  <p><strong>Topics:</strong> {{.Report.TestTopics}}</p>
  <p class="date">Date: {{.Report.TestDate}}</p>
  <p><strong>Student Name:</strong> {{.Report.StudentName}}</p>
</header>

<table>
  <thead>
    <tr><th>Q No</th><th>Feedback</th><th>Marks</th></tr>
  </thead>
  <tbody>
  {{range .Questions}}
    <tr class="{{.Status}}">
      <td class="qno">{{.QNo}}</td>
      <td><ul>{{range .FeedbackPoints}}<li>{{.}}</li>{{end}}</ul></td>
      <td class="marks">{{.Marks}}</td>
    </tr>
  {{end}}
  </tbody>
</table>

<p class="score">
  Total Score: {{.Report.TotalScore}} / {{.Report.MaxScore}}
  (calculated sum of question marks: {{.CalculatedSum}})
</p>

{{range .Sections}}
<div class="section">
  <h3>{{.Title}}</h3>
  <ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>
</div>
{{end}}

<footer class="tagline">Anatomy Guru Evaluate v4.0</footer>
</body>
</html>
`
