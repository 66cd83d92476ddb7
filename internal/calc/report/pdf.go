package report

import (
	"fmt"
	"io"
	"time"

	settling "Clarifier/internal/calc/settling"
	"Clarifier/internal/i18n"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
)

// core fonts only cover cp1252, so languages outside it are rendered in English
var latinLangs = map[string]bool{"en": true, "es": true, "de": true}

type Input struct {
	Project        string  `json:"project"`
	Author         string  `json:"author"`
	Title          string  `json:"title"`
	Notes          string  `json:"notes"`
	Area           float64 `json:"area"`
	MLSS           float64 `json:"mlss"`
	EquivalentFlow float64 `json:"equivalent_flow"`
}

type Report struct {
	ID      string
	Created time.Time
	Lang    string
	Input   Input
	Verdict settling.Verdict
}

func New(in Input, v settling.Verdict, lang string, now time.Time) Report {
	if !latinLangs[lang] {
		lang = i18n.Fallback
	}
	return Report{ID: uuid.NewString(), Created: now, Lang: lang, Input: in, Verdict: v}
}

func (r Report) Write(w io.Writer, c *i18n.Catalog) error {
	title := r.Input.Title
	if title == "" {
		title = c.T(r.Lang, "report_title")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		fmt.Sprintf("Report: %s", r.ID),
		fmt.Sprintf("Project: %s", r.Input.Project),
		fmt.Sprintf("Author: %s", r.Input.Author),
		fmt.Sprintf("Date: %s", r.Created.Format("2006-01-02")),
		fmt.Sprintf("Area: %g m²", r.Input.Area),
	} {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	widths := []float64{45, 30, 40, 40, 35}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(0x44, 0x72, 0xC4)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range []string{"Parameter", "Value", "Safe range", "Optimal", "Status"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	for _, cl := range []settling.Classification{r.Verdict.MLSS, r.Verdict.EquivalentFlow, r.Verdict.SLR} {
		cells := []string{
			c.Parameter(r.Lang, string(cl.Parameter)),
			fmt.Sprintf("%.2f %s", cl.Value, cl.Parameter.Unit()),
			fmt.Sprintf("%g - %g", cl.Min, cl.Max),
			fmt.Sprintf("%g - %g", cl.Optimal.Low, cl.Optimal.High),
			c.Status(r.Lang, cl.Status),
		}
		fill := !cl.Safe
		pdf.SetFillColor(0xFF, 0xC7, 0xCE)
		for i, s := range cells {
			pdf.CellFormat(widths[i], 7, tr(s), "1", 0, "C", fill, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, tr(c.Overall(r.Lang, r.Verdict.OverallSafe)))
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for _, msg := range i18n.Messages(c, r.Lang, r.Verdict.Recommendations) {
		pdf.MultiCell(0, 6, tr("- "+msg), "", "L", false)
	}
	if r.Input.Notes != "" {
		pdf.Ln(4)
		pdf.MultiCell(0, 6, tr(r.Input.Notes), "", "L", false)
	}
	return pdf.Output(w)
}
