package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	settling "Clarifier/internal/calc/settling"
	"Clarifier/internal/i18n"
	"Clarifier/internal/logging"
)

type Handler struct {
	Area    float64
	Catalog *i18n.Catalog
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Area == 0 {
		input.Area = h.Area
	}
	e, err := settling.New(input.Area)
	if err != nil {
		http.Error(w, err.Error(), settling.StatusFor(err))
		return
	}

	rep := New(input, e.CheckOperatingPoint(input.MLSS, input.EquivalentFlow),
		h.Catalog.Resolve(settling.Lang(r)), time.Now())
	var buf bytes.Buffer
	if err := rep.Write(&buf, h.Catalog); err != nil {
		logging.Get().Errorw("report generation failed", "report_id", rep.ID, "error", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"report-%s.pdf\"", rep.ID))
	w.Header().Set("X-Report-ID", rep.ID)
	w.Write(buf.Bytes())
}
