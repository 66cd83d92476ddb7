package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"Clarifier/internal/calc/batch"
	"Clarifier/internal/calc/importer"
	"Clarifier/internal/calc/sensitivity"
	settling "Clarifier/internal/calc/settling"
	"Clarifier/internal/i18n"
	"Clarifier/internal/logging"
)

const xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Area    float64
	Catalog *i18n.Catalog
}

type SensitivityInput struct {
	Area     float64 `json:"area"`
	BaseMLSS float64 `json:"base_mlss"`
	BaseFlow float64 `json:"base_flow"`
}

func (h *Handler) engine(area float64) (*settling.Engine, error) {
	if area == 0 {
		area = h.Area
	}
	return settling.New(area)
}

func sendWorkbook(w http.ResponseWriter, name string, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", xlsxType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

func writeFailed(w http.ResponseWriter, err error) {
	logging.Get().Errorw("workbook export failed", "error", err)
	http.Error(w, "Export error", http.StatusInternalServerError)
}

func (h *Handler) Comparison(w http.ResponseWriter, r *http.Request) {
	var input batch.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	e, err := h.engine(input.Area)
	if err != nil {
		http.Error(w, err.Error(), settling.StatusFor(err))
		return
	}
	scenarios := input.Scenarios
	if len(scenarios) == 0 {
		scenarios = batch.Presets()
	}
	results, err := batch.Check(e, scenarios)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	if err := WriteComparison(&buf, results, h.Catalog, h.Catalog.Resolve(settling.Lang(r))); err != nil {
		writeFailed(w, err)
		return
	}
	sendWorkbook(w, "comparison.xlsx", &buf)
}

func (h *Handler) Sensitivity(w http.ResponseWriter, r *http.Request) {
	input := SensitivityInput{BaseMLSS: 3500, BaseFlow: 100}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	e, err := h.engine(input.Area)
	if err != nil {
		http.Error(w, err.Error(), settling.StatusFor(err))
		return
	}
	a, err := sensitivity.Analyze(e, input.BaseMLSS, input.BaseFlow)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	if err := WriteSensitivity(&buf, a); err != nil {
		writeFailed(w, err)
		return
	}
	sendWorkbook(w, "sensitivity.xlsx", &buf)
}

func (h *Handler) Table(w http.ResponseWriter, r *http.Request) {
	area := 0.0
	if s := r.URL.Query().Get("area"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			http.Error(w, "area must be a number", http.StatusBadRequest)
			return
		}
		area = v
	}
	e, err := h.engine(area)
	if err != nil {
		http.Error(w, err.Error(), settling.StatusFor(err))
		return
	}
	var buf bytes.Buffer
	if err := WriteRangeTable(&buf, e.GenerateOperatingRangeTable()); err != nil {
		writeFailed(w, err)
		return
	}
	sendWorkbook(w, "range_table.xlsx", &buf)
}

func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, importer.MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	table, err := importer.ReadWorkbook(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e, err := h.engine(0)
	if err != nil {
		http.Error(w, err.Error(), settling.StatusFor(err))
		return
	}
	var buf bytes.Buffer
	lang := h.Catalog.Resolve(settling.Lang(r))
	if err := WriteAnalysis(&buf, importer.Analyze(e, table), h.Catalog, lang); err != nil {
		writeFailed(w, err)
		return
	}
	sendWorkbook(w, "analysis.xlsx", &buf)
}
