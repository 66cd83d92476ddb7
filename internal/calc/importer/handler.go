package importer

import (
	"encoding/json"
	"net/http"

	settling "Clarifier/internal/calc/settling"
	"Clarifier/internal/logging"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Area float64
}

type ImportResult struct {
	Table Table         `json:"table"`
	Count int           `json:"count"`
	Rows  []AnalysisRow `json:"rows"`
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	table, err := ReadWorkbook(file)
	if err != nil {
		logging.Get().Infow("workbook rejected", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e, err := settling.New(h.Area)
	if err != nil {
		http.Error(w, err.Error(), settling.StatusFor(err))
		return
	}
	rows := Analyze(e, table)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ImportResult{Table: table, Count: len(rows), Rows: rows})
}
