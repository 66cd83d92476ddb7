package batch

import (
	"encoding/json"
	"errors"
	"net/http"

	settling "Clarifier/internal/calc/settling"
	"Clarifier/internal/i18n"
)

type Handler struct {
	Area    float64
	Catalog *i18n.Catalog
}

type Response struct {
	Area    float64       `json:"area"`
	Lang    string        `json:"lang"`
	Results []LocalResult `json:"results"`
}

type LocalResult struct {
	Result
	Messages []string `json:"messages"`
}

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	area := input.Area
	if area == 0 {
		area = h.Area
	}
	e, err := settling.New(area)
	if err != nil {
		http.Error(w, err.Error(), settling.StatusFor(err))
		return
	}
	res, err := Check(e, input.Scenarios)
	if errors.Is(err, ErrEmpty) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Calculation error", http.StatusInternalServerError)
		return
	}
	lang := h.Catalog.Resolve(settling.Lang(r))
	out := Response{Area: area, Lang: lang, Results: make([]LocalResult, len(res))}
	for i, rr := range res {
		out.Results[i] = LocalResult{Result: rr, Messages: i18n.Messages(h.Catalog, lang, rr.Verdict.Recommendations)}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
