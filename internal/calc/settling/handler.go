package settling

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"Clarifier/internal/i18n"
	"Clarifier/internal/logging"
)

type Handler struct {
	Area    float64
	Catalog *i18n.Catalog
}

type CheckInput struct {
	Area           float64 `json:"area"`
	MLSS           float64 `json:"mlss"`
	EquivalentFlow float64 `json:"equivalent_flow"`
}

type CheckResult struct {
	Verdict
	Area     float64  `json:"area"`
	Lang     string   `json:"lang"`
	Messages []string `json:"messages"`
}

// Localize attaches translated recommendation texts to a verdict.
func Localize(c *i18n.Catalog, lang string, area float64, v Verdict) CheckResult {
	lang = c.Resolve(lang)
	return CheckResult{
		Verdict:  v,
		Area:     area,
		Lang:     lang,
		Messages: i18n.Messages(c, lang, v.Recommendations),
	}
}

// Lang picks the response language from ?lang= or Accept-Language.
func Lang(r *http.Request) string {
	if l := r.URL.Query().Get("lang"); l != "" {
		return l
	}
	return r.Header.Get("Accept-Language")
}

// StatusFor maps engine errors to HTTP codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidConfiguration),
		errors.Is(err, ErrDivisionByZero),
		errors.Is(err, ErrUnknownParameter):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *Handler) area(v float64) float64 {
	if v == 0 {
		return h.Area
	}
	return v
}

func (h *Handler) Solve(w http.ResponseWriter, r *http.Request) {
	var input SolveInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Solve(input, h.Area)
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	var input CheckInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	area := h.area(input.Area)
	e, err := New(area)
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	v := e.CheckOperatingPoint(input.MLSS, input.EquivalentFlow)
	if !v.OverallSafe {
		logging.Get().Debugw("unsafe operating point",
			"mlss", input.MLSS, "equivalent_flow", input.EquivalentFlow,
			"slr", v.CalculatedSLR, "recommendations", v.Recommendations)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Localize(h.Catalog, Lang(r), area, v))
}

func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	value, err := strconv.ParseFloat(q.Get("value"), 64)
	if err != nil {
		http.Error(w, "value must be a number", http.StatusBadRequest)
		return
	}
	e, err := New(h.Area)
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	c, err := e.ClassifyParameter(Parameter(q.Get("parameter")), value)
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) Table(w http.ResponseWriter, r *http.Request) {
	area := h.Area
	if s := r.URL.Query().Get("area"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			http.Error(w, "area must be a number", http.StatusBadRequest)
			return
		}
		area = v
	}
	e, err := New(area)
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(e.GenerateOperatingRangeTable())
}

func (h *Handler) Ranges(w http.ResponseWriter, r *http.Request) {
	out := make(map[Parameter]Range, len(Parameters))
	for _, p := range Parameters {
		out[p], _ = RangeFor(p)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
