// Package scenario serves the saved scenario library with live verdicts.
package scenario

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	settling "Clarifier/internal/calc/settling"
	"Clarifier/internal/i18n"
	"Clarifier/internal/logging"
	"Clarifier/internal/repo"

	"github.com/gorilla/mux"
)

type ScenarioHandler struct {
	Repo    repo.Repository
	Engine  *settling.Engine
	Catalog *i18n.Catalog
}

type CreateRequest struct {
	Name           string  `json:"name"`
	MLSS           float64 `json:"mlss"`
	EquivalentFlow float64 `json:"equivalent_flow"`
}

type Entry struct {
	repo.Scenario
	Verdict  settling.Verdict `json:"verdict"`
	Messages []string         `json:"messages"`
}

func (h *ScenarioHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListScenarios(r.Context())
	if err != nil {
		logging.Get().Errorw("list scenarios", "error", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	lang := h.Catalog.Resolve(settling.Lang(r))
	out := make([]Entry, 0, len(list))
	for _, s := range list {
		v := h.Engine.CheckOperatingPoint(s.MLSS, s.EquivalentFlow)
		out = append(out, Entry{Scenario: s, Verdict: v, Messages: i18n.Messages(h.Catalog, lang, v.Recommendations)})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (h *ScenarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "Name required", http.StatusBadRequest)
		return
	}

	id, err := h.Repo.CreateScenario(r.Context(), req.Name, req.MLSS, req.EquivalentFlow)
	if err != nil {
		logging.Get().Errorw("create scenario", "error", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]int{"id": id})
}

func (h *ScenarioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	err = h.Repo.DeleteScenario(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Scenario not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Get().Errorw("delete scenario", "id", id, "error", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
