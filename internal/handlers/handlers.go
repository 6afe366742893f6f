// Package handlers provides the HTTP request handlers for the simulation
// API: setup validation, full simulation runs, and service metadata.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/optiray/optiray/internal/graph"
	"github.com/optiray/optiray/internal/model"
	"github.com/optiray/optiray/internal/sim"
)

const serviceName = "Optical Simulation API"

var startTime = time.Now()

// API binds the handlers to one engine. The engine is stateless, so a single
// instance serves every request.
type API struct {
	engine *sim.Engine
}

func New(engine *sim.Engine) *API {
	return &API{engine: engine}
}

// Router wires every endpoint onto a fresh mux.
func (a *API) Router() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", a.Root)
	mux.HandleFunc("/health", a.Health)
	mux.HandleFunc("/api/simulate", a.Simulate)
	mux.HandleFunc("/api/validate", a.Validate)
	return mux
}

type errorResponse struct {
	Error  string   `json:"error"`
	Issues []string `json:"issues,omitempty"`
}

func (a *API) Simulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	setup, ok := readSetup(w, r)
	if !ok {
		return
	}

	// The engine tolerates an empty bench, but the API contract rejects it:
	// the editor never submits a setup without components.
	if len(setup.Components) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "setup has no components"})
		return
	}

	result, err := a.engine.Simulate(r.Context(), setup)
	if err != nil {
		var verr *graph.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:  "setup failed validation",
				Issues: verr.Strings(),
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (a *API) Validate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	setup, ok := readSetup(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, a.engine.Validate(setup))
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"uptime":     time.Since(startTime).String(),
		"components": graph.KindNames(),
	})
}

func (a *API) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"service": serviceName,
		"status":  "running",
		"endpoints": map[string]string{
			"simulate": "POST /api/simulate",
			"validate": "POST /api/validate",
			"health":   "GET /health",
		},
	})
}

func readSetup(w http.ResponseWriter, r *http.Request) (*model.OpticalSetup, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return nil, false
	}
	defer r.Body.Close()

	setup, err := model.ParseSetup(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return nil, false
	}
	return setup, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("error encoding response: %v", err)
	}
}
