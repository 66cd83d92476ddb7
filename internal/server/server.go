// Package server wires the calculation handlers into the HTTP API and runs it.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"
	"time"

	"Clarifier/internal/auth"
	"Clarifier/internal/calc/batch"
	"Clarifier/internal/calc/export"
	"Clarifier/internal/calc/importer"
	"Clarifier/internal/calc/report"
	settling "Clarifier/internal/calc/settling"
	"Clarifier/internal/config"
	"Clarifier/internal/i18n"
	"Clarifier/internal/logging"
	"Clarifier/internal/repo"
	"Clarifier/internal/scenario"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept-Language")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

// HandleList registers every route. scenarios may be nil when no database is
// configured; the scenario routes are then not mounted.
func HandleList(r *mux.Router, cfg config.Config, scenarios repo.Repository) error {
	catalog := i18n.Default()
	engine, err := settling.New(cfg.Area)
	if err != nil {
		return err
	}
	log := logging.Get()

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	settlingH := &settling.Handler{Area: cfg.Area, Catalog: catalog}
	batchH := &batch.Handler{Area: cfg.Area, Catalog: catalog}
	importH := &importer.Handler{Area: cfg.Area}

	api.HandleFunc("/tools/settling/solve", settlingH.Solve).Methods("POST")
	api.HandleFunc("/tools/settling/check", settlingH.Check).Methods("POST")
	api.HandleFunc("/tools/settling/classify", settlingH.Classify).Methods("GET")
	api.HandleFunc("/tools/settling/table", settlingH.Table).Methods("GET")
	api.HandleFunc("/tools/settling/ranges", settlingH.Ranges).Methods("GET")
	api.HandleFunc("/tools/settling/batch", batchH.Check).Methods("POST")
	api.HandleFunc("/tools/settling/import", importH.Analyze).Methods("POST")
	api.HandleFunc("/i18n/languages", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(catalog.Languages())
	}).Methods("GET")

	secureApi := api.NewRoute().Subrouter()
	if len(cfg.TokenKey) > 0 {
		authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey)}
		secureApi.Use(authEnv.AuthMiddleware)
	} else {
		log.Warn("TOKEN_KEY is not set: export routes are open, scenario routes disabled")
	}

	exportH := &export.Handler{Area: cfg.Area, Catalog: catalog}
	reportH := &report.Handler{Area: cfg.Area, Catalog: catalog}
	secureApi.HandleFunc("/export/comparison", exportH.Comparison).Methods("POST")
	secureApi.HandleFunc("/export/sensitivity", exportH.Sensitivity).Methods("POST")
	secureApi.HandleFunc("/export/table", exportH.Table).Methods("GET")
	secureApi.HandleFunc("/export/analysis", exportH.Analysis).Methods("POST")
	secureApi.HandleFunc("/export/report", reportH.Generate).Methods("POST")

	if scenarios != nil && len(cfg.TokenKey) > 0 {
		scenarioH := &scenario.ScenarioHandler{Repo: scenarios, Engine: engine, Catalog: catalog}
		secureApi.HandleFunc("/scenarios", scenarioH.List).Methods("GET")
		secureApi.HandleFunc("/scenarios", scenarioH.Create).Methods("POST")
		secureApi.HandleFunc("/scenarios/{id:[0-9]+}", scenarioH.Delete).Methods("DELETE")
	}

	if fi, err := os.Stat(cfg.StaticDir); err == nil && fi.IsDir() {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))
	}
	return nil
}

// Serve runs the API until ctx is cancelled, then drains connections.
func Serve(ctx context.Context, cfg config.Config) error {
	log := logging.Get()

	var scenarios repo.Repository
	if cfg.DatabaseURL != "" {
		db, err := repo.InitDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		pg := repo.NewPostgresScenarioDB(db)
		if err := pg.Migrate(ctx); err != nil {
			return err
		}
		scenarios = pg
	}

	router := mux.NewRouter()
	if err := HandleList(router, cfg, scenarios); err != nil {
		return err
	}
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           logging.Middleware(CORS(router)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	errc := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infow("starting server", "addr", cfg.Addr, "tls", cfg.TLS(), "area", cfg.Area)
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, closing active connections")
	case err := <-errc:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	wg.Wait()
	log.Info("server stopped")
	return nil
}
