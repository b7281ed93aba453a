// Package server exposes the calculator over HTTP: an HTML form for people
// and a JSON API for scripts.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/san-kum/itaetune/internal/report"
	"github.com/san-kum/itaetune/internal/tuning"
	"github.com/san-kum/itaetune/internal/viz"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	log       *slog.Logger
	precision int
	router    *mux.Router
}

func New(log *slog.Logger, precision int) *Server {
	s := &Server{log: log, precision: precision}

	r := mux.NewRouter()
	r.HandleFunc("/", s.formHandler).Methods("GET")
	r.HandleFunc("/calculate", s.calculateFormHandler).Methods("POST")
	r.HandleFunc("/api/settings", s.settingsHandler).Methods("POST")
	r.HandleFunc("/api/table", s.tableHandler).Methods("GET")
	r.HandleFunc("/healthz", s.healthHandler).Methods("GET")
	s.router = r

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type settingsRequest struct {
	Input      string  `json:"input"`
	Controller string  `json:"controller"`
	K          float64 `json:"k"`
	Theta      float64 `json:"theta"`
	Tau        float64 `json:"tau"`
}

type settingsResponse struct {
	Settings tuning.Settings `json:"settings"`
	Order    []string        `json:"order"`
}

func (s *Server) settingsHandler(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	p := tuning.Process{K: req.K, Theta: req.Theta, Tau: req.Tau}
	if err := p.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	settings := tuning.Evaluate(req.Input, req.Controller, p.K, p.Theta, p.Tau)
	if settings.Empty() {
		s.log.Debug("invalid combination", "input", req.Input, "controller", req.Controller)
		s.writeError(w, http.StatusUnprocessableEntity, tuning.ErrInvalidCombination.Error())
		return
	}

	s.log.Debug("evaluated", "input", req.Input, "controller", req.Controller, "process", p.String())
	s.writeJSON(w, http.StatusOK, settingsResponse{Settings: settings, Order: settings.Keys()})
}

type tableRow struct {
	Input      string                        `json:"input"`
	Controller string                        `json:"controller"`
	Modes      map[string]tuning.Coefficient `json:"modes"`
}

func (s *Server) tableHandler(w http.ResponseWriter, r *http.Request) {
	rows := make([]tableRow, 0, 4)
	for _, c := range tuning.Table() {
		row := tableRow{
			Input:      c.Input.String(),
			Controller: c.Controller.String(),
			Modes:      make(map[string]tuning.Coefficient),
		}
		for _, m := range c.Modes() {
			co, _ := c.Coefficient(m)
			row.Modes[m.String()] = co
		}
		rows = append(rows, row)
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"correlations": rows})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type pageData struct {
	InputTypes      []string
	ControllerTypes []string
	Input           string
	Controller      string
	K, Theta, Tau   string
	Error           string
	Success         string
	Settings        []settingRow
}

type settingRow struct {
	Name  string
	Value string
}

func newPageData() pageData {
	d := pageData{
		Input:      tuning.Disturbance.String(),
		Controller: tuning.PI.String(),
	}
	for _, t := range tuning.InputTypes() {
		d.InputTypes = append(d.InputTypes, t.String())
	}
	for _, t := range tuning.ControllerTypes() {
		d.ControllerTypes = append(d.ControllerTypes, t.String())
	}
	return d
}

func (s *Server) formHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, newPageData())
}

func (s *Server) calculateFormHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	d := newPageData()
	d.Input = r.PostFormValue("input")
	d.Controller = r.PostFormValue("controller")
	d.K = r.PostFormValue("k")
	d.Theta = r.PostFormValue("theta")
	d.Tau = r.PostFormValue("tau")

	k, errK := strconv.ParseFloat(d.K, 64)
	theta, errTheta := strconv.ParseFloat(d.Theta, 64)
	tau, errTau := strconv.ParseFloat(d.Tau, 64)
	if errK != nil || errTheta != nil || errTau != nil || (tuning.Process{K: k, Theta: theta, Tau: tau}).Validate() != nil {
		d.Error = viz.MsgNonPositive
		s.render(w, http.StatusBadRequest, d)
		return
	}

	settings := tuning.Evaluate(d.Input, d.Controller, k, theta, tau)
	if settings.Empty() {
		d.Error = viz.MsgInvalidCombination
		s.render(w, http.StatusUnprocessableEntity, d)
		return
	}

	d.Success = viz.MsgSuccess
	for _, key := range settings.Keys() {
		d.Settings = append(d.Settings, settingRow{Name: key, Value: report.FormatValue(settings[key], s.precision)})
	}
	s.render(w, http.StatusOK, d)
}

func (s *Server) render(w http.ResponseWriter, status int, d pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Execute(w, d); err != nil {
		s.log.Error("render page", "err", err)
	}
}

// Status is committed before encoding; encode errors are only logged.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "status", status, "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
