package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/boriloo/pythonScriptV2/internal/models"
)

// runRequest mirrors the /run payload. Numeric fields are pointers so an
// explicit zero can be told apart from an absent field.
type runRequest struct {
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	Keywords        []string `json:"keywords"`
	MaxMessages     *int     `json:"max_messages"`
	DelayMin        *float64 `json:"delay_min"`
	DelayMax        *float64 `json:"delay_max"`
	DryRun          bool     `json:"dry_run"`
	MessageTemplate string   `json:"message_template"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "LinkedIn Automation API rodando!",
	})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "payload invalido: " + err.Error()})
		return
	}
	rc, detail := s.buildRunConfig(req)
	if detail != "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": detail})
		return
	}

	runID := uuid.NewString()
	log := s.log.With("run_id", runID)
	log.Info("run accepted",
		"keywords", len(rc.Keywords), "max_messages", rc.MaxMessages, "dry_run", rc.DryRun)

	started := time.Now()
	res, err := s.run(r.Context(), rc)
	if err != nil {
		log.Error("run failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
		return
	}

	if s.st != nil {
		if err := s.st.RecordRun(r.Context(), runID, started, res); err != nil {
			log.Warn("record run failed", "err", err)
		}
	}
	log.Info("run finished", "total_sent", res.Summary.TotalSent, "mode", res.Summary.Mode)
	writeJSON(w, http.StatusOK, res)
}

// buildRunConfig applies the documented defaults and validates the request.
// A non-empty detail string describes the rejection.
func (s *Server) buildRunConfig(req runRequest) (models.RunConfig, string) {
	if req.Email == "" || req.Password == "" {
		return models.RunConfig{}, "email e password sao obrigatorios"
	}
	rc := models.RunConfig{
		Email:           req.Email,
		Password:        req.Password,
		Keywords:        req.Keywords,
		MaxMessages:     s.cfg.Run.MaxMessages,
		DelayMin:        s.cfg.Run.DelayMin,
		DelayMax:        s.cfg.Run.DelayMax,
		DryRun:          req.DryRun,
		MessageTemplate: req.MessageTemplate,
	}
	if len(rc.Keywords) == 0 {
		rc.Keywords = s.cfg.Run.Keywords
	}
	if req.MaxMessages != nil {
		rc.MaxMessages = *req.MaxMessages
	}
	if req.DelayMin != nil {
		rc.DelayMin = *req.DelayMin
	}
	if req.DelayMax != nil {
		rc.DelayMax = *req.DelayMax
	}
	if rc.MessageTemplate == "" {
		rc.MessageTemplate = s.cfg.Run.MessageTemplate
	}
	if rc.MaxMessages <= 0 {
		return models.RunConfig{}, "max_messages deve ser > 0"
	}
	if rc.DelayMin < 0 || rc.DelayMax < rc.DelayMin {
		return models.RunConfig{}, "delay_min/delay_max invalidos"
	}
	return rc, ""
}

func (s *Server) handleRecentRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if s.st == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	runs, err := s.st.RecentRuns(r.Context(), limit)
	if err != nil {
		s.log.Error("list runs failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, runs)
}
