package api

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/meur/umaviewer/internal/config"
	"github.com/meur/umaviewer/internal/jobs"
)

func (s *Server) fileExists(name string) bool {
	info, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil && !info.IsDir()
}

// handleStatus reports which pipeline files exist
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{
		"data_exists":     s.fileExists(config.DataFile),
		"enriched_exists": s.fileExists(config.EnrichedFile),
		"viewer_exists":   s.fileExists(config.ViewerFile),
	})
}

// handleOutput drains the unread output of an action
func (s *Server) handleOutput(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	output, status := s.jobs.Poll(action)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"output": output,
		"status": status,
	})
}

// handleLive returns the full output of a running action so a reloaded panel can
// reattach; polling continues from there.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"running": s.jobs.Running(action),
		"output":  s.jobs.Output(action),
	})
}

// handleLaunch starts the subprocess for action
func (s *Server) handleLaunch(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		args, ok := s.commands[action]
		if !ok {
			respondError(w, http.StatusNotFound, "Unknown action")
			return
		}

		runID, err := s.jobs.Launch(action, s.executable, args...)
		if errors.Is(err, jobs.ErrAlreadyRunning) {
			s.logger.Info("launch rejected", zap.String("action", action))
			respondJSON(w, http.StatusOK, map[string]string{
				"status":  "error",
				"message": "Already running",
			})
			return
		}
		if err != nil {
			s.logger.Error("launch failed", zap.String("action", action), zap.Error(err))
			respondJSON(w, http.StatusOK, map[string]string{
				"status":  "error",
				"message": err.Error(),
			})
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{
			"status": "started",
			"run_id": runID,
		})
	}
}
