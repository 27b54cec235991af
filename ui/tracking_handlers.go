package ui

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"regimen/models"
)

// handleShelf returns the user's shelf with reminders and the derived
// unscheduled list
func (a *App) handleShelf(w http.ResponseWriter, r *http.Request) {
	view, err := a.container.Supplements.GetShelf(r.Context(), userFromRequest(r))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// handleAddSupplement creates a supplement on the shelf
func (a *App) handleAddSupplement(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSupplementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid JSON body"})
		return
	}

	supplement, err := a.container.Supplements.AddSupplement(r.Context(), userFromRequest(r), req)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, supplement)
}

// handleArchiveSupplement takes a supplement off the shelf
func (a *App) handleArchiveSupplement(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r)
	if !ok {
		return
	}
	if err := a.container.Supplements.ArchiveSupplement(r.Context(), userFromRequest(r), id); err != nil {
		a.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleInsights returns adherence statistics over the tracking window
func (a *App) handleInsights(w http.ResponseWriter, r *http.Request) {
	view, err := a.container.Insights.Overview(r.Context(), userFromRequest(r))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// handleAddReminder creates a reminder
func (a *App) handleAddReminder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid JSON body"})
		return
	}

	reminder, err := a.container.Supplements.AddReminder(r.Context(), userFromRequest(r), req)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, reminder)
}

// handleRemoveReminder deletes a reminder
func (a *App) handleRemoveReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r)
	if !ok {
		return
	}
	if err := a.container.Supplements.RemoveReminder(r.Context(), userFromRequest(r), id); err != nil {
		a.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleLogIntake records a taken dose
func (a *App) handleLogIntake(w http.ResponseWriter, r *http.Request) {
	var req models.LogIntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid JSON body"})
		return
	}

	event, err := a.container.Supplements.LogIntake(r.Context(), userFromRequest(r), req)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

// pathID parses the {id} route parameter, writing a 400 on failure
func (a *App) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "id must be a positive integer"})
		return 0, false
	}
	return id, true
}
