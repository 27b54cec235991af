package ui

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// handleHealth reports service liveness. The database ping is part of the
// check so orchestrators pull a pod whose connection pool has gone bad.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	if a.container.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.container.DB.PingContext(ctx); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":  "degraded",
				"service": "regimen",
				"error":   "database unreachable",
			})
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "regimen",
	})
}

// handleHome assembles the storefront home feed. An optional scroll_to
// query parameter resolves a section title into a scroll target on the
// returned rows.
func (a *App) handleHome(w http.ResponseWriter, r *http.Request) {
	view, err := a.container.Home.AssembleHome(r.Context(), r.URL.Query().Get("scroll_to"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// handleSections lists the active layout's sections in render order
func (a *App) handleSections(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sections": a.container.Home.Sections(),
		"hash":     a.container.LayoutRegistry.Hash(),
	})
}

// handleNavigate resolves a free-form section title into a scroll
// position on the current home feed
func (a *App) handleNavigate(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if strings.TrimSpace(title) == "" {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "title query parameter is required",
		})
		return
	}

	nav, ok, err := a.container.Home.Navigate(r.Context(), title)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	if !ok {
		respondJSON(w, http.StatusNotFound, map[string]interface{}{
			"error": fmt.Sprintf("no section matches %q", title),
		})
		return
	}

	respondJSON(w, http.StatusOK, nav)
}
