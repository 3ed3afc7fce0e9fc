package server

import (
	"encoding/json"
	"net/http"

	"qr-dine/models"
	"qr-dine/services"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListMenu(w http.ResponseWriter, r *http.Request) {
	availableOnly := r.URL.Query().Get("available") == "true"
	items, err := services.ListMenu(r.Context(), availableOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := services.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, models.Table{ID: id, Name: models.TableName(id)})
}

func (s *Server) handleAddMenuItem(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	id, err := services.AddMenuItem(r.Context(), item)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleUpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	item.ID = chi.URLParam(r, "id")
	if err := services.UpdateMenuItem(r.Context(), item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": item.ID})
}

func (s *Server) handleDeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := services.DeleteMenuItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := services.GetStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleTopItems(w http.ResponseWriter, r *http.Request) {
	top, err := services.TopItems(r.Context(), 5)
	if err != nil {
		writeError(w, err)
		return
	}
	if top == nil {
		top = []models.TopItem{}
	}
	writeJSON(w, http.StatusOK, top)
}
