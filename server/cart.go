package server

import (
	"encoding/json"
	"net/http"

	"qr-dine/services"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type cartView struct {
	Entries []services.CartEntry `json:"entries"`
	Total   decimal.Decimal      `json:"total"`
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")
	entries, total := s.Carts.View(session)
	writeJSON(w, http.StatusOK, cartView{Entries: entries, Total: total})
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")
	itemID := chi.URLParam(r, "itemID")

	item, err := services.GetMenuItem(r.Context(), itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !item.Available {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "item is not available"})
		return
	}

	s.Carts.Add(session, *item)
	entries, total := s.Carts.View(session)
	writeJSON(w, http.StatusOK, cartView{Entries: entries, Total: total})
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")
	s.Carts.Remove(session, chi.URLParam(r, "itemID"))
	entries, total := s.Carts.View(session)
	writeJSON(w, http.StatusOK, cartView{Entries: entries, Total: total})
}

func (s *Server) handleCartNote(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")
	var body struct {
		Note string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	s.Carts.SetSpecialRequest(session, chi.URLParam(r, "itemID"), body.Note)
	entries, total := s.Carts.View(session)
	writeJSON(w, http.StatusOK, cartView{Entries: entries, Total: total})
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	s.Carts.Clear(chi.URLParam(r, "session"))
	w.WriteHeader(http.StatusNoContent)
}
