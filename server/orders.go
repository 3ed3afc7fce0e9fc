package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"qr-dine/models"
	"qr-dine/services"

	"github.com/go-chi/chi/v5"
)

type placeOrderRequest struct {
	OrderID    string `json:"orderId,omitempty"` // client-generated uuid, makes retries idempotent
	SessionID  string `json:"sessionId"`
	TableID    string `json:"tableId"`
	CustomerID string `json:"customerId"`
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "sessionId is required"})
		return
	}
	if req.CustomerID == "" {
		req.CustomerID = req.SessionID
	}

	items, _ := s.Carts.Snapshot(req.SessionID)

	order, err := s.Placer.PlaceOrder(r.Context(), services.PlaceOrderInput{
		OrderID:    req.OrderID,
		TableID:    req.TableID,
		CustomerID: req.CustomerID,
		Items:      items,
	})
	if err != nil {
		// Cart is intentionally left intact so the customer can retry.
		writeError(w, err)
		return
	}

	s.Carts.Clear(req.SessionID)
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	var statuses []string
	if q := r.URL.Query().Get("status"); q != "" {
		statuses = strings.Split(q, ",")
	}
	orders, err := services.ListOrders(r.Context(), statuses...)
	if err != nil {
		writeError(w, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := services.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
		Actor  string `json:"actor,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	id := chi.URLParam(r, "id")
	if err := services.UpdateOrderStatus(r.Context(), id, body.Status, body.Actor); err != nil {
		writeError(w, err)
		return
	}
	order, err := services.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
