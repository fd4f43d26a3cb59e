package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/camuig/paper-broker/internal/instruments"
	"github.com/camuig/paper-broker/internal/marketdata"
	"github.com/camuig/paper-broker/internal/orders"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req orders.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := s.orders.SubmitOrder(req)
	if err != nil {
		s.writeOrderError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := strconv.ParseUint(r.URL.Query().Get("userId"), 10, 32)
	if err != nil || userID == 0 {
		s.writeError(w, http.StatusBadRequest, "userId must be a positive integer")
		return
	}

	report, err := s.portfolio.GetPortfolio(uint(userID))
	if err != nil {
		s.logger.Error("get portfolio", "user_id", userID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleInstrumentSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	results, err := s.instruments.Search(r.URL.Query().Get("term"))
	if err != nil {
		s.logger.Error("search instruments", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeOrderError maps the submission error channels onto client statuses.
// Soft rejections never reach here; they come back as created orders.
func (s *Server) writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, instruments.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, orders.ErrInvalidRequest),
		errors.Is(err, orders.ErrUnsupportedSide),
		errors.Is(err, instruments.ErrNonTradable),
		errors.Is(err, marketdata.ErrNoMarketPrice):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("submit order", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}
