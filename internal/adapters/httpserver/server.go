package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"guestcart/internal/domain"
	"guestcart/internal/usecase"
)

type Server struct {
	mux     *http.ServeMux
	carts   *usecase.CartUC
	catalog *usecase.CatalogUC
}

func New(carts *usecase.CartUC, catalog *usecase.CatalogUC) http.Handler {
	s := &Server{mux: http.NewServeMux(), carts: carts, catalog: catalog}
	s.routes()
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/carts/first", s.handleCartFirst)
	s.mux.HandleFunc("/carts/index/", s.handleCartIndex)
	s.mux.HandleFunc("/carts/add", s.handleCartAdd)
	s.mux.HandleFunc("/carts/remove", s.handleCartRemove)
	s.mux.HandleFunc("/carts/clear/", s.handleCartClear)

	s.mux.HandleFunc("/products/index/", s.handleProductsIndex)

	s.mux.HandleFunc("/admin/products", s.handleAdminProducts)
	s.mux.HandleFunc("/admin/export/xlsx", s.handleAdminExportXLSX)
}

func (s *Server) handleCartFirst(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"guest_id": domain.NewGuestID()})
}

func (s *Server) handleCartIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	guestID := strings.TrimPrefix(r.URL.Path, "/carts/index/")
	if guestID == "" {
		http.NotFound(w, r)
		return
	}
	cart, err := s.carts.GetCart(r.Context(), guestID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart": cart})
}

type addItemRequest struct {
	GuestID   string `json:"guest_id"`
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GuestID == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := s.carts.AddItem(r.Context(), req.GuestID, req.ProductID, req.Quantity); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

type removeItemRequest struct {
	GuestID   string `json:"guest_id"`
	ProductID uint   `json:"product_id"`
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req removeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GuestID == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := s.carts.RemoveItem(r.Context(), req.GuestID, req.ProductID); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	guestID := strings.TrimPrefix(r.URL.Path, "/carts/clear/")
	if guestID == "" {
		http.NotFound(w, r)
		return
	}
	if err := s.carts.ClearCart(r.Context(), guestID); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (s *Server) handleProductsIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	guestID := strings.TrimPrefix(r.URL.Path, "/products/index/")
	if guestID == "" {
		http.NotFound(w, r)
		return
	}
	products, err := s.catalog.ListForGuest(r.Context(), guestID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (s *Server) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := s.catalog.Create(r.Context(), &p); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"product": p})
}

func (s *Server) handleAdminExportXLSX(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=products.xlsx")
	if err := s.catalog.ExportXLSX(r.Context(), w); err != nil {
		log.Error().Err(err).Msg("export xlsx")
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrUnknownProduct):
		writeError(w, http.StatusUnprocessableEntity, err)
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}
