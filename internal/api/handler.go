package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"offer-proxy/internal/offers"
	"offer-proxy/internal/service"
	"offer-proxy/internal/upstream"
)

type OffersHandler struct {
	Svc *service.Service
}

func NewOffersHandler(svc *service.Service) *OffersHandler {
	return &OffersHandler{Svc: svc}
}

type offersResponse struct {
	Offers []offers.Offer `json:"offers"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Offers serves GET /v1/offers. All query parameters are optional:
// userAgent (falls back to the User-Agent header), country, formFactor, os,
// and ip (used only when no public address can be resolved from the request).
func (h *OffersHandler) Offers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ip := resolveClientIP(r)
	if ip == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "could not determine client IP; pass an ip query parameter"})
		return
	}

	ua := q.Get("userAgent")
	if ua == "" {
		ua = r.Header.Get("User-Agent")
	}

	req := service.Request{
		IP:         ip,
		UserAgent:  ua,
		Country:    q.Get("country"),
		FormFactor: q.Get("formFactor"),
		OS:         q.Get("os"),
	}

	list, err := h.Svc.Offers(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []offers.Offer{}
	}
	writeJSON(w, http.StatusOK, offersResponse{Offers: list})
}

func writeError(w http.ResponseWriter, err error) {
	var apiErr *upstream.APIError
	switch {
	case errors.Is(err, service.ErrNotConfigured):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	case errors.As(err, &apiErr):
		writeJSON(w, apiErr.StatusCode, errorResponse{Error: apiErr.Message})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
