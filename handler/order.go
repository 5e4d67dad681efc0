package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// OpenOrder handles POST /order/sessions
func (h *Handler) OpenOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.OpenOrder(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

// GetOrder handles GET /order/sessions/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.GetOrder(mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// AddToOrder handles POST /order/sessions/{id}/items/{itemID}
func (h *Handler) AddToOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	o, err := h.svc.AddToOrder(vars["id"], vars["itemID"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// RemoveFromOrder handles DELETE /order/sessions/{id}/items/{itemID}
func (h *Handler) RemoveFromOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	o, err := h.svc.RemoveFromOrder(vars["id"], vars["itemID"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// CloseOrder handles DELETE /order/sessions/{id}
func (h *Handler) CloseOrder(w http.ResponseWriter, r *http.Request) {
	h.svc.CloseOrder(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}
