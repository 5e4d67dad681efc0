package handler

import (
	"encoding/json"
	"net/http"

	"restaurant-ordering/service"
)

// ListMenu handles GET /menu
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListMenu(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Categories handles GET /menu/categories
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// CreateMenuItem handles POST /menu
// body: { "name": "...", "price": "12.50", "category": "...", "tags": [...] }
func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req service.MenuItemInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	id, err := h.svc.CreateMenuItem(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}
