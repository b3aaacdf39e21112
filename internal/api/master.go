package api

import (
	"context"
	"net/http"

	"github.com/punchamoorthee/backoffice/internal/models"
)

func (h *Handler) ListMaster(w http.ResponseWriter, r *http.Request) {
	rows, err := h.master.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"data": rows})
}

func (h *Handler) CompanyNames(w http.ResponseWriter, r *http.Request) {
	h.distinct(w, r, "companyName", h.master.CompanyNames)
}

func (h *Handler) DocumentTypes(w http.ResponseWriter, r *http.Request) {
	h.distinct(w, r, "documentTypes", h.master.DocumentTypes)
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	h.distinct(w, r, "categories", h.master.Categories)
}

func (h *Handler) distinct(w http.ResponseWriter, r *http.Request, key string, load func(ctx context.Context) ([]string, error)) {
	values, err := load(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{key: values})
}

func (h *Handler) CreateMaster(w http.ResponseWriter, r *http.Request) {
	var req models.MasterRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	row, err := h.master.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusCreated, envelope{"data": row})
}

// DeleteMaster removes the row matching the compound key in the body.
func (h *Handler) DeleteMaster(w http.ResponseWriter, r *http.Request) {
	var req models.MasterRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.master.Delete(r.Context(), req); err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"message": "Master record deleted"})
}
