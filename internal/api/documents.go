package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/punchamoorthee/backoffice/internal/models"
)

func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req models.DocumentRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	doc, err := h.documents.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusCreated, envelope{"document": doc})
}

func (h *Handler) CreateDocuments(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDocumentsRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	docs, err := h.documents.CreateMany(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusCreated, envelope{
		"message":   fmt.Sprintf("%d document(s) created successfully", len(docs)),
		"documents": docs,
	})
}

func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documents.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"documents": docs})
}

func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.documents.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"document": doc})
}

func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	var req models.DocumentRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	doc, err := h.documents.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"document": doc})
}

func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.documents.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"message": "Document deleted successfully"})
}

func (h *Handler) DocumentsByCategory(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documents.ByCategory(r.Context(), mux.Vars(r)["category"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"documents": docs})
}

func (h *Handler) DocumentsNeedingRenewal(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documents.NeedingRenewal(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"documents": docs})
}

func (h *Handler) DocumentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.documents.Stats(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"stats": stats})
}
