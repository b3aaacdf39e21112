package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/punchamoorthee/backoffice/internal/models"
)

func (h *Handler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLoanRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	loan, err := h.loans.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusCreated, envelope{"loan": loan})
}

func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loans.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"loans": loans})
}

func (h *Handler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loan, err := h.loans.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"loan": loan})
}

func (h *Handler) UpdateLoan(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateLoanRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	loan, err := h.loans.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"loan": loan})
}

func (h *Handler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	if err := h.loans.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"message": "Loan deleted successfully"})
}

// ForeclosureEligible lists matured loans with no foreclosure request yet.
func (h *Handler) ForeclosureEligible(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loans.ForeclosureEligible(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"loans": loans})
}

func (h *Handler) RequestForeclosure(w http.ResponseWriter, r *http.Request) {
	var req models.ForeclosureRequestInput
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	fr, err := h.loans.RequestForeclosure(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusCreated, envelope{"request": fr})
}

func (h *Handler) ForeclosureHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.loans.ForeclosureHistory(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"history": history})
}

func (h *Handler) PendingNOC(w http.ResponseWriter, r *http.Request) {
	requests, err := h.loans.PendingNOC(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"requests": requests})
}

func (h *Handler) UpsertNOC(w http.ResponseWriter, r *http.Request) {
	var req models.NOCRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	noc, err := h.loans.UpsertNOC(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusCreated, envelope{"noc": noc})
}

// listNOC serves NOC rows filtered by collection state; nil means all.
func (h *Handler) listNOC(collected *bool, key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nocs, err := h.loans.NOCs(r.Context(), collected)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		ok(w, http.StatusOK, envelope{key: nocs})
	}
}
