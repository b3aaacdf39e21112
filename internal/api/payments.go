package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/punchamoorthee/backoffice/internal/models"
	"github.com/punchamoorthee/backoffice/internal/service"
)

const (
	stageApproval    = service.StageApproval
	stageMakePayment = service.StageMakePayment
	stageTallyEntry  = service.StageTallyEntry
)

func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.payments.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusCreated, envelope{"data": p})
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	list, err := h.payments.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"data": list})
}

func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.payments.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"data": p})
}

func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePaymentRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.payments.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"data": p})
}

func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.payments.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"message": "Record deleted successfully"})
}

func (h *Handler) GenerateUniqueNo(w http.ResponseWriter, r *http.Request) {
	next, err := h.payments.NextUniqueNo(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"uniqueNo": next})
}

// stagePending lists records waiting at one payment stage.
func (h *Handler) stagePending(stage int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.payments.Pending(r.Context(), stage)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		ok(w, http.StatusOK, envelope{"data": list})
	}
}

func (h *Handler) stageHistory(stage int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.payments.History(r.Context(), stage)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		ok(w, http.StatusOK, envelope{"data": list})
	}
}

func (h *Handler) ProcessApproval(w http.ResponseWriter, r *http.Request) {
	var req models.ApprovalRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.payments.Approve(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"data": p})
}

func (h *Handler) ProcessMakePayment(w http.ResponseWriter, r *http.Request) {
	var req models.MakePaymentRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.payments.MakePayment(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"data": p})
}

// ProcessTallyEntry completes the tally stage for a batch of ids. Ids that
// matched nothing are reported back rather than dropped.
func (h *Handler) ProcessTallyEntry(w http.ResponseWriter, r *http.Request) {
	var req models.TallyEntryRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.payments.TallyEntry(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{
		"data":    res.Updated,
		"missing": res.Missing,
		"results": res.Results,
		"message": fmt.Sprintf("%d entries processed successfully", len(res.Updated)),
	})
}
