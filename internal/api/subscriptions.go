package api

import (
	"net/http"

	"github.com/punchamoorthee/backoffice/internal/auth"
	"github.com/punchamoorthee/backoffice/internal/models"
)

func (h *Handler) AllSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subscriptions.All(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"data": subs})
}

// MySubscriptions lists subscriptions whose subscriber is the caller.
func (h *Handler) MySubscriptions(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	subs, err := h.subscriptions.Mine(r.Context(), claims)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"data": subs})
}

func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	stats, err := h.subscriptions.Stats(r.Context(), claims)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"data": stats})
}

func (h *Handler) SubscriberNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.subscriptions.SubscriberNames(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"data": names})
}

func (h *Handler) PendingSubscriptionApprovals(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subscriptions.PendingApprovals(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"data": subs})
}

func (h *Handler) SubscriptionApprovalHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.subscriptions.ApprovalHistory(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"data": history})
}

// ApproveSubscription records the decision under the caller's name.
func (h *Handler) ApproveSubscription(w http.ResponseWriter, r *http.Request) {
	var req models.SubscriptionApprovalRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	var approvedBy string
	if claims, found := auth.FromContext(r.Context()); found {
		approvedBy = claims.Name
		if approvedBy == "" {
			approvedBy = claims.Username
		}
	}
	entry, err := h.subscriptions.Approve(r.Context(), req, approvedBy)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, envelope{"data": entry})
}
