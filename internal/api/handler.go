package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/punchamoorthee/backoffice/internal/domain"
)

// maxBodyBytes bounds request bodies; inline base64 uploads make them large.
const maxBodyBytes = 50 << 20

// envelope is the JSON body of every API response.
type envelope map[string]any

// Handler serves the back-office API.
type Handler struct {
	payments      PaymentService
	loans         LoanService
	documents     DocumentService
	master        MasterService
	auth          AuthService
	users         UserService
	subscriptions SubscriptionService
	logger        *zap.Logger
}

// Services groups the dependencies of a Handler.
type Services struct {
	Payments      PaymentService
	Loans         LoanService
	Documents     DocumentService
	Master        MasterService
	Auth          AuthService
	Users         UserService
	Subscriptions SubscriptionService
}

func NewHandler(s Services, logger *zap.Logger) *Handler {
	return &Handler{
		payments:      s.Payments,
		loans:         s.Loans,
		documents:     s.Documents,
		master:        s.Master,
		auth:          s.Auth,
		users:         s.Users,
		subscriptions: s.Subscriptions,
		logger:        logger,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads a JSON body into dst. Malformed input is a validation error.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body", domain.ErrValidation)
	}
	return nil
}

// ok writes a success envelope carrying the given fields.
func ok(w http.ResponseWriter, code int, fields envelope) {
	body := envelope{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	respondJSON(w, code, body)
}

// fail maps err onto a status code. Upstream and unclassified errors are
// logged and reported without detail.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := statusFor(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	respondError(w, code, msg)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Record not found"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "Record already exists"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, envelope{"success": false, "error": message})
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}
