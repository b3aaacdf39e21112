package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/punchamoorthee/backoffice/internal/auth"
)

// NewRouter mounts every route. /health, /metrics and login are public;
// everything else under /api needs a bearer token.
func NewRouter(h *Handler, issuer *auth.Issuer, logger *zap.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(recoverer(logger), instrument(logger))

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/login", h.Login).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authenticate(issuer))

	pay := api.PathPrefix("/payment-fms").Subrouter()
	pay.Use(requireSystem("payment"))
	pay.HandleFunc("/create", h.CreatePayment).Methods(http.MethodPost)
	pay.HandleFunc("/all", h.ListPayments).Methods(http.MethodGet)
	pay.HandleFunc("/generate-unique-no", h.GenerateUniqueNo).Methods(http.MethodGet)
	pay.HandleFunc("/approval/pending", h.stagePending(stageApproval)).Methods(http.MethodGet)
	pay.HandleFunc("/approval/history", h.stageHistory(stageApproval)).Methods(http.MethodGet)
	pay.HandleFunc("/approval/{id}/process", h.ProcessApproval).Methods(http.MethodPatch)
	pay.HandleFunc("/make-payment/pending", h.stagePending(stageMakePayment)).Methods(http.MethodGet)
	pay.HandleFunc("/make-payment/history", h.stageHistory(stageMakePayment)).Methods(http.MethodGet)
	pay.HandleFunc("/make-payment/{id}/process", h.ProcessMakePayment).Methods(http.MethodPatch)
	pay.HandleFunc("/tally-entry/pending", h.stagePending(stageTallyEntry)).Methods(http.MethodGet)
	pay.HandleFunc("/tally-entry/history", h.stageHistory(stageTallyEntry)).Methods(http.MethodGet)
	pay.HandleFunc("/tally-entry/process", h.ProcessTallyEntry).Methods(http.MethodPost)
	pay.HandleFunc("/{id}", h.GetPayment).Methods(http.MethodGet)
	pay.HandleFunc("/{id}", h.UpdatePayment).Methods(http.MethodPut)
	pay.HandleFunc("/{id}", h.DeletePayment).Methods(http.MethodDelete)

	loans := api.PathPrefix("/loans").Subrouter()
	loans.Use(requireSystem("loan"))
	loans.HandleFunc("", h.CreateLoan).Methods(http.MethodPost)
	loans.HandleFunc("", h.ListLoans).Methods(http.MethodGet)
	loans.HandleFunc("/", h.CreateLoan).Methods(http.MethodPost)
	loans.HandleFunc("/", h.ListLoans).Methods(http.MethodGet)
	loans.HandleFunc("/foreclosure-eligible", h.ForeclosureEligible).Methods(http.MethodGet)
	loans.HandleFunc("/foreclosure/request", h.RequestForeclosure).Methods(http.MethodPost)
	loans.HandleFunc("/foreclosure/history", h.ForeclosureHistory).Methods(http.MethodGet)
	loans.HandleFunc("/foreclosure/pending-noc", h.PendingNOC).Methods(http.MethodGet)
	loans.HandleFunc("/noc", h.UpsertNOC).Methods(http.MethodPost)
	loans.HandleFunc("/noc/pending", h.listNOC(ptrBool(false), "pending")).Methods(http.MethodGet)
	loans.HandleFunc("/noc/history", h.listNOC(ptrBool(true), "history")).Methods(http.MethodGet)
	loans.HandleFunc("/noc/all", h.listNOC(nil, "records")).Methods(http.MethodGet)
	loans.HandleFunc("/{id}", h.GetLoan).Methods(http.MethodGet)
	loans.HandleFunc("/{id}", h.UpdateLoan).Methods(http.MethodPut)
	loans.HandleFunc("/{id}", h.DeleteLoan).Methods(http.MethodDelete)

	docs := api.PathPrefix("/documents").Subrouter()
	docs.Use(requireSystem("document"))
	docs.HandleFunc("/create", h.CreateDocument).Methods(http.MethodPost)
	docs.HandleFunc("/create-multiple", h.CreateDocuments).Methods(http.MethodPost)
	docs.HandleFunc("", h.ListDocuments).Methods(http.MethodGet)
	docs.HandleFunc("/", h.ListDocuments).Methods(http.MethodGet)
	docs.HandleFunc("/stats", h.DocumentStats).Methods(http.MethodGet)
	docs.HandleFunc("/renewal", h.DocumentsNeedingRenewal).Methods(http.MethodGet)
	docs.HandleFunc("/category/{category}", h.DocumentsByCategory).Methods(http.MethodGet)
	docs.HandleFunc("/{id}", h.GetDocument).Methods(http.MethodGet)
	docs.HandleFunc("/{id}", h.UpdateDocument).Methods(http.MethodPut)
	docs.HandleFunc("/{id}", h.DeleteDocument).Methods(http.MethodDelete)

	master := api.PathPrefix("/master").Subrouter()
	master.Use(requireSystem("document"))
	master.HandleFunc("", h.ListMaster).Methods(http.MethodGet)
	master.HandleFunc("/", h.ListMaster).Methods(http.MethodGet)
	master.HandleFunc("/company-names", h.CompanyNames).Methods(http.MethodGet)
	master.HandleFunc("/document-types", h.DocumentTypes).Methods(http.MethodGet)
	master.HandleFunc("/categories", h.Categories).Methods(http.MethodGet)
	master.HandleFunc("", h.CreateMaster).Methods(http.MethodPost)
	master.HandleFunc("/", h.CreateMaster).Methods(http.MethodPost)
	master.HandleFunc("", h.DeleteMaster).Methods(http.MethodDelete)
	master.HandleFunc("/", h.DeleteMaster).Methods(http.MethodDelete)

	settings := api.PathPrefix("/settings").Subrouter()
	settings.Use(requireAdmin)
	settings.HandleFunc("/users", h.ListUserAccess).Methods(http.MethodGet)
	settings.HandleFunc("/users/{id}", h.GetUserAccess).Methods(http.MethodGet)
	settings.HandleFunc("/users/{id}/access", h.UpdateUserAccess).Methods(http.MethodPut)

	users := api.PathPrefix("/users").Subrouter()
	users.Use(requireAdmin)
	users.HandleFunc("", h.ListUsers).Methods(http.MethodGet)
	users.HandleFunc("", h.CreateUser).Methods(http.MethodPost)
	users.HandleFunc("", h.UpdateUser).Methods(http.MethodPut)
	users.HandleFunc("/{username}", h.DeleteUser).Methods(http.MethodDelete)

	dash := api.PathPrefix("/dashboard-routes").Subrouter()
	dash.Use(requireSystem("subscription"))
	dash.HandleFunc("/all", h.AllSubscriptions).Methods(http.MethodGet)
	dash.HandleFunc("/mine", h.MySubscriptions).Methods(http.MethodGet)
	dash.HandleFunc("/stats", h.DashboardStats).Methods(http.MethodGet)
	dash.HandleFunc("/names", h.SubscriberNames).Methods(http.MethodGet)

	approval := api.PathPrefix("/subscription-approval").Subrouter()
	approval.Use(requireSystem("subscription"))
	approval.HandleFunc("/pending", h.PendingSubscriptionApprovals).Methods(http.MethodGet)
	approval.HandleFunc("/history", h.SubscriptionApprovalHistory).Methods(http.MethodGet)
	approval.HandleFunc("/approve", h.ApproveSubscription).Methods(http.MethodPost)

	return cors(r)
}

func ptrBool(b bool) *bool { return &b }
