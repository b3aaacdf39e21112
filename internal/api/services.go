package api

import (
	"context"

	"github.com/punchamoorthee/backoffice/internal/auth"
	"github.com/punchamoorthee/backoffice/internal/domain"
	"github.com/punchamoorthee/backoffice/internal/models"
	"github.com/punchamoorthee/backoffice/internal/workflow"
)

type PaymentService interface {
	Create(ctx context.Context, req models.CreatePaymentRequest) (domain.PaymentFMS, error)
	List(ctx context.Context) ([]domain.PaymentFMS, error)
	Get(ctx context.Context, id string) (domain.PaymentFMS, error)
	Update(ctx context.Context, id string, req models.UpdatePaymentRequest) (domain.PaymentFMS, error)
	Delete(ctx context.Context, id string) error
	NextUniqueNo(ctx context.Context) (string, error)
	Pending(ctx context.Context, stage int) ([]domain.PaymentFMS, error)
	History(ctx context.Context, stage int) ([]domain.PaymentFMS, error)
	Approve(ctx context.Context, id string, req models.ApprovalRequest) (domain.PaymentFMS, error)
	MakePayment(ctx context.Context, id string, req models.MakePaymentRequest) (domain.PaymentFMS, error)
	TallyEntry(ctx context.Context, req models.TallyEntryRequest) (*workflow.BulkResult[domain.PaymentFMS], error)
}

type LoanService interface {
	Create(ctx context.Context, req models.CreateLoanRequest) (domain.Loan, error)
	List(ctx context.Context) ([]domain.Loan, error)
	Get(ctx context.Context, id string) (domain.Loan, error)
	Update(ctx context.Context, id string, req models.UpdateLoanRequest) (domain.Loan, error)
	Delete(ctx context.Context, id string) error
	ForeclosureEligible(ctx context.Context) ([]domain.Loan, error)
	RequestForeclosure(ctx context.Context, req models.ForeclosureRequestInput) (domain.ForeclosureRequest, error)
	ForeclosureHistory(ctx context.Context) ([]domain.ForeclosureRequest, error)
	PendingNOC(ctx context.Context) ([]domain.ForeclosureRequest, error)
	UpsertNOC(ctx context.Context, req models.NOCRequest) (domain.NOC, error)
	NOCs(ctx context.Context, collected *bool) ([]domain.NOC, error)
}

type DocumentService interface {
	Create(ctx context.Context, req models.DocumentRequest) (domain.Document, error)
	CreateMany(ctx context.Context, req models.CreateDocumentsRequest) ([]domain.Document, error)
	List(ctx context.Context) ([]domain.Document, error)
	Get(ctx context.Context, id string) (domain.Document, error)
	Update(ctx context.Context, id string, req models.DocumentRequest) (domain.Document, error)
	Delete(ctx context.Context, id string) error
	ByCategory(ctx context.Context, category string) ([]domain.Document, error)
	NeedingRenewal(ctx context.Context) ([]domain.Document, error)
	Stats(ctx context.Context) (domain.DocumentStats, error)
}

type MasterService interface {
	List(ctx context.Context) ([]domain.MasterRecord, error)
	CompanyNames(ctx context.Context) ([]string, error)
	DocumentTypes(ctx context.Context) ([]string, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, req models.MasterRequest) (domain.MasterRecord, error)
	Delete(ctx context.Context, req models.MasterRequest) error
}

type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	ListWithAccess(ctx context.Context) ([]domain.User, error)
	GetWithAccess(ctx context.Context, id string) (domain.User, error)
	UpdateAccess(ctx context.Context, id string, req models.AccessRequest) (domain.User, error)
	Create(ctx context.Context, req models.CreateUserRequest) (domain.User, error)
	Update(ctx context.Context, req models.UpdateUserRequest) (domain.User, error)
	Delete(ctx context.Context, username string) error
}

type SubscriptionService interface {
	All(ctx context.Context) ([]domain.Subscription, error)
	Mine(ctx context.Context, claims *auth.Claims) ([]domain.Subscription, error)
	Stats(ctx context.Context, claims *auth.Claims) (domain.DashboardStats, error)
	SubscriberNames(ctx context.Context) ([]string, error)
	PendingApprovals(ctx context.Context) ([]domain.Subscription, error)
	ApprovalHistory(ctx context.Context) ([]domain.ApprovalHistory, error)
	Approve(ctx context.Context, req models.SubscriptionApprovalRequest, approvedBy string) (domain.ApprovalHistory, error)
}
