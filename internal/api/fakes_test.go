package api

import (
	"context"

	"github.com/punchamoorthee/backoffice/internal/domain"
	"github.com/punchamoorthee/backoffice/internal/models"
	"github.com/punchamoorthee/backoffice/internal/workflow"
)

// Each fake embeds its interface so unused methods panic if reached.

type fakePayments struct {
	PaymentService
	CreateFunc  func(ctx context.Context, req models.CreatePaymentRequest) (domain.PaymentFMS, error)
	ListFunc    func(ctx context.Context) ([]domain.PaymentFMS, error)
	GetFunc     func(ctx context.Context, id string) (domain.PaymentFMS, error)
	PendingFunc func(ctx context.Context, stage int) ([]domain.PaymentFMS, error)
	ApproveFunc func(ctx context.Context, id string, req models.ApprovalRequest) (domain.PaymentFMS, error)
	TallyFunc   func(ctx context.Context, req models.TallyEntryRequest) (*workflow.BulkResult[domain.PaymentFMS], error)
	NextFunc    func(ctx context.Context) (string, error)
}

func (f *fakePayments) Create(ctx context.Context, req models.CreatePaymentRequest) (domain.PaymentFMS, error) {
	return f.CreateFunc(ctx, req)
}

func (f *fakePayments) List(ctx context.Context) ([]domain.PaymentFMS, error) {
	return f.ListFunc(ctx)
}

func (f *fakePayments) Get(ctx context.Context, id string) (domain.PaymentFMS, error) {
	return f.GetFunc(ctx, id)
}

func (f *fakePayments) Pending(ctx context.Context, stage int) ([]domain.PaymentFMS, error) {
	return f.PendingFunc(ctx, stage)
}

func (f *fakePayments) Approve(ctx context.Context, id string, req models.ApprovalRequest) (domain.PaymentFMS, error) {
	return f.ApproveFunc(ctx, id, req)
}

func (f *fakePayments) TallyEntry(ctx context.Context, req models.TallyEntryRequest) (*workflow.BulkResult[domain.PaymentFMS], error) {
	return f.TallyFunc(ctx, req)
}

func (f *fakePayments) NextUniqueNo(ctx context.Context) (string, error) {
	return f.NextFunc(ctx)
}

type fakeLoans struct {
	LoanService
	NOCsFunc func(ctx context.Context, collected *bool) ([]domain.NOC, error)
}

func (f *fakeLoans) NOCs(ctx context.Context, collected *bool) ([]domain.NOC, error) {
	return f.NOCsFunc(ctx, collected)
}

type fakeMaster struct {
	MasterService
	DeleteFunc func(ctx context.Context, req models.MasterRequest) error
}

func (f *fakeMaster) Delete(ctx context.Context, req models.MasterRequest) error {
	return f.DeleteFunc(ctx, req)
}

type fakeAuth struct {
	LoginFunc func(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
}

func (f *fakeAuth) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	return f.LoginFunc(ctx, req)
}

type fakeUsers struct {
	UserService
	ListWithAccessFunc func(ctx context.Context) ([]domain.User, error)
}

func (f *fakeUsers) ListWithAccess(ctx context.Context) ([]domain.User, error) {
	return f.ListWithAccessFunc(ctx)
}
