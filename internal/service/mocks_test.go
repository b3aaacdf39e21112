package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/punchamoorthee/backoffice/internal/domain"
	"github.com/punchamoorthee/backoffice/internal/models"
	"github.com/punchamoorthee/backoffice/internal/workflow"
)

type mockPaymentRepo struct {
	CreateFunc       func(ctx context.Context, p domain.PaymentFMS) (domain.PaymentFMS, error)
	GetFunc          func(ctx context.Context, id uuid.UUID) (domain.PaymentFMS, error)
	UpdateFunc       func(ctx context.Context, id uuid.UUID, req models.UpdatePaymentRequest) (domain.PaymentFMS, error)
	LatestFunc       func(ctx context.Context) (string, error)
	PendingFunc      func(ctx context.Context, def workflow.Definition, stage workflow.Stage) ([]domain.PaymentFMS, error)
	CompleteFunc     func(ctx context.Context, def workflow.Definition, stage workflow.Stage, id string, at time.Time, fields map[string]any) (domain.PaymentFMS, error)
	CompleteManyFunc func(ctx context.Context, def workflow.Definition, stage workflow.Stage, ids []string, at time.Time) ([]domain.PaymentFMS, error)
}

func (m *mockPaymentRepo) Pending(ctx context.Context, def workflow.Definition, stage workflow.Stage) ([]domain.PaymentFMS, error) {
	if m.PendingFunc == nil {
		return nil, nil
	}
	return m.PendingFunc(ctx, def, stage)
}

func (m *mockPaymentRepo) History(context.Context, workflow.Definition, workflow.Stage) ([]domain.PaymentFMS, error) {
	return nil, nil
}

func (m *mockPaymentRepo) Complete(ctx context.Context, def workflow.Definition, stage workflow.Stage, id string, at time.Time, fields map[string]any) (domain.PaymentFMS, error) {
	return m.CompleteFunc(ctx, def, stage, id, at, fields)
}

func (m *mockPaymentRepo) CompleteMany(ctx context.Context, def workflow.Definition, stage workflow.Stage, ids []string, at time.Time) ([]domain.PaymentFMS, error) {
	return m.CompleteManyFunc(ctx, def, stage, ids, at)
}

func (m *mockPaymentRepo) Create(ctx context.Context, p domain.PaymentFMS) (domain.PaymentFMS, error) {
	return m.CreateFunc(ctx, p)
}

func (m *mockPaymentRepo) List(context.Context) ([]domain.PaymentFMS, error) { return nil, nil }

func (m *mockPaymentRepo) Get(ctx context.Context, id uuid.UUID) (domain.PaymentFMS, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockPaymentRepo) Update(ctx context.Context, id uuid.UUID, req models.UpdatePaymentRequest) (domain.PaymentFMS, error) {
	if m.UpdateFunc == nil {
		return domain.PaymentFMS{}, nil
	}
	return m.UpdateFunc(ctx, id, req)
}

func (m *mockPaymentRepo) Delete(context.Context, uuid.UUID) (domain.PaymentFMS, error) {
	return domain.PaymentFMS{}, nil
}

func (m *mockPaymentRepo) LatestUniqueNo(ctx context.Context) (string, error) {
	if m.LatestFunc == nil {
		return "", nil
	}
	return m.LatestFunc(ctx)
}

type mockLoanRepo struct {
	CreateFunc              func(ctx context.Context, l domain.Loan) (domain.Loan, error)
	DueForForeclosureFunc   func(ctx context.Context, day time.Time) ([]domain.Loan, error)
	CreateForeclosureFunc   func(ctx context.Context, r domain.ForeclosureRequest) (domain.ForeclosureRequest, error)
	ForeclosureRequestsFunc func(ctx context.Context) ([]domain.ForeclosureRequest, error)
	UpsertNOCFunc           func(ctx context.Context, n domain.NOC) (domain.NOC, error)
	NOCsFunc                func(ctx context.Context, collected *bool) ([]domain.NOC, error)
	SoftDeleteFunc          func(ctx context.Context, id int64) (domain.Loan, error)
}

func (m *mockLoanRepo) Create(ctx context.Context, l domain.Loan) (domain.Loan, error) {
	return m.CreateFunc(ctx, l)
}

func (m *mockLoanRepo) List(context.Context) ([]domain.Loan, error) {
	return nil, nil
}

func (m *mockLoanRepo) Get(context.Context, int64) (domain.Loan, error) {
	return domain.Loan{}, nil
}

func (m *mockLoanRepo) Update(context.Context, int64, models.UpdateLoanRequest) (domain.Loan, error) {
	return domain.Loan{}, nil
}

func (m *mockLoanRepo) SoftDelete(ctx context.Context, id int64) (domain.Loan, error) {
	return m.SoftDeleteFunc(ctx, id)
}

func (m *mockLoanRepo) DueForForeclosure(ctx context.Context, day time.Time) ([]domain.Loan, error) {
	return m.DueForForeclosureFunc(ctx, day)
}

func (m *mockLoanRepo) CreateForeclosure(ctx context.Context, r domain.ForeclosureRequest) (domain.ForeclosureRequest, error) {
	return m.CreateForeclosureFunc(ctx, r)
}

func (m *mockLoanRepo) ForeclosureRequests(ctx context.Context) ([]domain.ForeclosureRequest, error) {
	return m.ForeclosureRequestsFunc(ctx)
}

func (m *mockLoanRepo) UpsertNOC(ctx context.Context, n domain.NOC) (domain.NOC, error) {
	return m.UpsertNOCFunc(ctx, n)
}

func (m *mockLoanRepo) NOCs(ctx context.Context, collected *bool) ([]domain.NOC, error) {
	return m.NOCsFunc(ctx, collected)
}

type mockUploader struct {
	PutFunc func(ctx context.Context, body []byte, contentType, key string) (string, error)
}

func (m *mockUploader) Put(ctx context.Context, body []byte, contentType, key string) (string, error) {
	return m.PutFunc(ctx, body, contentType, key)
}

type mockDocumentRepo struct {
	CreateFunc     func(ctx context.Context, d domain.Document) (domain.Document, error)
	CreateManyFunc func(ctx context.Context, docs []domain.Document) ([]domain.Document, error)
}

func (m *mockDocumentRepo) Create(ctx context.Context, d domain.Document) (domain.Document, error) {
	return m.CreateFunc(ctx, d)
}

func (m *mockDocumentRepo) CreateMany(ctx context.Context, docs []domain.Document) ([]domain.Document, error) {
	return m.CreateManyFunc(ctx, docs)
}

func (m *mockDocumentRepo) List(context.Context) ([]domain.Document, error) {
	return nil, nil
}

func (m *mockDocumentRepo) Get(context.Context, int64) (domain.Document, error) {
	return domain.Document{}, nil
}
func (m *mockDocumentRepo) Update(context.Context, int64, models.DocumentRequest) (domain.Document, error) {
	return domain.Document{}, nil
}
func (m *mockDocumentRepo) SoftDelete(context.Context, int64) (domain.Document, error) {
	return domain.Document{}, nil
}
func (m *mockDocumentRepo) ByCategory(context.Context, string) ([]domain.Document, error) {
	return nil, nil
}
func (m *mockDocumentRepo) NeedingRenewal(context.Context) ([]domain.Document, error) {
	return nil, nil
}
func (m *mockDocumentRepo) Stats(context.Context) (domain.DocumentStats, error) {
	return domain.DocumentStats{}, nil
}

type mockUserRepo struct {
	FindByUsernameFunc func(ctx context.Context, username string) (domain.User, error)
	GetFunc            func(ctx context.Context, id int64) (domain.User, error)
	CreateFunc         func(ctx context.Context, u domain.User) (domain.User, error)
	UpdateFunc         func(ctx context.Context, u domain.User) (domain.User, error)
	touched            []int64
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return m.FindByUsernameFunc(ctx, username)
}

func (m *mockUserRepo) Get(ctx context.Context, id int64) (domain.User, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockUserRepo) List(context.Context, string) ([]domain.User, error) { return nil, nil }

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.CreateFunc(ctx, u)
}

func (m *mockUserRepo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	return m.UpdateFunc(ctx, u)
}

func (m *mockUserRepo) DeleteByUsername(context.Context, string) error { return nil }

func (m *mockUserRepo) UpdateAccess(_ context.Context, id int64, access domain.AccessSettings) (domain.User, error) {
	return domain.User{ID: id, Access: access}, nil
}

func (m *mockUserRepo) TouchLastLogin(_ context.Context, id int64, _ time.Time) error {
	m.touched = append(m.touched, id)
	return nil
}

type mockSubscriptionRepo struct {
	CompleteFunc func(ctx context.Context, def workflow.Definition, stage workflow.Stage, id string, at time.Time, fields map[string]any) (domain.Subscription, error)
	ListFunc     func(ctx context.Context, subscriber string) ([]domain.Subscription, error)
	LatestFunc   func(ctx context.Context) (string, error)
	InsertFunc   func(ctx context.Context, h domain.ApprovalHistory) (domain.ApprovalHistory, error)
}

func (m *mockSubscriptionRepo) Pending(context.Context, workflow.Definition, workflow.Stage) ([]domain.Subscription, error) {
	return nil, nil
}

func (m *mockSubscriptionRepo) History(context.Context, workflow.Definition, workflow.Stage) ([]domain.Subscription, error) {
	return nil, nil
}

func (m *mockSubscriptionRepo) Complete(ctx context.Context, def workflow.Definition, stage workflow.Stage, id string, at time.Time, fields map[string]any) (domain.Subscription, error) {
	return m.CompleteFunc(ctx, def, stage, id, at, fields)
}

func (m *mockSubscriptionRepo) CompleteMany(context.Context, workflow.Definition, workflow.Stage, []string, time.Time) ([]domain.Subscription, error) {
	return nil, nil
}

func (m *mockSubscriptionRepo) List(ctx context.Context, subscriber string) ([]domain.Subscription, error) {
	return m.ListFunc(ctx, subscriber)
}

func (m *mockSubscriptionRepo) SubscriberNames(context.Context) ([]string, error) { return nil, nil }

func (m *mockSubscriptionRepo) ApprovalHistory(context.Context) ([]domain.ApprovalHistory, error) {
	return nil, nil
}

func (m *mockSubscriptionRepo) LatestApprovalNo(ctx context.Context) (string, error) {
	if m.LatestFunc == nil {
		return "", nil
	}
	return m.LatestFunc(ctx)
}

func (m *mockSubscriptionRepo) InsertApprovalHistory(ctx context.Context, h domain.ApprovalHistory) (domain.ApprovalHistory, error) {
	return m.InsertFunc(ctx, h)
}
