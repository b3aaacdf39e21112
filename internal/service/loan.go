package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/punchamoorthee/backoffice/internal/domain"
	"github.com/punchamoorthee/backoffice/internal/models"
	"github.com/punchamoorthee/backoffice/internal/objectstore"
	"github.com/punchamoorthee/backoffice/internal/workflow"
)

type LoanRepository interface {
	Create(ctx context.Context, l domain.Loan) (domain.Loan, error)
	List(ctx context.Context) ([]domain.Loan, error)
	Get(ctx context.Context, id int64) (domain.Loan, error)
	Update(ctx context.Context, id int64, req models.UpdateLoanRequest) (domain.Loan, error)
	SoftDelete(ctx context.Context, id int64) (domain.Loan, error)
	DueForForeclosure(ctx context.Context, day time.Time) ([]domain.Loan, error)
	CreateForeclosure(ctx context.Context, r domain.ForeclosureRequest) (domain.ForeclosureRequest, error)
	ForeclosureRequests(ctx context.Context) ([]domain.ForeclosureRequest, error)
	UpsertNOC(ctx context.Context, n domain.NOC) (domain.NOC, error)
	NOCs(ctx context.Context, collected *bool) ([]domain.NOC, error)
}

// The loan pipeline gates by the existence of correlated rows: a due loan
// waits for foreclosure until a request shares its (loan, bank) pair, and a
// request waits for its NOC until a collected NOC row shares its serial.
var (
	foreclosureGate = workflow.CorrelatedGate[domain.Loan, domain.ForeclosureRequest, domain.LoanKey]{
		SubjectKey:    domain.Loan.Key,
		CorrelatedKey: domain.ForeclosureRequest.Key,
	}
	nocGate = workflow.CorrelatedGate[domain.ForeclosureRequest, domain.NOC, string]{
		SubjectKey:    func(r domain.ForeclosureRequest) string { return r.SerialNo },
		CorrelatedKey: func(n domain.NOC) string { return n.SerialNo },
		Counts:        func(n domain.NOC) bool { return n.CollectNOC },
	}
)

type LoanService struct {
	repo     LoanRepository
	uploader objectstore.Uploader
	now      func() time.Time
	logger   *zap.Logger
}

func NewLoanService(repo LoanRepository, uploader objectstore.Uploader, logger *zap.Logger) *LoanService {
	return &LoanService{repo: repo, uploader: uploader, now: time.Now, logger: logger}
}

func (s *LoanService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Create stores a loan. An inline document is uploaded first; if the upload
// fails the loan is still created without it.
func (s *LoanService) Create(ctx context.Context, req models.CreateLoanRequest) (domain.Loan, error) {
	if req.LoanName == "" || req.BankName == "" {
		return domain.Loan{}, invalid("loan_name and bank_name are required")
	}
	loan := domain.Loan{
		LoanName:             req.LoanName,
		BankName:             req.BankName,
		Amount:               req.Amount,
		EMI:                  req.EMI,
		LoanStartDate:        models.TimePtr(req.LoanStartDate),
		LoanEndDate:          models.TimePtr(req.LoanEndDate),
		ProvidedDocumentName: req.ProvidedDocumentName,
		UploadDocument:       uploadInline(ctx, s.uploader, s.logger, req.UploadDocument, deref(req.ProvidedDocumentName), s.now()),
		Remarks:              req.Remarks,
	}
	return s.repo.Create(ctx, loan)
}

func (s *LoanService) List(ctx context.Context) ([]domain.Loan, error) {
	return s.repo.List(ctx)
}

func (s *LoanService) Get(ctx context.Context, rawID string) (domain.Loan, error) {
	id, err := parseInt64(rawID)
	if err != nil {
		return domain.Loan{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *LoanService) Update(ctx context.Context, rawID string, req models.UpdateLoanRequest) (domain.Loan, error) {
	id, err := parseInt64(rawID)
	if err != nil {
		return domain.Loan{}, err
	}
	if req.UploadDocument != nil && objectstore.IsDataURL(*req.UploadDocument) {
		req.UploadDocument = uploadInline(ctx, s.uploader, s.logger, req.UploadDocument, deref(req.ProvidedDocumentName), s.now())
	}
	return s.repo.Update(ctx, id, req)
}

func (s *LoanService) Delete(ctx context.Context, rawID string) error {
	id, err := parseInt64(rawID)
	if err != nil {
		return err
	}
	_, err = s.repo.SoftDelete(ctx, id)
	return err
}

// ForeclosureEligible lists due loans with no foreclosure request yet,
// earliest end date first.
func (s *LoanService) ForeclosureEligible(ctx context.Context) ([]domain.Loan, error) {
	due, err := s.repo.DueForForeclosure(ctx, s.today())
	if err != nil {
		return nil, err
	}
	requests, err := s.repo.ForeclosureRequests(ctx)
	if err != nil {
		return nil, err
	}
	return foreclosureGate.Pending(due, requests), nil
}

func (s *LoanService) RequestForeclosure(ctx context.Context, req models.ForeclosureRequestInput) (domain.ForeclosureRequest, error) {
	if req.SerialNo == "" || req.LoanName == "" || req.BankName == "" {
		return domain.ForeclosureRequest{}, invalid("serial_no, loan_name and bank_name are required")
	}
	requestDate := models.TimePtr(req.RequestDate)
	if requestDate == nil {
		today := s.today()
		requestDate = &today
	}
	return s.repo.CreateForeclosure(ctx, domain.ForeclosureRequest{
		SerialNo:      req.SerialNo,
		LoanName:      req.LoanName,
		BankName:      req.BankName,
		Amount:        req.Amount,
		EMI:           req.EMI,
		LoanStartDate: models.TimePtr(req.LoanStartDate),
		LoanEndDate:   models.TimePtr(req.LoanEndDate),
		RequestDate:   requestDate,
		RequesterName: req.RequesterName,
	})
}

func (s *LoanService) ForeclosureHistory(ctx context.Context) ([]domain.ForeclosureRequest, error) {
	return s.repo.ForeclosureRequests(ctx)
}

// PendingNOC lists foreclosure requests whose NOC has not been collected,
// newest first.
func (s *LoanService) PendingNOC(ctx context.Context) ([]domain.ForeclosureRequest, error) {
	requests, err := s.repo.ForeclosureRequests(ctx)
	if err != nil {
		return nil, err
	}
	nocs, err := s.repo.NOCs(ctx, nil)
	if err != nil {
		return nil, err
	}
	return nocGate.Pending(requests, nocs), nil
}

// UpsertNOC creates the NOC row for a serial number or, if it exists,
// updates only its collected flag.
func (s *LoanService) UpsertNOC(ctx context.Context, req models.NOCRequest) (domain.NOC, error) {
	if req.SerialNo == "" {
		return domain.NOC{}, invalid("serial_no is required")
	}
	return s.repo.UpsertNOC(ctx, domain.NOC{
		SerialNo:           req.SerialNo,
		LoanName:           req.LoanName,
		BankName:           req.BankName,
		LoanStartDate:      models.TimePtr(req.LoanStartDate),
		LoanEndDate:        models.TimePtr(req.LoanEndDate),
		ClosureRequestDate: models.TimePtr(req.ClosureRequestDate),
		CollectNOC:         req.CollectNOC,
	})
}

// NOCs lists NOC rows. A nil collected returns all of them.
func (s *LoanService) NOCs(ctx context.Context, collected *bool) ([]domain.NOC, error) {
	return s.repo.NOCs(ctx, collected)
}

// uploadInline replaces an inline data URL with its stored URL. Values that
// are not data URLs pass through. Upload failures are logged and yield nil.
func uploadInline(ctx context.Context, u objectstore.Uploader, logger *zap.Logger, value *string, name string, at time.Time) *string {
	if value == nil || !objectstore.IsDataURL(*value) {
		return value
	}
	if u == nil {
		logger.Warn("inline upload dropped: object storage not configured", zap.String("name", name))
		return nil
	}
	url, err := objectstore.UploadDataURL(ctx, u, *value, name, at)
	if err != nil {
		logger.Warn("inline upload failed, storing record without it", zap.String("name", name), zap.Error(err))
		return nil
	}
	return &url
}
