package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/punchamoorthee/backoffice/internal/domain"
	"github.com/punchamoorthee/backoffice/internal/models"
	"github.com/punchamoorthee/backoffice/internal/store"
	"github.com/punchamoorthee/backoffice/internal/workflow"
)

// Payment-FMS stage indices.
const (
	StageApproval = iota
	StageMakePayment
	StageTallyEntry
)

const defaultPaymentStatus = "Pending"

// PaymentWorkflow maps payment_fms onto approval, make-payment and tally
// entry.
func PaymentWorkflow() workflow.Definition {
	return workflow.Definition{
		Name:          "payment_fms",
		Table:         "payment_fms",
		Key:           "id",
		KeyType:       "uuid",
		CreatedColumn: "created_at",
		Columns:       store.PaymentColumns,
		Stages: []workflow.Stage{
			{Name: "approval", Planned: "planned1", Actual: "actual1", SideEffects: []string{"status", "stage_remarks"}},
			{Name: "make_payment", Planned: "planned2", Actual: "actual2", SideEffects: []string{"payment_type"}},
			{Name: "tally_entry", Planned: "planned3", Actual: "actual3"},
		},
	}
}

type PaymentRepository interface {
	workflow.Store[domain.PaymentFMS]
	Create(ctx context.Context, p domain.PaymentFMS) (domain.PaymentFMS, error)
	List(ctx context.Context) ([]domain.PaymentFMS, error)
	Get(ctx context.Context, id uuid.UUID) (domain.PaymentFMS, error)
	Update(ctx context.Context, id uuid.UUID, req models.UpdatePaymentRequest) (domain.PaymentFMS, error)
	Delete(ctx context.Context, id uuid.UUID) (domain.PaymentFMS, error)
	LatestUniqueNo(ctx context.Context) (string, error)
}

type PaymentService struct {
	repo   PaymentRepository
	engine *workflow.Engine[domain.PaymentFMS]
	seq    workflow.Sequencer
	now    func() time.Time
}

func NewPaymentService(repo PaymentRepository, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		repo:   repo,
		engine: workflow.NewEngine[domain.PaymentFMS](PaymentWorkflow(), repo, logger),
		seq:    workflow.Sequencer{Prefix: "REQ", Width: 4, Latest: repo.LatestUniqueNo},
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new request. A missing unique number is generated and a
// missing planned1 defaults to now, so every request enters approval. A
// supplied unique number must already be in REQ-<digits> form.
func (s *PaymentService) Create(ctx context.Context, req models.CreatePaymentRequest) (domain.PaymentFMS, error) {
	if req.FMSName == "" || req.PayTo == "" {
		return domain.PaymentFMS{}, invalid("fmsName and payTo are required")
	}

	uniqueNo := req.UniqueNo
	if uniqueNo != "" && !s.seq.Valid(uniqueNo) {
		return domain.PaymentFMS{}, invalid("uniqueNo %q must look like REQ-0001", uniqueNo)
	}
	if uniqueNo == "" {
		next, err := s.seq.Next(ctx)
		if err != nil {
			return domain.PaymentFMS{}, err
		}
		uniqueNo = next
	}

	planned1 := models.TimePtr(req.Planned1)
	if planned1 == nil {
		now := s.now()
		planned1 = &now
	}
	status := defaultPaymentStatus
	if req.Status != nil && *req.Status != "" {
		status = *req.Status
	}

	return s.repo.Create(ctx, domain.PaymentFMS{
		UniqueNo:     uniqueNo,
		FMSName:      req.FMSName,
		PayTo:        req.PayTo,
		Amount:       req.Amount,
		Remarks:      req.Remarks,
		Attachment:   req.Attachment,
		Planned1:     planned1,
		Status:       status,
		StageRemarks: req.StageRemarks,
		Planned2:     models.TimePtr(req.Planned2),
		PaymentType:  req.PaymentType,
		Planned3:     models.TimePtr(req.Planned3),
	})
}

func (s *PaymentService) List(ctx context.Context) ([]domain.PaymentFMS, error) {
	return s.repo.List(ctx)
}

func (s *PaymentService) Get(ctx context.Context, rawID string) (domain.PaymentFMS, error) {
	id, err := parseUUID(rawID)
	if err != nil {
		return domain.PaymentFMS{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *PaymentService) Update(ctx context.Context, rawID string, req models.UpdatePaymentRequest) (domain.PaymentFMS, error) {
	id, err := parseUUID(rawID)
	if err != nil {
		return domain.PaymentFMS{}, err
	}
	if req.UniqueNo != nil && !s.seq.Valid(*req.UniqueNo) {
		return domain.PaymentFMS{}, invalid("uniqueNo %q must look like REQ-0001", *req.UniqueNo)
	}
	return s.repo.Update(ctx, id, req)
}

func (s *PaymentService) Delete(ctx context.Context, rawID string) error {
	id, err := parseUUID(rawID)
	if err != nil {
		return err
	}
	_, err = s.repo.Delete(ctx, id)
	return err
}

// NextUniqueNo previews the number the next request would receive.
func (s *PaymentService) NextUniqueNo(ctx context.Context) (string, error) {
	return s.seq.Next(ctx)
}

func (s *PaymentService) Pending(ctx context.Context, stage int) ([]domain.PaymentFMS, error) {
	return s.engine.Pending(ctx, stage)
}

func (s *PaymentService) History(ctx context.Context, stage int) ([]domain.PaymentFMS, error) {
	return s.engine.History(ctx, stage)
}

func (s *PaymentService) Approve(ctx context.Context, rawID string, req models.ApprovalRequest) (domain.PaymentFMS, error) {
	if _, err := parseUUID(rawID); err != nil {
		return domain.PaymentFMS{}, err
	}
	if req.Status == nil || *req.Status == "" {
		return domain.PaymentFMS{}, invalid("status is required")
	}
	payload := map[string]any{"status": *req.Status}
	if req.StageRemarks != nil {
		payload["stage_remarks"] = *req.StageRemarks
	}
	return s.engine.Transition(ctx, rawID, StageApproval, payload)
}

func (s *PaymentService) MakePayment(ctx context.Context, rawID string, req models.MakePaymentRequest) (domain.PaymentFMS, error) {
	if _, err := parseUUID(rawID); err != nil {
		return domain.PaymentFMS{}, err
	}
	payload := map[string]any{}
	if req.PaymentType != nil {
		payload["payment_type"] = *req.PaymentType
	}
	return s.engine.Transition(ctx, rawID, StageMakePayment, payload)
}

// TallyEntry completes the tally stage for every id. Unknown ids are
// reported in the result rather than failing the batch.
func (s *PaymentService) TallyEntry(ctx context.Context, req models.TallyEntryRequest) (*workflow.BulkResult[domain.PaymentFMS], error) {
	ids := make([]string, 0, len(req.IDs))
	for _, raw := range req.IDs {
		if raw == "" {
			continue
		}
		id, err := parseUUID(raw)
		if err != nil {
			return nil, err
		}
		// Canonical form so results match the ids the store returns.
		ids = append(ids, id.String())
	}
	return s.engine.TransitionBulk(ctx, ids, StageTallyEntry)
}
