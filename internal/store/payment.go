package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/punchamoorthee/backoffice/internal/domain"
	"github.com/punchamoorthee/backoffice/internal/models"
)

// PaymentColumns is the read projection of payment_fms.
var PaymentColumns = []string{
	"id", "unique_no", "fms_name", "pay_to", "amount", "remarks", "attachment",
	"planned1", "actual1", "status", "stage_remarks",
	"planned2", "actual2", "payment_type",
	"planned3", "actual3", "created_at",
}

// PaymentStore persists payment_fms rows. The embedded StageStore serves
// the approval, payment and tally stages.
type PaymentStore struct {
	*StageStore[domain.PaymentFMS]
	db *pgxpool.Pool
}

func NewPaymentStore(db *pgxpool.Pool) *PaymentStore {
	return &PaymentStore{StageStore: NewStageStore[domain.PaymentFMS](db), db: db}
}

func (s *PaymentStore) Create(ctx context.Context, p domain.PaymentFMS) (domain.PaymentFMS, error) {
	q := fmt.Sprintf(`INSERT INTO payment_fms (
		unique_no, fms_name, pay_to, amount, remarks, attachment,
		planned1, status, stage_remarks, planned2, payment_type, planned3
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING %s`, columnList(PaymentColumns))

	rows, err := s.db.Query(ctx, q,
		p.UniqueNo, p.FMSName, p.PayTo, p.Amount, p.Remarks, p.Attachment,
		p.Planned1, p.Status, p.StageRemarks, p.Planned2, p.PaymentType, p.Planned3,
	)
	return collectOne[domain.PaymentFMS]("create payment", rows, err)
}

func (s *PaymentStore) List(ctx context.Context) ([]domain.PaymentFMS, error) {
	q := fmt.Sprintf("SELECT %s FROM payment_fms ORDER BY created_at DESC", columnList(PaymentColumns))
	rows, err := s.db.Query(ctx, q)
	return collect[domain.PaymentFMS]("list payments", rows, err)
}

func (s *PaymentStore) Get(ctx context.Context, id uuid.UUID) (domain.PaymentFMS, error) {
	q := fmt.Sprintf("SELECT %s FROM payment_fms WHERE id = $1", columnList(PaymentColumns))
	rows, err := s.db.Query(ctx, q, id)
	return collectOne[domain.PaymentFMS]("get payment", rows, err)
}

// Update applies the non-nil fields of req. Stage actual columns are left
// untouched.
func (s *PaymentStore) Update(ctx context.Context, id uuid.UUID, req models.UpdatePaymentRequest) (domain.PaymentFMS, error) {
	q := fmt.Sprintf(`UPDATE payment_fms SET
		unique_no = COALESCE($1, unique_no),
		fms_name = COALESCE($2, fms_name),
		pay_to = COALESCE($3, pay_to),
		amount = COALESCE($4, amount),
		remarks = COALESCE($5, remarks),
		attachment = COALESCE($6, attachment),
		planned1 = COALESCE($7, planned1),
		status = COALESCE($8, status),
		stage_remarks = COALESCE($9, stage_remarks),
		planned2 = COALESCE($10, planned2),
		payment_type = COALESCE($11, payment_type),
		planned3 = COALESCE($12, planned3)
	WHERE id = $13
	RETURNING %s`, columnList(PaymentColumns))

	rows, err := s.db.Query(ctx, q,
		req.UniqueNo, req.FMSName, req.PayTo, req.Amount, req.Remarks, req.Attachment,
		models.TimePtr(req.Planned1), req.Status, req.StageRemarks,
		models.TimePtr(req.Planned2), req.PaymentType, models.TimePtr(req.Planned3),
		id,
	)
	return collectOne[domain.PaymentFMS]("update payment", rows, err)
}

func (s *PaymentStore) Delete(ctx context.Context, id uuid.UUID) (domain.PaymentFMS, error) {
	q := fmt.Sprintf("DELETE FROM payment_fms WHERE id = $1 RETURNING %s", columnList(PaymentColumns))
	rows, err := s.db.Query(ctx, q, id)
	return collectOne[domain.PaymentFMS]("delete payment", rows, err)
}

// LatestUniqueNo returns the newest unique_no in REQ-<digits> form, or ""
// when there is none. Rows numbered outside the sequence are skipped.
func (s *PaymentStore) LatestUniqueNo(ctx context.Context) (string, error) {
	var latest string
	err := s.db.QueryRow(ctx, `SELECT unique_no FROM payment_fms WHERE unique_no ~ '^REQ-[0-9]+$' ORDER BY created_at DESC LIMIT 1`).Scan(&latest)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", classify("latest unique no", err)
	}
	return latest, nil
}
