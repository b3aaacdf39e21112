package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/punchamoorthee/backoffice/internal/domain"
)

// SubscriptionColumns is the read projection of subscription.
var SubscriptionColumns = []string{
	"id", "subscription_no", "subscriber_name", "subscription_name", "price", "frequency",
	"planned_2", "actual_2", "approval_status", "created_at", "updated_at",
}

// SubscriptionStore persists subscriptions and their approval history. The
// embedded StageStore serves the approval stage.
type SubscriptionStore struct {
	*StageStore[domain.Subscription]
	db *pgxpool.Pool
}

func NewSubscriptionStore(db *pgxpool.Pool) *SubscriptionStore {
	return &SubscriptionStore{StageStore: NewStageStore[domain.Subscription](db), db: db}
}

// List returns subscriptions newest first. An empty subscriber returns all.
func (s *SubscriptionStore) List(ctx context.Context, subscriber string) ([]domain.Subscription, error) {
	q := fmt.Sprintf(`SELECT %s FROM subscription
	WHERE ($1 = '' OR subscriber_name = $1)
	ORDER BY id DESC`, columnList(SubscriptionColumns))
	rows, err := s.db.Query(ctx, q, subscriber)
	return collect[domain.Subscription]("list subscriptions", rows, err)
}

func (s *SubscriptionStore) SubscriberNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT DISTINCT subscriber_name FROM subscription
		WHERE subscriber_name IS NOT NULL AND subscriber_name <> ''
		ORDER BY subscriber_name ASC`)
	if err != nil {
		return nil, classify("list subscriber names", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, classify("list subscriber names", err)
	}
	return names, nil
}

func (s *SubscriptionStore) ApprovalHistory(ctx context.Context) ([]domain.ApprovalHistory, error) {
	rows, err := s.db.Query(ctx, `SELECT
		ah.id, ah.approval_no, ah.subscription_no, ah.approval_status AS approval,
		ah.note, ah.approved_by, ah.requested_on, s.subscriber_name
	FROM approval_history ah
	LEFT JOIN subscription s ON ah.subscription_no = s.subscription_no
	ORDER BY ah.id DESC`)
	return collect[domain.ApprovalHistory]("list approval history", rows, err)
}

// LatestApprovalNo returns the newest approval_no in APG-<digits> form, or ""
// when none exists.
func (s *SubscriptionStore) LatestApprovalNo(ctx context.Context) (string, error) {
	var latest string
	err := s.db.QueryRow(ctx, `SELECT approval_no FROM approval_history WHERE approval_no ~ '^APG-[0-9]+$' ORDER BY id DESC LIMIT 1`).Scan(&latest)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", classify("latest approval no", err)
	}
	return latest, nil
}

func (s *SubscriptionStore) InsertApprovalHistory(ctx context.Context, h domain.ApprovalHistory) (domain.ApprovalHistory, error) {
	rows, err := s.db.Query(ctx, `WITH inserted AS (
		INSERT INTO approval_history (approval_no, subscription_no, approval_status, note, approved_by, requested_on)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, approval_no, subscription_no, approval_status, note, approved_by, requested_on
	)
	SELECT i.id, i.approval_no, i.subscription_no, i.approval_status AS approval,
		i.note, i.approved_by, i.requested_on, s.subscriber_name
	FROM inserted i
	LEFT JOIN subscription s ON i.subscription_no = s.subscription_no`,
		h.ApprovalNo, h.SubscriptionNo, h.Approval, h.Note, h.ApprovedBy, h.RequestedOn)
	return collectOne[domain.ApprovalHistory]("insert approval history", rows, err)
}
