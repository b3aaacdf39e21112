package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/punchamoorthee/backoffice/internal/auth"
	"github.com/punchamoorthee/backoffice/internal/domain"
	"github.com/punchamoorthee/backoffice/internal/models"
	"github.com/punchamoorthee/backoffice/internal/store"
	"github.com/punchamoorthee/backoffice/internal/workflow"
)

const StageSubscriptionApproval = 0

// approvalNoAttempts bounds how often Approve redraws an APG number that a
// concurrent approval took first.
const approvalNoAttempts = 3

// SubscriptionWorkflow is the single approval stage of a subscription.
func SubscriptionWorkflow() workflow.Definition {
	return workflow.Definition{
		Name:          "subscription",
		Table:         "subscription",
		Key:           "subscription_no",
		CreatedColumn: "created_at",
		Columns:       store.SubscriptionColumns,
		Stages: []workflow.Stage{{
			Name:         "approval",
			Planned:      "planned_2",
			Actual:       "actual_2",
			SideEffects:  []string{"approval_status", "updated_at"},
			PendingOrder: `"id" DESC`,
		}},
	}
}

type SubscriptionRepository interface {
	workflow.Store[domain.Subscription]
	List(ctx context.Context, subscriber string) ([]domain.Subscription, error)
	SubscriberNames(ctx context.Context) ([]string, error)
	ApprovalHistory(ctx context.Context) ([]domain.ApprovalHistory, error)
	LatestApprovalNo(ctx context.Context) (string, error)
	InsertApprovalHistory(ctx context.Context, h domain.ApprovalHistory) (domain.ApprovalHistory, error)
}

type SubscriptionService struct {
	repo   SubscriptionRepository
	engine *workflow.Engine[domain.Subscription]
	seq    workflow.Sequencer
	now    func() time.Time
	logger *zap.Logger
}

func NewSubscriptionService(repo SubscriptionRepository, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:   repo,
		engine: workflow.NewEngine[domain.Subscription](SubscriptionWorkflow(), repo, logger),
		seq:    workflow.Sequencer{Prefix: "APG", Width: 4, Latest: repo.LatestApprovalNo},
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

func (s *SubscriptionService) All(ctx context.Context) ([]domain.Subscription, error) {
	return s.repo.List(ctx, "")
}

// Mine lists the subscriptions registered under the caller's name.
func (s *SubscriptionService) Mine(ctx context.Context, claims *auth.Claims) ([]domain.Subscription, error) {
	if claims.Name == "" {
		return []domain.Subscription{}, nil
	}
	return s.repo.List(ctx, claims.Name)
}

// Stats totals every subscription for admins and the caller's own for
// everyone else.
func (s *SubscriptionService) Stats(ctx context.Context, claims *auth.Claims) (domain.DashboardStats, error) {
	var (
		subs []domain.Subscription
		err  error
	)
	if claims.IsAdmin() {
		subs, err = s.All(ctx)
	} else {
		subs, err = s.Mine(ctx, claims)
	}
	if err != nil {
		return domain.DashboardStats{}, err
	}

	var stats domain.DashboardStats
	stats.SubscriptionSheet = subs
	total := 0.0
	for _, sub := range subs {
		total += sub.Price
	}
	stats.Stats.TotalValue = math.Round(total*100) / 100
	stats.Stats.TotalSubscriptions = len(subs)
	return stats, nil
}

func (s *SubscriptionService) SubscriberNames(ctx context.Context) ([]string, error) {
	return s.repo.SubscriberNames(ctx)
}

func (s *SubscriptionService) PendingApprovals(ctx context.Context) ([]domain.Subscription, error) {
	return s.engine.Pending(ctx, StageSubscriptionApproval)
}

// ApprovalHistory lists recorded decisions, newest first.
func (s *SubscriptionService) ApprovalHistory(ctx context.Context) ([]domain.ApprovalHistory, error) {
	return s.repo.ApprovalHistory(ctx)
}

// Approve completes the approval stage and records the decision under the
// next APG number. The number is drawn before the stage is touched, so a
// broken sequence leaves the subscription pending. The stage update and the
// history insert are separate statements: if the insert still fails after
// the stage completed, the error is logged and returned and the subscription
// stays approved without a history row.
func (s *SubscriptionService) Approve(ctx context.Context, req models.SubscriptionApprovalRequest, approvedBy string) (domain.ApprovalHistory, error) {
	if req.SubscriptionNo == "" || req.Approval == "" {
		return domain.ApprovalHistory{}, invalid("subscriptionNo and approval are required")
	}

	approvalNo, err := s.seq.Next(ctx)
	if err != nil {
		return domain.ApprovalHistory{}, err
	}

	if _, err := s.engine.Transition(ctx, req.SubscriptionNo, StageSubscriptionApproval, map[string]any{
		"approval_status": req.Approval,
		"updated_at":      s.now(),
	}); err != nil {
		return domain.ApprovalHistory{}, err
	}

	var by *string
	if approvedBy != "" {
		by = &approvedBy
	}
	entry := domain.ApprovalHistory{
		SubscriptionNo: req.SubscriptionNo,
		Approval:       req.Approval,
		Note:           req.Note,
		ApprovedBy:     by,
		RequestedOn:    models.TimePtr(req.RequestedOn),
	}
	for attempt := 1; ; attempt++ {
		entry.ApprovalNo = approvalNo
		h, err := s.repo.InsertApprovalHistory(ctx, entry)
		if err == nil {
			return h, nil
		}
		if !errors.Is(err, domain.ErrConflict) || attempt == approvalNoAttempts {
			s.logger.Error("subscription approved without history",
				zap.String("subscription_no", req.SubscriptionNo),
				zap.String("approval_no", approvalNo),
				zap.Error(err))
			return domain.ApprovalHistory{}, err
		}
		if approvalNo, err = s.seq.Next(ctx); err != nil {
			return domain.ApprovalHistory{}, err
		}
	}
}
