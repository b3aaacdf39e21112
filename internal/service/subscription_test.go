package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/punchamoorthee/backoffice/internal/auth"
	"github.com/punchamoorthee/backoffice/internal/domain"
	"github.com/punchamoorthee/backoffice/internal/models"
	"github.com/punchamoorthee/backoffice/internal/workflow"
)

func TestApproveSubscription(t *testing.T) {
	var fields map[string]any
	var stored domain.ApprovalHistory
	repo := &mockSubscriptionRepo{
		CompleteFunc: func(_ context.Context, _ workflow.Definition, stage workflow.Stage, id string, at time.Time, f map[string]any) (domain.Subscription, error) {
			assert.Equal(t, "actual_2", stage.Actual)
			assert.Equal(t, "SUB-7", id)
			fields = f
			return domain.Subscription{SubscriptionNo: id, Actual2: &at}, nil
		},
		LatestFunc: func(context.Context) (string, error) { return "APG-0009", nil },
		InsertFunc: func(_ context.Context, h domain.ApprovalHistory) (domain.ApprovalHistory, error) {
			stored = h
			return h, nil
		},
	}
	svc := NewSubscriptionService(repo, zap.NewNop())

	h, err := svc.Approve(context.Background(), models.SubscriptionApprovalRequest{SubscriptionNo: "SUB-7", Approval: "Approved", Note: ptr("fine")}, "Asha")
	require.NoError(t, err)

	assert.Equal(t, "Approved", fields["approval_status"])
	assert.Contains(t, fields, "updated_at")
	assert.Equal(t, "APG-0010", h.ApprovalNo)
	require.NotNil(t, stored.ApprovedBy)
	assert.Equal(t, "Asha", *stored.ApprovedBy)
}

func TestApproveSubscriptionNotFoundWritesNoHistory(t *testing.T) {
	inserted := false
	repo := &mockSubscriptionRepo{
		CompleteFunc: func(context.Context, workflow.Definition, workflow.Stage, string, time.Time, map[string]any) (domain.Subscription, error) {
			return domain.Subscription{}, domain.ErrNotFound
		},
		InsertFunc: func(_ context.Context, h domain.ApprovalHistory) (domain.ApprovalHistory, error) {
			inserted = true
			return h, nil
		},
	}
	svc := NewSubscriptionService(repo, zap.NewNop())

	_, err := svc.Approve(context.Background(), models.SubscriptionApprovalRequest{SubscriptionNo: "SUB-0", Approval: "Approved"}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, inserted)
}

func TestApproveSubscriptionSequenceErrorLeavesStagePending(t *testing.T) {
	completed := false
	repo := &mockSubscriptionRepo{
		CompleteFunc: func(context.Context, workflow.Definition, workflow.Stage, string, time.Time, map[string]any) (domain.Subscription, error) {
			completed = true
			return domain.Subscription{}, nil
		},
		LatestFunc: func(context.Context) (string, error) { return "APG-x", nil },
	}
	svc := NewSubscriptionService(repo, zap.NewNop())

	_, err := svc.Approve(context.Background(), models.SubscriptionApprovalRequest{SubscriptionNo: "SUB-7", Approval: "Approved"}, "")
	assert.ErrorIs(t, err, workflow.ErrMalformedSequence)
	assert.False(t, completed)
}

func TestApproveSubscriptionRedrawsTakenNumber(t *testing.T) {
	latest := "APG-0009"
	var tried []string
	repo := &mockSubscriptionRepo{
		CompleteFunc: func(_ context.Context, _ workflow.Definition, _ workflow.Stage, id string, _ time.Time, _ map[string]any) (domain.Subscription, error) {
			return domain.Subscription{SubscriptionNo: id}, nil
		},
		LatestFunc: func(context.Context) (string, error) { return latest, nil },
		InsertFunc: func(_ context.Context, h domain.ApprovalHistory) (domain.ApprovalHistory, error) {
			tried = append(tried, h.ApprovalNo)
			if h.ApprovalNo == "APG-0010" {
				// Another approval committed this number first.
				latest = "APG-0010"
				return domain.ApprovalHistory{}, domain.ErrConflict
			}
			return h, nil
		},
	}
	svc := NewSubscriptionService(repo, zap.NewNop())

	h, err := svc.Approve(context.Background(), models.SubscriptionApprovalRequest{SubscriptionNo: "SUB-7", Approval: "Approved"}, "")
	require.NoError(t, err)
	assert.Equal(t, "APG-0011", h.ApprovalNo)
	assert.Equal(t, []string{"APG-0010", "APG-0011"}, tried)
}

func TestApproveSubscriptionGivesUpAfterRepeatedConflicts(t *testing.T) {
	inserts := 0
	repo := &mockSubscriptionRepo{
		CompleteFunc: func(context.Context, workflow.Definition, workflow.Stage, string, time.Time, map[string]any) (domain.Subscription, error) {
			return domain.Subscription{}, nil
		},
		InsertFunc: func(context.Context, domain.ApprovalHistory) (domain.ApprovalHistory, error) {
			inserts++
			return domain.ApprovalHistory{}, domain.ErrConflict
		},
	}
	svc := NewSubscriptionService(repo, zap.NewNop())

	_, err := svc.Approve(context.Background(), models.SubscriptionApprovalRequest{SubscriptionNo: "SUB-7", Approval: "Approved"}, "")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, approvalNoAttempts, inserts)
}

func TestDashboardStatsScope(t *testing.T) {
	var asked []string
	repo := &mockSubscriptionRepo{ListFunc: func(_ context.Context, subscriber string) ([]domain.Subscription, error) {
		asked = append(asked, subscriber)
		return []domain.Subscription{{Price: 10.25}, {Price: 5.5}}, nil
	}}
	svc := NewSubscriptionService(repo, zap.NewNop())
	ctx := context.Background()

	stats, err := svc.Stats(ctx, &auth.Claims{Name: "Asha", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Stats.TotalSubscriptions)
	assert.InDelta(t, 15.75, stats.Stats.TotalValue, 0.001)

	_, err = svc.Stats(ctx, &auth.Claims{Name: "Ravi", Role: "employee"})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "Ravi"}, asked)
}
