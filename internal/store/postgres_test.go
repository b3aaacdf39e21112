package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/punchamoorthee/backoffice/internal/domain"
	"github.com/punchamoorthee/backoffice/internal/workflow"
)

// testPool connects to TEST_DB_SOURCE, migrates and empties the schema.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	source := os.Getenv("TEST_DB_SOURCE")
	if source == "" {
		t.Skip("TEST_DB_SOURCE not set")
	}

	ctx := context.Background()
	pool, err := NewPool(ctx, source)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool, zap.NewNop()))
	_, err = pool.Exec(ctx, `TRUNCATE payment_fms, all_loans, request_forclosure, collect_noc,
		documents, master, subscription, approval_history, users RESTART IDENTITY`)
	require.NoError(t, err)
	return pool
}

func strPtr(s string) *string { return &s }

func TestPaymentStagesAgainstPostgres(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	s := NewPaymentStore(pool)

	def := workflow.Definition{
		Name: "payment_fms", Table: "payment_fms", Key: "id", KeyType: "uuid",
		CreatedColumn: "created_at", Columns: PaymentColumns,
		Stages: []workflow.Stage{{Name: "approval", Planned: "planned1", Actual: "actual1", SideEffects: []string{"status"}}},
	}

	now := time.Now().UTC()
	p, err := s.Create(ctx, domain.PaymentFMS{UniqueNo: "REQ-0001", FMSName: "rent", PayTo: "landlord", Amount: 10, Planned1: &now, Status: "Pending"})
	require.NoError(t, err)

	latest, err := s.LatestUniqueNo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "REQ-0001", latest)

	pending, err := s.Pending(ctx, def, def.Stages[0])
	require.NoError(t, err)
	require.Len(t, pending, 1)

	done, err := s.Complete(ctx, def, def.Stages[0], p.ID.String(), now, map[string]any{"status": "Approved"})
	require.NoError(t, err)
	assert.Equal(t, "Approved", done.Status)
	require.NotNil(t, done.Actual1)

	history, err := s.History(ctx, def, def.Stages[0])
	require.NoError(t, err)
	require.Len(t, history, 1)

	_, err = s.Create(ctx, domain.PaymentFMS{UniqueNo: "REQ-0001", FMSName: "dup", PayTo: "x", Status: "Pending"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	updated, err := s.CompleteMany(ctx, def, def.Stages[0], []string{p.ID.String(), "00000000-0000-0000-0000-000000000000"}, now)
	require.NoError(t, err)
	assert.Len(t, updated, 1)
}

func TestNOCUpsertKeepsOneRow(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	s := NewLoanStore(pool)

	_, err := s.UpsertNOC(ctx, domain.NOC{SerialNo: "SN-1", LoanName: strPtr("car"), BankName: strPtr("hdfc")})
	require.NoError(t, err)
	second, err := s.UpsertNOC(ctx, domain.NOC{SerialNo: "SN-1", CollectNOC: true})
	require.NoError(t, err)

	assert.True(t, second.CollectNOC)
	require.NotNil(t, second.LoanName)
	assert.Equal(t, "car", *second.LoanName)

	all, err := s.NOCs(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	collected := false
	pending, err := s.NOCs(ctx, &collected)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestLoanSoftDelete(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	s := NewLoanStore(pool)

	end := time.Now().AddDate(0, 0, -1)
	loan, err := s.Create(ctx, domain.Loan{LoanName: "car", BankName: "hdfc", LoanEndDate: &end})
	require.NoError(t, err)

	due, err := s.DueForForeclosure(ctx, time.Now())
	require.NoError(t, err)
	assert.Len(t, due, 1)

	_, err = s.SoftDelete(ctx, loan.ID)
	require.NoError(t, err)

	_, err = s.Get(ctx, loan.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	due, err = s.DueForForeclosure(ctx, time.Now())
	require.NoError(t, err)
	assert.Empty(t, due)

	var count int
	require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM all_loans").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestDueForForeclosureIgnoresSessionTimeZone(t *testing.T) {
	testPool(t)
	ctx := context.Background()

	config, err := pgxpool.ParseConfig(os.Getenv("TEST_DB_SOURCE"))
	require.NoError(t, err)
	config.ConnConfig.RuntimeParams["timezone"] = "Asia/Kolkata"
	pool, err := pgxpool.NewWithConfig(ctx, config)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	s := NewLoanStore(pool)

	today := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)
	_, err = s.Create(ctx, domain.Loan{LoanName: "car", BankName: "hdfc", LoanEndDate: &today})
	require.NoError(t, err)
	_, err = s.Create(ctx, domain.Loan{LoanName: "home", BankName: "sbi", LoanEndDate: &tomorrow})
	require.NoError(t, err)

	due, err := s.DueForForeclosure(ctx, today)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "car", due[0].LoanName)
	require.NotNil(t, due[0].LoanEndDate)
	assert.Equal(t, "2026-10-15", due[0].LoanEndDate.Format(time.DateOnly))
}

func TestLatestSequenceNumbersSkipForeignValues(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	payments := NewPaymentStore(pool)
	subs := NewSubscriptionStore(pool)

	for _, no := range []string{"REQ-0004", "INV-7"} {
		_, err := payments.Create(ctx, domain.PaymentFMS{UniqueNo: no, FMSName: "rent", PayTo: "landlord", Status: "Pending"})
		require.NoError(t, err)
	}
	latest, err := payments.LatestUniqueNo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "REQ-0004", latest)

	for _, no := range []string{"APG-0009", "manual"} {
		_, err := subs.InsertApprovalHistory(ctx, domain.ApprovalHistory{ApprovalNo: no, SubscriptionNo: "SUB-0001", Approval: "Approved"})
		require.NoError(t, err)
	}
	latest, err = subs.LatestApprovalNo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "APG-0009", latest)
}

func TestFindUserWarnsOnMalformedAccess(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	s := NewUserStore(pool, zap.New(core))

	_, err := pool.Exec(ctx, `INSERT INTO users (user_name, password, subscription_access_system)
		VALUES ('asha', 'pw', '"payment"'::jsonb)`)
	require.NoError(t, err)

	u, err := s.FindByUsername(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, "asha", u.Username)
	assert.Nil(t, u.Access.Systems)
	require.Equal(t, 1, logs.FilterMessage("ignoring malformed access settings").Len())
}

func TestDocumentSoftDeleteExcludedFromReads(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	s := NewDocumentStore(pool)

	docs, err := s.CreateMany(ctx, []domain.Document{
		{DocumentName: "pan", Category: strPtr("Personal"), NeedRenewal: "yes"},
		{DocumentName: "gst", Category: strPtr("Company"), NeedRenewal: "no"},
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)

	_, err = s.SoftDelete(ctx, docs[0].DocumentID)
	require.NoError(t, err)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	personal, err := s.ByCategory(ctx, "Personal")
	require.NoError(t, err)
	assert.Empty(t, personal)

	renewal, err := s.NeedingRenewal(ctx)
	require.NoError(t, err)
	assert.Empty(t, renewal)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.Company)

	var count int
	require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM documents").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestMasterDeleteMissing(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	s := NewMasterStore(pool)

	_, err := s.Create(ctx, domain.MasterRecord{CompanyName: "Acme", DocumentType: "PAN", Category: "Company"})
	require.NoError(t, err)

	records, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].ID)

	assert.ErrorIs(t, s.Delete(ctx, "Acme", "GST", "Company"), domain.ErrNotFound)
	assert.NoError(t, s.Delete(ctx, "Acme", "PAN", "Company"))
}
