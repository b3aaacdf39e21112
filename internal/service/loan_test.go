package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/punchamoorthee/backoffice/internal/domain"
	"github.com/punchamoorthee/backoffice/internal/models"
)

func TestForeclosureEligibleExcludesRequestedLoans(t *testing.T) {
	past := time.Now().AddDate(0, -1, 0)
	repo := &mockLoanRepo{
		DueForForeclosureFunc: func(context.Context, time.Time) ([]domain.Loan, error) {
			return []domain.Loan{
				{ID: 1, LoanName: "car", BankName: "hdfc", LoanEndDate: &past},
				{ID: 2, LoanName: "home", BankName: "sbi", LoanEndDate: &past},
				{ID: 3, LoanName: "car", BankName: "icici", LoanEndDate: &past},
			}, nil
		},
		ForeclosureRequestsFunc: func(context.Context) ([]domain.ForeclosureRequest, error) {
			return []domain.ForeclosureRequest{{SerialNo: "SN-1", LoanName: "car", BankName: "hdfc"}}, nil
		},
	}
	svc := NewLoanService(repo, nil, zap.NewNop())

	loans, err := svc.ForeclosureEligible(context.Background())
	require.NoError(t, err)

	ids := make([]int64, 0, len(loans))
	for _, l := range loans {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []int64{2, 3}, ids)
}

func TestForeclosureEligibleQueriesToday(t *testing.T) {
	var day time.Time
	repo := &mockLoanRepo{
		DueForForeclosureFunc: func(_ context.Context, d time.Time) ([]domain.Loan, error) {
			day = d
			return nil, nil
		},
		ForeclosureRequestsFunc: func(context.Context) ([]domain.ForeclosureRequest, error) { return nil, nil },
	}
	svc := NewLoanService(repo, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 5, 4, 17, 30, 0, 0, time.UTC) }

	_, err := svc.ForeclosureEligible(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), day)
}

func TestPendingNOC(t *testing.T) {
	repo := &mockLoanRepo{
		ForeclosureRequestsFunc: func(context.Context) ([]domain.ForeclosureRequest, error) {
			return []domain.ForeclosureRequest{{SerialNo: "SN-3"}, {SerialNo: "SN-2"}, {SerialNo: "SN-1"}}, nil
		},
		NOCsFunc: func(_ context.Context, collected *bool) ([]domain.NOC, error) {
			assert.Nil(t, collected)
			return []domain.NOC{
				{SerialNo: "SN-1", CollectNOC: true},
				{SerialNo: "SN-2", CollectNOC: false},
			}, nil
		},
	}
	svc := NewLoanService(repo, nil, zap.NewNop())

	pending, err := svc.PendingNOC(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "SN-3", pending[0].SerialNo)
	assert.Equal(t, "SN-2", pending[1].SerialNo)
}

func TestRequestForeclosureDefaultsDate(t *testing.T) {
	var stored domain.ForeclosureRequest
	repo := &mockLoanRepo{
		CreateForeclosureFunc: func(_ context.Context, r domain.ForeclosureRequest) (domain.ForeclosureRequest, error) {
			stored = r
			return r, nil
		},
	}
	svc := NewLoanService(repo, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC) }

	_, err := svc.RequestForeclosure(context.Background(), models.ForeclosureRequestInput{SerialNo: "SN-1", LoanName: "car", BankName: "hdfc"})
	require.NoError(t, err)
	require.NotNil(t, stored.RequestDate)
	assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), *stored.RequestDate)

	_, err = svc.RequestForeclosure(context.Background(), models.ForeclosureRequestInput{SerialNo: "SN-1"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpsertNOCRequiresSerial(t *testing.T) {
	svc := NewLoanService(&mockLoanRepo{}, nil, zap.NewNop())
	_, err := svc.UpsertNOC(context.Background(), models.NOCRequest{CollectNOC: true})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateLoanUploadFailureIsNonFatal(t *testing.T) {
	var stored domain.Loan
	repo := &mockLoanRepo{
		CreateFunc: func(_ context.Context, l domain.Loan) (domain.Loan, error) {
			stored = l
			return l, nil
		},
	}
	uploader := &mockUploader{PutFunc: func(context.Context, []byte, string, string) (string, error) {
		return "", errors.New("s3 down")
	}}
	svc := NewLoanService(repo, uploader, zap.NewNop())

	_, err := svc.Create(context.Background(), models.CreateLoanRequest{
		LoanName: "car", BankName: "hdfc", UploadDocument: ptr("data:application/pdf;base64,aGVsbG8="),
	})
	require.NoError(t, err)
	assert.Nil(t, stored.UploadDocument)
}

func TestCreateLoanUploadsInlineDocument(t *testing.T) {
	var stored domain.Loan
	repo := &mockLoanRepo{
		CreateFunc: func(_ context.Context, l domain.Loan) (domain.Loan, error) {
			stored = l
			return l, nil
		},
	}
	var gotType string
	uploader := &mockUploader{PutFunc: func(_ context.Context, _ []byte, contentType, key string) (string, error) {
		gotType = contentType
		return "https://bucket/" + key, nil
	}}
	svc := NewLoanService(repo, uploader, zap.NewNop())

	_, err := svc.Create(context.Background(), models.CreateLoanRequest{
		LoanName: "car", BankName: "hdfc", UploadDocument: ptr("data:application/pdf;base64,aGVsbG8="),
	})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", gotType)
	require.NotNil(t, stored.UploadDocument)
	assert.Contains(t, *stored.UploadDocument, "https://bucket/documents/")

	_, err = svc.Create(context.Background(), models.CreateLoanRequest{
		LoanName: "car", BankName: "hdfc", UploadDocument: ptr("https://already/stored.pdf"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://already/stored.pdf", *stored.UploadDocument)
}

func TestDeleteLoanIsSoft(t *testing.T) {
	var deleted int64
	repo := &mockLoanRepo{SoftDeleteFunc: func(_ context.Context, id int64) (domain.Loan, error) {
		deleted = id
		return domain.Loan{ID: id, IsDeleted: true}, nil
	}}
	svc := NewLoanService(repo, nil, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), "12"))
	assert.Equal(t, int64(12), deleted)
	assert.ErrorIs(t, svc.Delete(context.Background(), "abc"), domain.ErrValidation)
}
