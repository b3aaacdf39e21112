package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/punchamoorthee/backoffice/internal/domain"
	"github.com/punchamoorthee/backoffice/internal/models"
)

var (
	loanColumns = []string{
		"id", "loan_name", "bank_name", "amount", "emi", "loan_start_date", "loan_end_date",
		"provided_document_name", "upload_document", "remarks", "is_deleted", "created_at",
	}
	foreclosureColumns = []string{
		"id", "serial_no", "loan_name", "bank_name", "amount", "emi", "loan_start_date",
		"loan_end_date", "request_date", "requester_name", "created_at",
	}
	nocColumns = []string{
		"id", "serial_no", "loan_name", "bank_name", "loan_start_date", "loan_end_date",
		"closure_request_date", "collect_noc", "created_at",
	}
)

// LoanStore persists all_loans, request_forclosure and collect_noc.
type LoanStore struct {
	db *pgxpool.Pool
}

func NewLoanStore(db *pgxpool.Pool) *LoanStore {
	return &LoanStore{db: db}
}

func (s *LoanStore) Create(ctx context.Context, l domain.Loan) (domain.Loan, error) {
	q := fmt.Sprintf(`INSERT INTO all_loans (
		loan_name, bank_name, amount, emi, loan_start_date, loan_end_date,
		provided_document_name, upload_document, remarks
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING %s`, columnList(loanColumns))

	rows, err := s.db.Query(ctx, q,
		l.LoanName, l.BankName, l.Amount, l.EMI, l.LoanStartDate, l.LoanEndDate,
		l.ProvidedDocumentName, l.UploadDocument, l.Remarks,
	)
	return collectOne[domain.Loan]("create loan", rows, err)
}

func (s *LoanStore) List(ctx context.Context) ([]domain.Loan, error) {
	q := fmt.Sprintf("SELECT %s FROM all_loans WHERE is_deleted = FALSE ORDER BY created_at DESC", columnList(loanColumns))
	rows, err := s.db.Query(ctx, q)
	return collect[domain.Loan]("list loans", rows, err)
}

func (s *LoanStore) Get(ctx context.Context, id int64) (domain.Loan, error) {
	q := fmt.Sprintf("SELECT %s FROM all_loans WHERE id = $1 AND is_deleted = FALSE", columnList(loanColumns))
	rows, err := s.db.Query(ctx, q, id)
	return collectOne[domain.Loan]("get loan", rows, err)
}

func (s *LoanStore) Update(ctx context.Context, id int64, req models.UpdateLoanRequest) (domain.Loan, error) {
	q := fmt.Sprintf(`UPDATE all_loans SET
		loan_name = COALESCE($1, loan_name),
		bank_name = COALESCE($2, bank_name),
		amount = COALESCE($3, amount),
		emi = COALESCE($4, emi),
		loan_start_date = COALESCE($5, loan_start_date),
		loan_end_date = COALESCE($6, loan_end_date),
		provided_document_name = COALESCE($7, provided_document_name),
		upload_document = COALESCE($8, upload_document),
		remarks = COALESCE($9, remarks)
	WHERE id = $10 AND is_deleted = FALSE
	RETURNING %s`, columnList(loanColumns))

	rows, err := s.db.Query(ctx, q,
		req.LoanName, req.BankName, req.Amount, req.EMI,
		models.TimePtr(req.LoanStartDate), models.TimePtr(req.LoanEndDate),
		req.ProvidedDocumentName, req.UploadDocument, req.Remarks, id,
	)
	return collectOne[domain.Loan]("update loan", rows, err)
}

// SoftDelete flags the loan deleted. The row stays in the table.
func (s *LoanStore) SoftDelete(ctx context.Context, id int64) (domain.Loan, error) {
	q := fmt.Sprintf("UPDATE all_loans SET is_deleted = TRUE WHERE id = $1 AND is_deleted = FALSE RETURNING %s", columnList(loanColumns))
	rows, err := s.db.Query(ctx, q, id)
	return collectOne[domain.Loan]("delete loan", rows, err)
}

// DueForForeclosure lists live loans ending on or before day, earliest first.
// Loans that already have a foreclosure request are filtered by the caller.
// loan_end_date is a DATE, so the session TimeZone does not move the cutoff.
func (s *LoanStore) DueForForeclosure(ctx context.Context, day time.Time) ([]domain.Loan, error) {
	q := fmt.Sprintf(`SELECT %s FROM all_loans
	WHERE is_deleted = FALSE AND loan_end_date <= $1::date
	ORDER BY loan_end_date ASC`, columnList(loanColumns))
	rows, err := s.db.Query(ctx, q, day.Format(time.DateOnly))
	return collect[domain.Loan]("list loans due", rows, err)
}

func (s *LoanStore) CreateForeclosure(ctx context.Context, r domain.ForeclosureRequest) (domain.ForeclosureRequest, error) {
	q := fmt.Sprintf(`INSERT INTO request_forclosure (
		serial_no, loan_name, bank_name, amount, emi, loan_start_date, loan_end_date,
		request_date, requester_name
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING %s`, columnList(foreclosureColumns))

	rows, err := s.db.Query(ctx, q,
		r.SerialNo, r.LoanName, r.BankName, r.Amount, r.EMI, r.LoanStartDate, r.LoanEndDate,
		r.RequestDate, r.RequesterName,
	)
	return collectOne[domain.ForeclosureRequest]("create foreclosure request", rows, err)
}

// ForeclosureRequests lists every request, newest first.
func (s *LoanStore) ForeclosureRequests(ctx context.Context) ([]domain.ForeclosureRequest, error) {
	q := fmt.Sprintf("SELECT %s FROM request_forclosure ORDER BY created_at DESC", columnList(foreclosureColumns))
	rows, err := s.db.Query(ctx, q)
	return collect[domain.ForeclosureRequest]("list foreclosure requests", rows, err)
}

// UpsertNOC inserts the NOC row for n.SerialNo or, when one exists, updates
// only its collect_noc flag. It is a single statement against the unique
// serial_no index, so concurrent callers cannot create two rows.
func (s *LoanStore) UpsertNOC(ctx context.Context, n domain.NOC) (domain.NOC, error) {
	q := fmt.Sprintf(`INSERT INTO collect_noc (
		serial_no, loan_name, bank_name, loan_start_date, loan_end_date,
		closure_request_date, collect_noc
	) VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (serial_no) DO UPDATE SET collect_noc = EXCLUDED.collect_noc
	RETURNING %s`, columnList(nocColumns))

	rows, err := s.db.Query(ctx, q,
		n.SerialNo, n.LoanName, n.BankName, n.LoanStartDate, n.LoanEndDate,
		n.ClosureRequestDate, n.CollectNOC,
	)
	return collectOne[domain.NOC]("upsert noc", rows, err)
}

// NOCs lists NOC rows newest first. A nil collected returns every row.
func (s *LoanStore) NOCs(ctx context.Context, collected *bool) ([]domain.NOC, error) {
	q := fmt.Sprintf("SELECT %s FROM collect_noc WHERE ($1::boolean IS NULL OR collect_noc = $1) ORDER BY created_at DESC", columnList(nocColumns))
	rows, err := s.db.Query(ctx, q, collected)
	return collect[domain.NOC]("list noc", rows, err)
}
