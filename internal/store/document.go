package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/punchamoorthee/backoffice/internal/domain"
	"github.com/punchamoorthee/backoffice/internal/models"
)

var documentColumns = []string{
	"document_id", "document_name", "document_type", "category", "company_department", "tags",
	"person_name", "need_renewal", "renewal_date", "image", "email", "mobile", "is_deleted", "created_at",
}

// DocumentStore persists documents. Every read skips soft-deleted rows.
type DocumentStore struct {
	db *pgxpool.Pool
}

func NewDocumentStore(db *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{db: db}
}

func (s *DocumentStore) insertQuery() string {
	return fmt.Sprintf(`INSERT INTO documents (
		document_name, document_type, category, company_department, tags, person_name,
		need_renewal, renewal_date, image, email, mobile
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING %s`, columnList(documentColumns))
}

func documentArgs(d domain.Document) []any {
	return []any{
		d.DocumentName, d.DocumentType, d.Category, d.CompanyDepartment, d.Tags, d.PersonName,
		d.NeedRenewal, d.RenewalDate, d.Image, d.Email, d.Mobile,
	}
}

func (s *DocumentStore) Create(ctx context.Context, d domain.Document) (domain.Document, error) {
	rows, err := s.db.Query(ctx, s.insertQuery(), documentArgs(d)...)
	return collectOne[domain.Document]("create document", rows, err)
}

// CreateMany inserts all documents in one transaction; either every row is
// stored or none is.
func (s *DocumentStore) CreateMany(ctx context.Context, docs []domain.Document) ([]domain.Document, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, classify("begin create documents", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	q := s.insertQuery()
	for _, d := range docs {
		batch.Queue(q, documentArgs(d)...)
	}

	results := tx.SendBatch(ctx, batch)
	created := make([]domain.Document, 0, len(docs))
	for range docs {
		rows, err := results.Query()
		doc, err := collectOne[domain.Document]("create documents", rows, err)
		if err != nil {
			results.Close()
			return nil, err
		}
		created = append(created, doc)
	}
	if err := results.Close(); err != nil {
		return nil, classify("create documents", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, classify("commit create documents", err)
	}
	return created, nil
}

func (s *DocumentStore) List(ctx context.Context) ([]domain.Document, error) {
	q := fmt.Sprintf("SELECT %s FROM documents WHERE is_deleted = FALSE ORDER BY created_at DESC", columnList(documentColumns))
	rows, err := s.db.Query(ctx, q)
	return collect[domain.Document]("list documents", rows, err)
}

func (s *DocumentStore) Get(ctx context.Context, id int64) (domain.Document, error) {
	q := fmt.Sprintf("SELECT %s FROM documents WHERE document_id = $1 AND is_deleted = FALSE", columnList(documentColumns))
	rows, err := s.db.Query(ctx, q, id)
	return collectOne[domain.Document]("get document", rows, err)
}

func (s *DocumentStore) Update(ctx context.Context, id int64, req models.DocumentRequest) (domain.Document, error) {
	q := fmt.Sprintf(`UPDATE documents SET
		document_name = COALESCE($1, document_name),
		document_type = COALESCE($2, document_type),
		category = COALESCE($3, category),
		company_department = COALESCE($4, company_department),
		tags = COALESCE($5, tags),
		person_name = COALESCE($6, person_name),
		need_renewal = COALESCE($7, need_renewal),
		renewal_date = COALESCE($8, renewal_date),
		image = COALESCE($9, image),
		email = COALESCE($10, email),
		mobile = COALESCE($11, mobile)
	WHERE document_id = $12 AND is_deleted = FALSE
	RETURNING %s`, columnList(documentColumns))

	rows, err := s.db.Query(ctx, q,
		req.DocumentName, req.DocumentType, req.Category, req.CompanyDepartment, req.Tags,
		req.PersonName, req.NeedRenewal, models.TimePtr(req.RenewalDate), req.Image,
		req.Email, req.Mobile, id,
	)
	return collectOne[domain.Document]("update document", rows, err)
}

func (s *DocumentStore) SoftDelete(ctx context.Context, id int64) (domain.Document, error) {
	q := fmt.Sprintf("UPDATE documents SET is_deleted = TRUE WHERE document_id = $1 AND is_deleted = FALSE RETURNING %s", columnList(documentColumns))
	rows, err := s.db.Query(ctx, q, id)
	return collectOne[domain.Document]("delete document", rows, err)
}

func (s *DocumentStore) ByCategory(ctx context.Context, category string) ([]domain.Document, error) {
	q := fmt.Sprintf("SELECT %s FROM documents WHERE category = $1 AND is_deleted = FALSE ORDER BY created_at DESC", columnList(documentColumns))
	rows, err := s.db.Query(ctx, q, category)
	return collect[domain.Document]("list documents by category", rows, err)
}

func (s *DocumentStore) NeedingRenewal(ctx context.Context) ([]domain.Document, error) {
	q := fmt.Sprintf(`SELECT %s FROM documents
	WHERE need_renewal = 'yes' AND is_deleted = FALSE
	ORDER BY renewal_date ASC`, columnList(documentColumns))
	rows, err := s.db.Query(ctx, q)
	return collect[domain.Document]("list documents needing renewal", rows, err)
}

func (s *DocumentStore) Stats(ctx context.Context) (domain.DocumentStats, error) {
	rows, err := s.db.Query(ctx, `SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE category = 'Personal') AS personal,
		COUNT(*) FILTER (WHERE category = 'Company') AS company,
		COUNT(*) FILTER (WHERE category = 'Director') AS director,
		COUNT(*) FILTER (WHERE need_renewal = 'yes') AS needs_renewal,
		COUNT(*) FILTER (WHERE created_at > NOW() - INTERVAL '7 days') AS recent
	FROM documents WHERE is_deleted = FALSE`)
	return collectOne[domain.DocumentStats]("document stats", rows, err)
}
