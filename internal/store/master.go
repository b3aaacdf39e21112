package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/punchamoorthee/backoffice/internal/domain"
)

// MasterStore reads and writes the master dropdown table.
type MasterStore struct {
	db *pgxpool.Pool
}

func NewMasterStore(db *pgxpool.Pool) *MasterStore {
	return &MasterStore{db: db}
}

// List returns every row ordered by company name, numbered from 1.
func (s *MasterStore) List(ctx context.Context) ([]domain.MasterRecord, error) {
	rows, err := s.db.Query(ctx, `SELECT company_name, document_type, category, renewal_filter
		FROM master ORDER BY company_name`)
	records, err := collect[domain.MasterRecord]("list master", rows, err)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].ID = i + 1
	}
	return records, nil
}

func (s *MasterStore) CompanyNames(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "company_name")
}

func (s *MasterStore) DocumentTypes(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "document_type")
}

func (s *MasterStore) Categories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "category")
}

func (s *MasterStore) distinct(ctx context.Context, column string) ([]string, error) {
	col := ident(column)
	rows, err := s.db.Query(ctx, fmt.Sprintf("SELECT DISTINCT %s FROM master ORDER BY %s", col, col))
	if err != nil {
		return nil, classify("list master "+column, err)
	}
	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, classify("list master "+column, err)
	}
	return values, nil
}

func (s *MasterStore) Create(ctx context.Context, m domain.MasterRecord) (domain.MasterRecord, error) {
	rows, err := s.db.Query(ctx, `INSERT INTO master (company_name, document_type, category, renewal_filter)
		VALUES ($1, $2, $3, $4)
		RETURNING company_name, document_type, category, renewal_filter`,
		m.CompanyName, m.DocumentType, m.Category, m.RenewalFilter)
	return collectOne[domain.MasterRecord]("create master", rows, err)
}

// Delete removes the rows matching the compound key. No match is
// domain.ErrNotFound.
func (s *MasterStore) Delete(ctx context.Context, companyName, documentType, category string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM master
		WHERE company_name = $1 AND document_type = $2 AND category = $3`,
		companyName, documentType, category)
	if err != nil {
		return classify("delete master", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete master: %w", domain.ErrNotFound)
	}
	return nil
}
