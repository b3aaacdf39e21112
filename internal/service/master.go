package service

import (
	"context"

	"github.com/punchamoorthee/backoffice/internal/domain"
	"github.com/punchamoorthee/backoffice/internal/models"
)

type MasterRepository interface {
	List(ctx context.Context) ([]domain.MasterRecord, error)
	CompanyNames(ctx context.Context) ([]string, error)
	DocumentTypes(ctx context.Context) ([]string, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, m domain.MasterRecord) (domain.MasterRecord, error)
	Delete(ctx context.Context, companyName, documentType, category string) error
}

type MasterService struct {
	repo MasterRepository
}

func NewMasterService(repo MasterRepository) *MasterService {
	return &MasterService{repo: repo}
}

func (s *MasterService) List(ctx context.Context) ([]domain.MasterRecord, error) {
	return s.repo.List(ctx)
}

func (s *MasterService) CompanyNames(ctx context.Context) ([]string, error) {
	return s.repo.CompanyNames(ctx)
}

func (s *MasterService) DocumentTypes(ctx context.Context) ([]string, error) {
	return s.repo.DocumentTypes(ctx)
}

func (s *MasterService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *MasterService) Create(ctx context.Context, req models.MasterRequest) (domain.MasterRecord, error) {
	if req.CompanyName == "" && req.DocumentType == "" && req.Category == "" {
		return domain.MasterRecord{}, invalid("at least one of company_name, document_type, or category is required")
	}
	return s.repo.Create(ctx, domain.MasterRecord{
		CompanyName:   req.CompanyName,
		DocumentType:  req.DocumentType,
		Category:      req.Category,
		RenewalFilter: req.RenewalFilter,
	})
}

// Delete removes rows by their full compound key.
func (s *MasterService) Delete(ctx context.Context, req models.MasterRequest) error {
	if req.CompanyName == "" || req.DocumentType == "" || req.Category == "" {
		return invalid("company_name, document_type, and category are required")
	}
	return s.repo.Delete(ctx, req.CompanyName, req.DocumentType, req.Category)
}
