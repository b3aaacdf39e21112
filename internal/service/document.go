package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/punchamoorthee/backoffice/internal/domain"
	"github.com/punchamoorthee/backoffice/internal/models"
	"github.com/punchamoorthee/backoffice/internal/objectstore"
)

type DocumentRepository interface {
	Create(ctx context.Context, d domain.Document) (domain.Document, error)
	CreateMany(ctx context.Context, docs []domain.Document) ([]domain.Document, error)
	List(ctx context.Context) ([]domain.Document, error)
	Get(ctx context.Context, id int64) (domain.Document, error)
	Update(ctx context.Context, id int64, req models.DocumentRequest) (domain.Document, error)
	SoftDelete(ctx context.Context, id int64) (domain.Document, error)
	ByCategory(ctx context.Context, category string) ([]domain.Document, error)
	NeedingRenewal(ctx context.Context) ([]domain.Document, error)
	Stats(ctx context.Context) (domain.DocumentStats, error)
}

type DocumentService struct {
	repo     DocumentRepository
	uploader objectstore.Uploader
	now      func() time.Time
	logger   *zap.Logger
}

func NewDocumentService(repo DocumentRepository, uploader objectstore.Uploader, logger *zap.Logger) *DocumentService {
	return &DocumentService{repo: repo, uploader: uploader, now: time.Now, logger: logger}
}

func (s *DocumentService) build(ctx context.Context, req models.DocumentRequest) (domain.Document, error) {
	name := deref(req.DocumentName)
	if name == "" {
		return domain.Document{}, invalid("document_name is required")
	}
	needRenewal := deref(req.NeedRenewal)
	if needRenewal == "" {
		needRenewal = "no"
	}
	return domain.Document{
		DocumentName:      name,
		DocumentType:      req.DocumentType,
		Category:          req.Category,
		CompanyDepartment: req.CompanyDepartment,
		Tags:              req.Tags,
		PersonName:        req.PersonName,
		NeedRenewal:       needRenewal,
		RenewalDate:       models.TimePtr(req.RenewalDate),
		Image:             uploadInline(ctx, s.uploader, s.logger, req.Image, name, s.now()),
		Email:             req.Email,
		Mobile:            req.Mobile,
	}, nil
}

// Create stores a document. An inline image is uploaded first; if the
// upload fails the document is still created without it.
func (s *DocumentService) Create(ctx context.Context, req models.DocumentRequest) (domain.Document, error) {
	doc, err := s.build(ctx, req)
	if err != nil {
		return domain.Document{}, err
	}
	return s.repo.Create(ctx, doc)
}

func (s *DocumentService) CreateMany(ctx context.Context, req models.CreateDocumentsRequest) ([]domain.Document, error) {
	if len(req.Documents) == 0 {
		return nil, invalid("please provide an array of documents")
	}
	docs := make([]domain.Document, 0, len(req.Documents))
	for _, r := range req.Documents {
		doc, err := s.build(ctx, r)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return s.repo.CreateMany(ctx, docs)
}

func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.repo.List(ctx)
}

func (s *DocumentService) Get(ctx context.Context, rawID string) (domain.Document, error) {
	id, err := parseInt64(rawID)
	if err != nil {
		return domain.Document{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *DocumentService) Update(ctx context.Context, rawID string, req models.DocumentRequest) (domain.Document, error) {
	id, err := parseInt64(rawID)
	if err != nil {
		return domain.Document{}, err
	}
	if req.Image != nil && objectstore.IsDataURL(*req.Image) {
		req.Image = uploadInline(ctx, s.uploader, s.logger, req.Image, deref(req.DocumentName), s.now())
	}
	return s.repo.Update(ctx, id, req)
}

func (s *DocumentService) Delete(ctx context.Context, rawID string) error {
	id, err := parseInt64(rawID)
	if err != nil {
		return err
	}
	_, err = s.repo.SoftDelete(ctx, id)
	return err
}

func (s *DocumentService) ByCategory(ctx context.Context, category string) ([]domain.Document, error) {
	if category == "" {
		return nil, invalid("category is required")
	}
	return s.repo.ByCategory(ctx, category)
}

func (s *DocumentService) NeedingRenewal(ctx context.Context) ([]domain.Document, error) {
	return s.repo.NeedingRenewal(ctx)
}

func (s *DocumentService) Stats(ctx context.Context) (domain.DocumentStats, error) {
	return s.repo.Stats(ctx)
}
