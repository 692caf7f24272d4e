package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"contaluz/internal/config"
	"contaluz/internal/domain"
	"contaluz/internal/extractor"
	"contaluz/internal/port"
)

// CompanyPlaceholder is the display name given to bills whose account holder
// could not be extracted.
const CompanyPlaceholder = "Não identificado"

// BillService defines the bill pipeline and dashboard contract.
type BillService interface {
	// Process runs the full pipeline for one batch: extraction, archival,
	// ingestion. Extraction failure is terminal for the whole batch.
	Process(ctx context.Context, ownerID uuid.UUID, docs []port.BillDocument) (*domain.BatchResult, error)
	// Ingest validates, normalizes and persists a candidate batch,
	// classifying each outcome as added, duplicate or rejected.
	Ingest(ctx context.Context, candidates []domain.CandidateBill, ownerID uuid.UUID) (*domain.BatchResult, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.Bill, error)
	Summary(ctx context.Context, ownerID uuid.UUID) (*domain.Summary, error)
	TogglePaid(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Bill, error)
	ToggleCompensationType(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Bill, error)
	SetDiscount(ctx context.Context, ownerID uuid.UUID, id int64, value float64) (*domain.Bill, error)
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Bill, error)
}

// ErrInvalidDiscount rejects discount values outside [0,100].
var ErrInvalidDiscount = errors.New("discount must be between 0 and 100")

type billService struct {
	billRepo  port.BillRepository
	docRepo   port.BillDocumentRepository
	extractor port.BillExtractor
	storage   port.ObjectStorage
	archive   *config.ArchiveConfig
}

// NewBillService creates a new BillService implementation. storage may be nil
// when document archiving is disabled.
func NewBillService(
	billRepo port.BillRepository,
	docRepo port.BillDocumentRepository,
	billExtractor port.BillExtractor,
	storage port.ObjectStorage,
	archive *config.ArchiveConfig,
) BillService {
	return &billService{
		billRepo:  billRepo,
		docRepo:   docRepo,
		extractor: billExtractor,
		storage:   storage,
		archive:   archive,
	}
}

func (s *billService) Process(ctx context.Context, ownerID uuid.UUID, docs []port.BillDocument) (*domain.BatchResult, error) {
	if len(docs) == 0 {
		return nil, domain.ErrNoFiles
	}

	candidates, err := s.extractor.Extract(ctx, docs)
	if err != nil {
		return nil, err
	}

	s.archiveDocuments(ctx, ownerID, docs)

	return s.Ingest(ctx, candidates, ownerID)
}

// Ingest processes candidates strictly in order. A duplicate-key collision is
// an expected outcome and is counted; any other persistence failure aborts
// the remaining batch.
func (s *billService) Ingest(ctx context.Context, candidates []domain.CandidateBill, ownerID uuid.UUID) (*domain.BatchResult, error) {
	result := &domain.BatchResult{}

	for i := range candidates {
		c := &candidates[i]
		if c.Date == "" || c.InstallationNumber == "" {
			result.Rejected++
			continue
		}

		bill := normalizeCandidate(c, ownerID)

		err := s.billRepo.Insert(ctx, bill)
		switch {
		case err == nil:
			result.Added++
		case errors.Is(err, domain.ErrDuplicateBill):
			result.Duplicates++
		default:
			return nil, fmt.Errorf("ingesting candidate %d: %w", i, err)
		}
	}

	return result, nil
}

// normalizeCandidate maps a candidate onto the persistence schema with the
// lenient defaults the pipeline guarantees. The owner always comes from the
// authenticated caller, never from the candidate payload.
func normalizeCandidate(c *domain.CandidateBill, ownerID uuid.UUID) *domain.Bill {
	company := c.Company
	if company == "" {
		company = CompanyPlaceholder
	}
	billClass := c.BillClass
	if billClass == "" {
		billClass = "N/A"
	}
	var dueDate *string
	if c.DueDate != "" {
		d := c.DueDate
		dueDate = &d
	}

	return &domain.Bill{
		UserID:                ownerID,
		Company:               company,
		InstallationNumber:    c.InstallationNumber,
		BillClass:             billClass,
		Date:                  c.Date,
		DueDate:               dueDate,
		Cost:                  nonNegative(c.Cost),
		Consumption:           nonNegative(c.Consumption),
		CompensatedEnergyKwh:  nonNegative(c.CompensatedEnergyKwh),
		UnitPrice:             nonNegative(c.UnitPrice),
		GenerationBalanceKwh:  c.GenerationBalanceKwh,
		Paid:                  false,
		CompensatedEnergyType: domain.CompensationInternal,
	}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// archiveDocuments stores the processed uploads in object storage,
// best-effort: an archive failure never fails the batch.
func (s *billService) archiveDocuments(ctx context.Context, ownerID uuid.UUID, docs []port.BillDocument) {
	if s.storage == nil || s.archive == nil || !s.archive.Enabled() {
		return
	}
	for _, doc := range docs {
		doc = extractor.NormalizeDocument(doc)
		raw, err := extractor.DecodeDocument(doc)
		if err != nil {
			log.Printf("billService.archiveDocuments: skipping undecodable document: %v", err)
			continue
		}

		docID := uuid.New()
		key := fmt.Sprintf("users/%s/bills/%s", ownerID, docID)
		_, err = s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.archive.Bucket,
			Key:         key,
			Body:        bytes.NewReader(raw),
			ContentType: doc.MIMEType,
			Size:        int64(len(raw)),
		})
		if err != nil {
			log.Printf("billService.archiveDocuments: upload failed for %s: %v", key, err)
			continue
		}

		err = s.docRepo.Create(ctx, &domain.BillDocument{
			ID:          docID,
			UserID:      ownerID,
			StorageKey:  key,
			Bucket:      s.archive.Bucket,
			ContentType: doc.MIMEType,
			SizeBytes:   int64(len(raw)),
		})
		if err != nil {
			log.Printf("billService.archiveDocuments: recording %s failed: %v", key, err)
		}
	}
}

func (s *billService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Bill, error) {
	return s.billRepo.ListByUser(ctx, ownerID)
}

func (s *billService) Summary(ctx context.Context, ownerID uuid.UUID) (*domain.Summary, error) {
	bills, err := s.billRepo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	summary := domain.Summarize(bills)
	return &summary, nil
}

func (s *billService) TogglePaid(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.billRepo.SetPaid(ctx, ownerID, id, !bill.Paid); err != nil {
		return nil, err
	}
	bill.Paid = !bill.Paid
	return bill, nil
}

func (s *billService) ToggleCompensationType(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	next := bill.CompensatedEnergyType.Toggle()
	if err := s.billRepo.SetCompensationType(ctx, ownerID, id, next); err != nil {
		return nil, err
	}
	bill.CompensatedEnergyType = next
	return bill, nil
}

func (s *billService) SetDiscount(ctx context.Context, ownerID uuid.UUID, id int64, value float64) (*domain.Bill, error) {
	if value < 0 || value > 100 {
		return nil, ErrInvalidDiscount
	}
	bill, err := s.billRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.billRepo.SetDiscount(ctx, ownerID, id, value); err != nil {
		return nil, err
	}
	bill.ContractedDiscount = &value
	return bill, nil
}

func (s *billService) Delete(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Bill, error) {
	return s.billRepo.Delete(ctx, ownerID, id)
}
