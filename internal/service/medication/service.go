package medication

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
)

// CodePrefix starts every server-generated medication code.
const CodePrefix = "MED-"

type MedicationServicer interface {
	CreateMedication(ctx context.Context, req *model.CreateMedicationRequest) (*model.Medication, error)
	GetMedication(ctx context.Context, code string) (*model.Medication, error)
	UpdateMedication(ctx context.Context, code string, req *model.UpdateMedicationRequest) (*model.Medication, error)
	DeleteMedication(ctx context.Context, code string) error
	ListMedications(ctx context.Context) ([]*model.Medication, error)
}

type Service struct {
	repo      repository.MedicationRepository
	publisher messaging.Publisher
}

func NewService(repo repository.MedicationRepository, publisher messaging.Publisher) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *Service) CreateMedication(ctx context.Context, req *model.CreateMedicationRequest) (*model.Medication, error) {
	name := strings.TrimSpace(req.MedicationName)
	if name == "" {
		return nil, errors.Validation("medication_name is required", nil)
	}
	if req.Price == nil {
		return nil, errors.Validation("price is required", nil)
	}
	if *req.Price < 0 {
		return nil, errors.Validation("price must not be negative", nil)
	}

	code := strings.TrimSpace(req.MedicationCode)
	if code == "" {
		code = GenerateCode()
	}

	medication, err := s.repo.Create(ctx, &model.Medication{
		MedicationCode: code,
		MedicationName: name,
		Price:          *req.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}

	messaging.Emit(ctx, s.publisher, messaging.NewEvent(messaging.MedicationCreated, medication.MedicationCode, medication))
	return medication, nil
}

func (s *Service) GetMedication(ctx context.Context, code string) (*model.Medication, error) {
	medication, err := s.repo.Get(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get medication: %w", err)
	}
	return medication, nil
}

func (s *Service) UpdateMedication(ctx context.Context, code string, req *model.UpdateMedicationRequest) (*model.Medication, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, errors.Validation("price must not be negative", nil)
	}

	medication, err := s.repo.Update(ctx, code, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update medication: %w", err)
	}

	messaging.Emit(ctx, s.publisher, messaging.NewEvent(messaging.MedicationUpdated, code, medication))
	return medication, nil
}

func (s *Service) DeleteMedication(ctx context.Context, code string) error {
	if err := s.repo.Delete(ctx, code); err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}

	messaging.Emit(ctx, s.publisher, messaging.NewEvent(messaging.MedicationDeleted, code, nil))
	return nil
}

func (s *Service) ListMedications(ctx context.Context) ([]*model.Medication, error) {
	medications, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	return medications, nil
}

// GenerateCode returns CodePrefix followed by eight upper-case hex digits.
func GenerateCode() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return CodePrefix + strings.ToUpper(id[:8])
}
