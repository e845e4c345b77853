package treatment

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
)

type TreatmentServicer interface {
	CreateTreatment(ctx context.Context, req *model.CreateTreatmentRequest) (*model.Treatment, error)
	GetTreatment(ctx context.Context, key model.TreatmentKey) (*model.Treatment, error)
	UpdateTreatment(ctx context.Context, key model.TreatmentKey, req *model.UpdateTreatmentRequest) (*model.Treatment, error)
	DeleteTreatment(ctx context.Context, key model.TreatmentKey) error
	ListTreatments(ctx context.Context) ([]*model.Treatment, error)
}

type Service struct {
	repo      repository.TreatmentRepository
	publisher messaging.Publisher
}

func NewService(repo repository.TreatmentRepository, publisher messaging.Publisher) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateTreatment fails with a conflict when the key already exists and
// leaves the stored treatment untouched.
func (s *Service) CreateTreatment(ctx context.Context, req *model.CreateTreatmentRequest) (*model.Treatment, error) {
	key := req.Key()
	if err := validateKey(key); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, key, model.UniqueCodes(req.Medications)); err != nil {
		return nil, fmt.Errorf("failed to create treatment: %w", err)
	}

	treatment, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load created treatment: %w", err)
	}

	messaging.Emit(ctx, s.publisher, messaging.NewEvent(messaging.TreatmentCreated, key.String(), treatment))
	return treatment, nil
}

func (s *Service) GetTreatment(ctx context.Context, key model.TreatmentKey) (*model.Treatment, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	treatment, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get treatment: %w", err)
	}
	return treatment, nil
}

// UpdateTreatment replaces the medication set wholesale.
func (s *Service) UpdateTreatment(ctx context.Context, key model.TreatmentKey, req *model.UpdateTreatmentRequest) (*model.Treatment, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceMedications(ctx, key, model.UniqueCodes(req.Medications)); err != nil {
		return nil, fmt.Errorf("failed to update treatment: %w", err)
	}

	treatment, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated treatment: %w", err)
	}

	messaging.Emit(ctx, s.publisher, messaging.NewEvent(messaging.TreatmentUpdated, key.String(), treatment))
	return treatment, nil
}

func (s *Service) DeleteTreatment(ctx context.Context, key model.TreatmentKey) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete treatment: %w", err)
	}

	messaging.Emit(ctx, s.publisher, messaging.NewEvent(messaging.TreatmentDeleted, key.String(), nil))
	return nil
}

func (s *Service) ListTreatments(ctx context.Context) ([]*model.Treatment, error) {
	treatments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list treatments: %w", err)
	}
	return treatments, nil
}

func validateKey(key model.TreatmentKey) error {
	switch {
	case key.TreatmentDate.IsZero():
		return errors.Validation("treatment_date is required", nil)
	case key.PatientID == "":
		return errors.Validation("patient_id is required", nil)
	case key.AttendingDoctorID == "":
		return errors.Validation("attending_doctor_id is required", nil)
	}
	return nil
}
