package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
)

type PatientServicer interface {
	CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	GetPatient(ctx context.Context, id model.ID) (*model.Patient, error)
	UpdatePatient(ctx context.Context, id model.ID, req *model.UpdatePatientRequest) (*model.Patient, error)
	DeletePatient(ctx context.Context, id model.ID) error
	ListPatients(ctx context.Context) ([]*model.Patient, error)
}

type Service struct {
	repo      repository.PatientRepository
	publisher messaging.Publisher
	now       func() time.Time
}

func NewService(repo repository.PatientRepository, publisher messaging.Publisher) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *Service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	if req.IDNumber == "" {
		return nil, errors.Validation("id_number is required", nil)
	}
	if err := s.validateBirthDate(req.BirthDate); err != nil {
		return nil, err
	}
	req.BloodType = normalizeBloodType(req.BloodType)

	patient, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	messaging.Emit(ctx, s.publisher, messaging.NewEvent(messaging.PatientCreated, patient.IDNumber.String(), patient))
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id model.ID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id model.ID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	if req.BirthDate != nil {
		if err := s.validateBirthDate(*req.BirthDate); err != nil {
			return nil, err
		}
	}

	if req.BloodType != nil {
		bt := normalizeBloodType(*req.BloodType)
		req.BloodType = &bt
	}

	patient, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	messaging.Emit(ctx, s.publisher, messaging.NewEvent(messaging.PatientUpdated, id.String(), patient))
	return patient, nil
}

func (s *Service) DeletePatient(ctx context.Context, id model.ID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	messaging.Emit(ctx, s.publisher, messaging.NewEvent(messaging.PatientDeleted, id.String(), nil))
	return nil
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *Service) validateBirthDate(d model.Date) error {
	if d.IsZero() {
		return errors.Validation("birth_date is required", nil)
	}
	if d.After(s.now()) {
		return errors.Validation("birth_date cannot be in the future", nil)
	}
	return nil
}

func normalizeBloodType(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
