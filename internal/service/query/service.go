package query

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
)

const (
	departmentsKey = "lookup:departments"
	doctorsKey     = "lookup:doctors"
)

type QueryServicer interface {
	DoctorShifts(ctx context.Context) ([]*model.DoctorShift, error)
	DepartmentMedications(ctx context.Context) ([]*model.DepartmentMedication, error)
	Nurses(ctx context.Context) ([]*model.Nurse, error)
	Departments(ctx context.Context) ([]*model.DepartmentRef, error)
	Doctors(ctx context.Context) ([]*model.Doctor, error)
	DoctorDrugUsage(ctx context.Context, doctorID model.ID) ([]*model.DrugUsage, error)
	AssignNurse(ctx context.Context, req *model.AssignNurseRequest) error
	CalculateDoctorDrugUsage(ctx context.Context, doctorID model.ID) error
	PersonRoles(ctx context.Context, id model.ID) (*model.PersonRoles, error)
}

// Service runs the reports. The department and doctor lookups feed form
// dropdowns and are cached for the configured TTL; a TTL of zero disables
// the cache.
type Service struct {
	repo      repository.QueryRepository
	publisher messaging.Publisher
	lookups   *cache.Cache
}

func NewService(repo repository.QueryRepository, publisher messaging.Publisher, lookupTTL time.Duration) *Service {
	s := &Service{
		repo:      repo,
		publisher: publisher,
	}
	if lookupTTL > 0 {
		s.lookups = cache.New(lookupTTL, 2*lookupTTL)
	}
	return s
}

func (s *Service) DoctorShifts(ctx context.Context) ([]*model.DoctorShift, error) {
	shifts, err := s.repo.DoctorShifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor shifts: %w", err)
	}
	return shifts, nil
}

func (s *Service) DepartmentMedications(ctx context.Context) ([]*model.DepartmentMedication, error) {
	usage, err := s.repo.DepartmentMedications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get department medications: %w", err)
	}
	return usage, nil
}

func (s *Service) Nurses(ctx context.Context) ([]*model.Nurse, error) {
	nurses, err := s.repo.Nurses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get nurses: %w", err)
	}
	return nurses, nil
}

func (s *Service) Departments(ctx context.Context) ([]*model.DepartmentRef, error) {
	if cached, ok := s.cached(departmentsKey); ok {
		return cached.([]*model.DepartmentRef), nil
	}

	departments, err := s.repo.Departments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get departments: %w", err)
	}
	s.store(departmentsKey, departments)
	return departments, nil
}

func (s *Service) Doctors(ctx context.Context) ([]*model.Doctor, error) {
	if cached, ok := s.cached(doctorsKey); ok {
		return cached.([]*model.Doctor), nil
	}

	doctors, err := s.repo.Doctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctors: %w", err)
	}
	s.store(doctorsKey, doctors)
	return doctors, nil
}

func (s *Service) DoctorDrugUsage(ctx context.Context, doctorID model.ID) ([]*model.DrugUsage, error) {
	if doctorID == "" {
		return nil, errors.Validation("doctorId is required", nil)
	}

	usage, err := s.repo.DoctorDrugUsage(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor drug usage: %w", err)
	}
	return usage, nil
}

// AssignNurse delegates to the assign_nurse_to_department procedure.
func (s *Service) AssignNurse(ctx context.Context, req *model.AssignNurseRequest) error {
	if err := s.repo.AssignNurseToDepartment(ctx, req.NurseID, req.DepartmentNumber); err != nil {
		return fmt.Errorf("failed to assign nurse: %w", err)
	}

	messaging.Emit(ctx, s.publisher, messaging.NewEvent(messaging.NurseAssigned, req.NurseID.String(),
		map[string]string{"department_number": strconv.Itoa(req.DepartmentNumber)}))
	return nil
}

func (s *Service) CalculateDoctorDrugUsage(ctx context.Context, doctorID model.ID) error {
	if err := s.repo.CalculateDoctorDrugUsage(ctx, doctorID); err != nil {
		return fmt.Errorf("failed to calculate doctor drug usage: %w", err)
	}
	return nil
}

func (s *Service) PersonRoles(ctx context.Context, id model.ID) (*model.PersonRoles, error) {
	roles, err := s.repo.PersonRoles(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get person roles: %w", err)
	}
	return roles, nil
}

// InvalidateLookups drops the cached dropdown lookups.
func (s *Service) InvalidateLookups() {
	if s.lookups == nil {
		return
	}
	s.lookups.Delete(departmentsKey)
	s.lookups.Delete(doctorsKey)
}

func (s *Service) cached(key string) (interface{}, bool) {
	if s.lookups == nil {
		return nil, false
	}
	return s.lookups.Get(key)
}

func (s *Service) store(key string, value interface{}) {
	if s.lookups != nil {
		s.lookups.SetDefault(key, value)
	}
}
