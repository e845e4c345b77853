package department

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
)

type DepartmentServicer interface {
	CreateDepartment(ctx context.Context, req *model.CreateDepartmentRequest) (*model.Department, error)
	GetDepartment(ctx context.Context, number int) (*model.Department, error)
	UpdateDepartment(ctx context.Context, number int, req *model.UpdateDepartmentRequest) (*model.Department, error)
	DeleteDepartment(ctx context.Context, number int) error
	ListDepartments(ctx context.Context) ([]*model.Department, error)
}

// LookupInvalidator drops cached lookups that list departments.
type LookupInvalidator interface {
	InvalidateLookups()
}

type Service struct {
	repo        repository.DepartmentRepository
	publisher   messaging.Publisher
	invalidator LookupInvalidator
}

func NewService(repo repository.DepartmentRepository, publisher messaging.Publisher, invalidator LookupInvalidator) *Service {
	return &Service{
		repo:        repo,
		publisher:   publisher,
		invalidator: invalidator,
	}
}

func (s *Service) CreateDepartment(ctx context.Context, req *model.CreateDepartmentRequest) (*model.Department, error) {
	department, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	s.changed(ctx, messaging.DepartmentCreated, department.DepartmentNumber, department)
	return department, nil
}

func (s *Service) GetDepartment(ctx context.Context, number int) (*model.Department, error) {
	department, err := s.repo.Get(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return department, nil
}

func (s *Service) UpdateDepartment(ctx context.Context, number int, req *model.UpdateDepartmentRequest) (*model.Department, error) {
	department, err := s.repo.Update(ctx, number, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}

	s.changed(ctx, messaging.DepartmentUpdated, number, department)
	return department, nil
}

func (s *Service) DeleteDepartment(ctx context.Context, number int) error {
	if err := s.repo.Delete(ctx, number); err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}

	s.changed(ctx, messaging.DepartmentDeleted, number, nil)
	return nil
}

func (s *Service) ListDepartments(ctx context.Context) ([]*model.Department, error) {
	departments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

func (s *Service) changed(ctx context.Context, eventType string, number int, payload interface{}) {
	if s.invalidator != nil {
		s.invalidator.InvalidateLookups()
	}
	messaging.Emit(ctx, s.publisher, messaging.NewEvent(eventType, strconv.Itoa(number), payload))
}
