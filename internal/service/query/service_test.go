package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
)

type fakeRepo struct {
	departmentCalls int
	doctorCalls     int
	assigned        *model.AssignNurseRequest
	err             error
}

func (r *fakeRepo) DoctorShifts(context.Context) ([]*model.DoctorShift, error) {
	return []*model.DoctorShift{}, r.err
}

func (r *fakeRepo) DepartmentMedications(context.Context) ([]*model.DepartmentMedication, error) {
	return []*model.DepartmentMedication{}, r.err
}

func (r *fakeRepo) Nurses(context.Context) ([]*model.Nurse, error) {
	return []*model.Nurse{}, r.err
}

func (r *fakeRepo) Departments(context.Context) ([]*model.DepartmentRef, error) {
	r.departmentCalls++
	return []*model.DepartmentRef{{DepartmentNumber: 1}, {DepartmentNumber: 2}}, r.err
}

func (r *fakeRepo) Doctors(context.Context) ([]*model.Doctor, error) {
	r.doctorCalls++
	return []*model.Doctor{{IDNumber: "D1", FirstName: "Avi", LastName: "Cohen"}}, r.err
}

func (r *fakeRepo) DoctorDrugUsage(context.Context, model.ID) ([]*model.DrugUsage, error) {
	return []*model.DrugUsage{}, r.err
}

func (r *fakeRepo) AssignNurseToDepartment(_ context.Context, nurseID model.ID, departmentNumber int) error {
	r.assigned = &model.AssignNurseRequest{NurseID: nurseID, DepartmentNumber: departmentNumber}
	return r.err
}

func (r *fakeRepo) CalculateDoctorDrugUsage(context.Context, model.ID) error {
	return r.err
}

func (r *fakeRepo) PersonRoles(_ context.Context, id model.ID) (*model.PersonRoles, error) {
	return &model.PersonRoles{Person: model.Person{IDNumber: id}, Roles: []model.Role{model.RoleNurse}}, r.err
}

func TestDepartments_CachedUntilInvalidated(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, messaging.NopPublisher{}, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		departments, err := svc.Departments(ctx)
		require.NoError(t, err)
		assert.Len(t, departments, 2)
	}
	assert.Equal(t, 1, repo.departmentCalls)

	svc.InvalidateLookups()
	_, err := svc.Departments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.departmentCalls)
}

func TestDoctors_ZeroTTLDisablesCache(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, messaging.NopPublisher{}, 0)
	ctx := context.Background()

	_, err := svc.Doctors(ctx)
	require.NoError(t, err)
	_, err = svc.Doctors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.doctorCalls)
	assert.NotPanics(t, svc.InvalidateLookups)
}

func TestLookupErrorsAreNotCached(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection refused")}
	svc := NewService(repo, messaging.NopPublisher{}, time.Minute)

	_, err := svc.Departments(context.Background())
	assert.Error(t, err)

	repo.err = nil
	_, err = svc.Departments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.departmentCalls)
}

func TestAssignNurse_PassesThrough(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, messaging.NopPublisher{}, time.Minute)

	req := &model.AssignNurseRequest{NurseID: "N1", DepartmentNumber: 4}
	require.NoError(t, svc.AssignNurse(context.Background(), req))
	assert.Equal(t, req, repo.assigned)
}

func TestDoctorDrugUsage_RequiresDoctor(t *testing.T) {
	svc := NewService(&fakeRepo{}, messaging.NopPublisher{}, time.Minute)

	_, err := svc.DoctorDrugUsage(context.Background(), "")
	assert.Error(t, err)
}
