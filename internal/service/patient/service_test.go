package patient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
)

// memRepo stores patients and addresses in memory.
type memRepo struct {
	patients  map[model.ID]*model.Patient
	addresses map[string]model.Address
}

func newMemRepo() *memRepo {
	return &memRepo{
		patients:  map[model.ID]*model.Patient{},
		addresses: map[string]model.Address{},
	}
}

func (r *memRepo) Create(_ context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	if _, ok := r.patients[req.IDNumber]; ok {
		return nil, errors.Conflict("patient already exists", nil)
	}
	addr, ok := r.addresses[req.AddressZipCode]
	if !ok {
		addr = req.Address()
		r.addresses[addr.ZipCode] = addr
	}
	p := &model.Patient{
		IDNumber:        req.IDNumber,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		BirthDate:       req.BirthDate,
		BloodType:       req.BloodType,
		City:            addr.City,
		Street:          addr.Street,
		ApartmentNumber: addr.ApartmentNumber,
		AddressZipCode:  addr.ZipCode,
	}
	r.patients[p.IDNumber] = p
	return p, nil
}

func (r *memRepo) Get(_ context.Context, id model.ID) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, errors.NotFound("patient", nil)
	}
	return p, nil
}

func (r *memRepo) Update(ctx context.Context, id model.ID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.BirthDate != nil {
		p.BirthDate = *req.BirthDate
	}
	return p, nil
}

func (r *memRepo) Delete(_ context.Context, id model.ID) error {
	if _, ok := r.patients[id]; !ok {
		return errors.NotFound("patient", nil)
	}
	delete(r.patients, id)
	return nil
}

func (r *memRepo) List(_ context.Context) ([]*model.Patient, error) {
	out := []*model.Patient{}
	for _, p := range r.patients {
		out = append(out, p)
	}
	return out, nil
}

func newRequest(id model.ID, zip string) *model.CreatePatientRequest {
	return &model.CreatePatientRequest{
		IDNumber:       id,
		FirstName:      "Dana",
		LastName:       "Levi",
		AddressZipCode: zip,
		BirthDate:      model.NewDate(1990, time.April, 2),
		BloodType:      "A+",
	}
}

func TestCreatePatient_SharedZipCreatesOneAddress(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, messaging.NopPublisher{})
	ctx := context.Background()

	_, err := svc.CreatePatient(ctx, newRequest("P1", "12345"))
	require.NoError(t, err)
	_, err = svc.CreatePatient(ctx, newRequest("P2", "12345"))
	require.NoError(t, err)

	assert.Len(t, repo.addresses, 1)
	assert.Equal(t, "Unknown", repo.addresses["12345"].City)
}

func TestCreatePatient_Validation(t *testing.T) {
	svc := NewService(newMemRepo(), messaging.NopPublisher{})
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	missingDate := newRequest("P1", "12345")
	missingDate.BirthDate = model.Date{}
	_, err := svc.CreatePatient(context.Background(), missingDate)
	assert.EqualError(t, err, "birth_date is required")

	future := newRequest("P1", "12345")
	future.BirthDate = model.NewDate(2030, time.January, 1)
	_, err = svc.CreatePatient(context.Background(), future)
	assert.EqualError(t, err, "birth_date cannot be in the future")
}

func TestDeletePatient_ThenGetIsNotFound(t *testing.T) {
	svc := NewService(newMemRepo(), messaging.NopPublisher{})
	ctx := context.Background()

	_, err := svc.CreatePatient(ctx, newRequest("P1", "12345"))
	require.NoError(t, err)
	require.NoError(t, svc.DeletePatient(ctx, "P1"))

	_, err = svc.GetPatient(ctx, "P1")
	assert.True(t, errors.IsNotFound(err))
}

func TestUpdatePatient_NotFound(t *testing.T) {
	svc := NewService(newMemRepo(), messaging.NopPublisher{})
	name := "Noa"

	_, err := svc.UpdatePatient(context.Background(), "P404", &model.UpdatePatientRequest{FirstName: &name})
	assert.True(t, errors.IsNotFound(err))
}
