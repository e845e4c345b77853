package patient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/validator"
)

type fakeService struct {
	created *model.CreatePatientRequest
	deleted model.ID
	err     error
}

func (s *fakeService) CreatePatient(_ context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	s.created = req
	if s.err != nil {
		return nil, s.err
	}
	return &model.Patient{IDNumber: req.IDNumber, FirstName: req.FirstName, LastName: req.LastName}, nil
}

func (s *fakeService) GetPatient(_ context.Context, id model.ID) (*model.Patient, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Patient{IDNumber: id}, nil
}

func (s *fakeService) UpdatePatient(_ context.Context, id model.ID, _ *model.UpdatePatientRequest) (*model.Patient, error) {
	return &model.Patient{IDNumber: id}, s.err
}

func (s *fakeService) DeletePatient(_ context.Context, id model.ID) error {
	s.deleted = id
	return s.err
}

func (s *fakeService) ListPatients(_ context.Context) ([]*model.Patient, error) {
	return []*model.Patient{{IDNumber: "1"}}, s.err
}

func setup(t *testing.T, svc *fakeService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.RegisterWithGin())

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePatient(t *testing.T) {
	svc := &fakeService{}
	r := setup(t, svc)

	w := do(r, http.MethodPost, "/api/patients", `{
		"id_number": 123,
		"first_name": "Dana",
		"last_name": "Levi",
		"address_zip_code": "12345",
		"birth_date": "1990-05-01",
		"blood_type": "ab+"
	}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, model.ID("123"), svc.created.IDNumber)
	assert.Equal(t, "1990-05-01", svc.created.BirthDate.String())
	assert.Contains(t, w.Body.String(), `"status":"success"`)
}

func TestCreatePatient_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing id", `{"first_name":"A","last_name":"B","address_zip_code":"12345","blood_type":"A+"}`},
		{"bad zip", `{"id_number":"1","first_name":"A","last_name":"B","address_zip_code":"12","blood_type":"A+"}`},
		{"bad blood type", `{"id_number":"1","first_name":"A","last_name":"B","address_zip_code":"12345","blood_type":"C+"}`},
		{"malformed", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			r := setup(t, svc)

			w := do(r, http.MethodPost, "/api/patients", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"status":"error"`)
			assert.Nil(t, svc.created)
		})
	}
}

func TestGetPatient_NotFound(t *testing.T) {
	r := setup(t, &fakeService{err: errors.NotFound("patient", nil)})

	w := do(r, http.MethodGet, "/api/patients/42", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"patient not found"}`, w.Body.String())
}

func TestDeletePatient(t *testing.T) {
	svc := &fakeService{}
	r := setup(t, svc)

	w := do(r, http.MethodDelete, "/api/patients/42", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.ID("42"), svc.deleted)
	assert.JSONEq(t, `{"status":"success","message":"Patient deleted successfully"}`, w.Body.String())
}

func TestListPatients_InternalErrorIsGeneric(t *testing.T) {
	r := setup(t, &fakeService{err: errors.Internal(assert.AnError)})

	w := do(r, http.MethodGet, "/api/patients", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
