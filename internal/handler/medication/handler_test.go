package medication

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
)

type fakeService struct {
	created *model.CreateMedicationRequest
	code    string
	err     error
}

func (s *fakeService) CreateMedication(_ context.Context, req *model.CreateMedicationRequest) (*model.Medication, error) {
	s.created = req
	if s.err != nil {
		return nil, s.err
	}
	return &model.Medication{MedicationCode: "MED-0000ABCD", MedicationName: req.MedicationName, Price: *req.Price}, nil
}

func (s *fakeService) GetMedication(_ context.Context, code string) (*model.Medication, error) {
	s.code = code
	if s.err != nil {
		return nil, s.err
	}
	return &model.Medication{MedicationCode: code}, nil
}

func (s *fakeService) UpdateMedication(_ context.Context, code string, _ *model.UpdateMedicationRequest) (*model.Medication, error) {
	s.code = code
	return &model.Medication{MedicationCode: code}, s.err
}

func (s *fakeService) DeleteMedication(_ context.Context, code string) error {
	s.code = code
	return s.err
}

func (s *fakeService) ListMedications(_ context.Context) ([]*model.Medication, error) {
	return []*model.Medication{}, s.err
}

func setup(svc *fakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
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

func TestCreateMedication(t *testing.T) {
	svc := &fakeService{}
	r := setup(svc)

	w := do(r, http.MethodPost, "/api/medications", `{"medication_name":"Aspirin","price":0}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"medication_code":"MED-0000ABCD"`)
	assert.Equal(t, 0.0, *svc.created.Price)
}

func TestCreateMedication_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing price", `{"medication_name":"Aspirin"}`},
		{"negative price", `{"medication_name":"Aspirin","price":-1}`},
		{"missing name", `{"price":3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			w := do(setup(svc), http.MethodPost, "/api/medications", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, svc.created)
		})
	}
}

func TestGetMedication_NotFound(t *testing.T) {
	svc := &fakeService{err: errors.NotFound("medication", nil)}

	w := do(setup(svc), http.MethodGet, "/api/medications/M1", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "M1", svc.code)
}

func TestDeleteMedication(t *testing.T) {
	svc := &fakeService{}

	w := do(setup(svc), http.MethodDelete, "/api/medications/M1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","message":"Medication deleted successfully"}`, w.Body.String())
}
