package treatment

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
	key       model.TreatmentKey
	createErr error
	getErr    error
	updated   []string
	updates   int
}

func (s *fakeService) CreateTreatment(_ context.Context, req *model.CreateTreatmentRequest) (*model.Treatment, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.key = req.Key()
	return &model.Treatment{TreatmentKey: req.Key(), Medications: model.UniqueCodes(req.Medications)}, nil
}

func (s *fakeService) GetTreatment(_ context.Context, key model.TreatmentKey) (*model.Treatment, error) {
	s.key = key
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &model.Treatment{TreatmentKey: key, Medications: []string{}}, nil
}

func (s *fakeService) UpdateTreatment(_ context.Context, key model.TreatmentKey, req *model.UpdateTreatmentRequest) (*model.Treatment, error) {
	s.key = key
	s.updates++
	s.updated = req.Medications
	return &model.Treatment{TreatmentKey: key, Medications: req.Medications}, nil
}

func (s *fakeService) DeleteTreatment(_ context.Context, key model.TreatmentKey) error {
	s.key = key
	return s.getErr
}

func (s *fakeService) ListTreatments(_ context.Context) ([]*model.Treatment, error) {
	return []*model.Treatment{}, nil
}

func setup(t *testing.T, svc *fakeService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.RegisterWithGin())

	r := gin.New()
	r.UseRawPath = true
	r.UnescapePathValues = true
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

func TestCreateTreatment(t *testing.T) {
	svc := &fakeService{}
	r := setup(t, svc)

	w := do(r, http.MethodPost, "/api/treatments", `{
		"treatment_date": "2024-01-01",
		"patient_id": "P1",
		"attending_doctor_id": "D1",
		"medications": ["M1", "M2", "M1"]
	}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "2024-01-01/P1/D1", svc.key.String())
	assert.Contains(t, w.Body.String(), `"medications":["M1","M2"]`)
}

func TestCreateTreatment_Duplicate(t *testing.T) {
	r := setup(t, &fakeService{
		createErr: errors.Conflict("treatment already exists for this date, patient, and doctor", nil),
	})

	w := do(r, http.MethodPost, "/api/treatments",
		`{"treatment_date":"2024-01-01","patient_id":"P1","attending_doctor_id":"D1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t,
		`{"status":"error","message":"treatment already exists for this date, patient, and doctor"}`,
		w.Body.String())
}

func TestGetTreatment_EncodedDate(t *testing.T) {
	svc := &fakeService{}
	r := setup(t, svc)

	w := do(r, http.MethodGet, "/api/treatments/01%2F01%2F2024/P1/D1", "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2024-01-01", svc.key.TreatmentDate.String())
	assert.Equal(t, model.ID("P1"), svc.key.PatientID)
}

func TestGetTreatment_NotFound(t *testing.T) {
	r := setup(t, &fakeService{getErr: errors.NotFound("treatment", nil)})

	w := do(r, http.MethodGet, "/api/treatments/2024-01-01/P1/D1", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateTreatment_EmptyListClears(t *testing.T) {
	svc := &fakeService{}
	r := setup(t, svc)

	w := do(r, http.MethodPut, "/api/treatments/2024-01-01/P1/D1", `{"medications":[]}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotNil(t, svc.updated)
	assert.Empty(t, svc.updated)
}

func TestUpdateTreatment_MissingBodyClears(t *testing.T) {
	svc := &fakeService{}
	r := setup(t, svc)

	w := do(r, http.MethodPut, "/api/treatments/2024-01-01/P1/D1", "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, svc.updates)
	assert.Empty(t, svc.updated)
}

func TestUpdateTreatment_MalformedBody(t *testing.T) {
	svc := &fakeService{}
	r := setup(t, svc)

	w := do(r, http.MethodPut, "/api/treatments/2024-01-01/P1/D1", `{"medications":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.updates)
}

func TestDeleteTreatment(t *testing.T) {
	svc := &fakeService{}
	r := setup(t, svc)

	w := do(r, http.MethodDelete, "/api/treatments/01%2F01%2F2024/P1/D1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Treatment deleted successfully")
}
