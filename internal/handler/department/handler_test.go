package department

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
	number int
	err    error
}

func (s *fakeService) CreateDepartment(_ context.Context, req *model.CreateDepartmentRequest) (*model.Department, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Department{DepartmentNumber: req.DepartmentNumber, NumberOfBeds: *req.NumberOfBeds}, nil
}

func (s *fakeService) GetDepartment(_ context.Context, number int) (*model.Department, error) {
	s.number = number
	if s.err != nil {
		return nil, s.err
	}
	return &model.Department{DepartmentNumber: number}, nil
}

func (s *fakeService) UpdateDepartment(_ context.Context, number int, _ *model.UpdateDepartmentRequest) (*model.Department, error) {
	s.number = number
	return &model.Department{DepartmentNumber: number}, s.err
}

func (s *fakeService) DeleteDepartment(_ context.Context, number int) error {
	s.number = number
	return s.err
}

func (s *fakeService) ListDepartments(_ context.Context) ([]*model.Department, error) {
	return []*model.Department{}, s.err
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

func TestCreateDepartment(t *testing.T) {
	w := do(setup(&fakeService{}), http.MethodPost, "/api/departments",
		`{"department_number":3,"department_phone_number":"555-0100","number_of_beds":0}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"department_number":3`)
}

func TestCreateDepartment_Duplicate(t *testing.T) {
	svc := &fakeService{err: errors.Conflict("department already exists", nil)}

	w := do(setup(svc), http.MethodPost, "/api/departments",
		`{"department_number":3,"department_phone_number":"555-0100","number_of_beds":4}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "department already exists")
}

func TestGetDepartment(t *testing.T) {
	svc := &fakeService{}

	w := do(setup(svc), http.MethodGet, "/api/departments/12", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 12, svc.number)
}

func TestGetDepartment_BadNumber(t *testing.T) {
	w := do(setup(&fakeService{}), http.MethodGet, "/api/departments/abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteDepartment_NotFound(t *testing.T) {
	svc := &fakeService{err: errors.NotFound("department", nil)}

	w := do(setup(svc), http.MethodDelete, "/api/departments/9", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
