// Package client is a typed HTTP client for the hospital API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
)

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:3001/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

// Patients

func (c *Client) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	var out []*model.Patient
	err := c.do(ctx, http.MethodGet, "/patients", nil, &out)
	return out, err
}

func (c *Client) GetPatient(ctx context.Context, id model.ID) (*model.Patient, error) {
	var out model.Patient
	if err := c.do(ctx, http.MethodGet, "/patients/"+url.PathEscape(id.String()), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	var out model.Patient
	if err := c.do(ctx, http.MethodPost, "/patients", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePatient(ctx context.Context, id model.ID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	var out model.Patient
	if err := c.do(ctx, http.MethodPut, "/patients/"+url.PathEscape(id.String()), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePatient(ctx context.Context, id model.ID) error {
	return c.do(ctx, http.MethodDelete, "/patients/"+url.PathEscape(id.String()), nil, nil)
}

// Medications

func (c *Client) ListMedications(ctx context.Context) ([]*model.Medication, error) {
	var out []*model.Medication
	err := c.do(ctx, http.MethodGet, "/medications", nil, &out)
	return out, err
}

func (c *Client) GetMedication(ctx context.Context, code string) (*model.Medication, error) {
	var out model.Medication
	if err := c.do(ctx, http.MethodGet, "/medications/"+url.PathEscape(code), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateMedication(ctx context.Context, req *model.CreateMedicationRequest) (*model.Medication, error) {
	var out model.Medication
	if err := c.do(ctx, http.MethodPost, "/medications", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMedication(ctx context.Context, code string, req *model.UpdateMedicationRequest) (*model.Medication, error) {
	var out model.Medication
	if err := c.do(ctx, http.MethodPut, "/medications/"+url.PathEscape(code), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMedication(ctx context.Context, code string) error {
	return c.do(ctx, http.MethodDelete, "/medications/"+url.PathEscape(code), nil, nil)
}

// Departments

func (c *Client) ListDepartments(ctx context.Context) ([]*model.Department, error) {
	var out []*model.Department
	err := c.do(ctx, http.MethodGet, "/departments", nil, &out)
	return out, err
}

func (c *Client) GetDepartment(ctx context.Context, number int) (*model.Department, error) {
	var out model.Department
	if err := c.do(ctx, http.MethodGet, "/departments/"+strconv.Itoa(number), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateDepartment(ctx context.Context, req *model.CreateDepartmentRequest) (*model.Department, error) {
	var out model.Department
	if err := c.do(ctx, http.MethodPost, "/departments", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDepartment(ctx context.Context, number int, req *model.UpdateDepartmentRequest) (*model.Department, error) {
	var out model.Department
	if err := c.do(ctx, http.MethodPut, "/departments/"+strconv.Itoa(number), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDepartment(ctx context.Context, number int) error {
	return c.do(ctx, http.MethodDelete, "/departments/"+strconv.Itoa(number), nil, nil)
}

// Treatments

// TreatmentPath renders the key as it appears in treatment URLs, with the
// date in month/day/year form and percent-encoded.
func TreatmentPath(key model.TreatmentKey) string {
	return "/treatments/" +
		url.PathEscape(key.TreatmentDate.StoreString()) + "/" +
		url.PathEscape(key.PatientID.String()) + "/" +
		url.PathEscape(key.AttendingDoctorID.String())
}

func (c *Client) ListTreatments(ctx context.Context) ([]*model.Treatment, error) {
	var out []*model.Treatment
	err := c.do(ctx, http.MethodGet, "/treatments", nil, &out)
	return out, err
}

func (c *Client) GetTreatment(ctx context.Context, key model.TreatmentKey) (*model.Treatment, error) {
	var out model.Treatment
	if err := c.do(ctx, http.MethodGet, TreatmentPath(key), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTreatment(ctx context.Context, req *model.CreateTreatmentRequest) (*model.Treatment, error) {
	var out model.Treatment
	if err := c.do(ctx, http.MethodPost, "/treatments", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTreatment(ctx context.Context, key model.TreatmentKey, req *model.UpdateTreatmentRequest) (*model.Treatment, error) {
	var out model.Treatment
	if err := c.do(ctx, http.MethodPut, TreatmentPath(key), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTreatment(ctx context.Context, key model.TreatmentKey) error {
	return c.do(ctx, http.MethodDelete, TreatmentPath(key), nil, nil)
}

// Queries

func (c *Client) DoctorShifts(ctx context.Context) ([]*model.DoctorShift, error) {
	var out []*model.DoctorShift
	err := c.do(ctx, http.MethodGet, "/queries/doctor-shifts", nil, &out)
	return out, err
}

func (c *Client) DepartmentMedications(ctx context.Context) ([]*model.DepartmentMedication, error) {
	var out []*model.DepartmentMedication
	err := c.do(ctx, http.MethodGet, "/queries/department-medications", nil, &out)
	return out, err
}

func (c *Client) Nurses(ctx context.Context) ([]*model.Nurse, error) {
	var out []*model.Nurse
	err := c.do(ctx, http.MethodGet, "/queries/nurses", nil, &out)
	return out, err
}

func (c *Client) DepartmentNumbers(ctx context.Context) ([]*model.DepartmentRef, error) {
	var out []*model.DepartmentRef
	err := c.do(ctx, http.MethodGet, "/queries/departments", nil, &out)
	return out, err
}

func (c *Client) Doctors(ctx context.Context) ([]*model.Doctor, error) {
	var out []*model.Doctor
	err := c.do(ctx, http.MethodGet, "/queries/doctors", nil, &out)
	return out, err
}

func (c *Client) DoctorDrugUsage(ctx context.Context, doctorID model.ID) ([]*model.DrugUsage, error) {
	var out []*model.DrugUsage
	err := c.do(ctx, http.MethodGet, "/queries/doctor-drug-usage/"+url.PathEscape(doctorID.String()), nil, &out)
	return out, err
}

func (c *Client) AssignNurse(ctx context.Context, req *model.AssignNurseRequest) error {
	return c.do(ctx, http.MethodPost, "/queries/assign-nurse", req, nil)
}

func (c *Client) CalculateDoctorDrugUsage(ctx context.Context, doctorID model.ID) error {
	return c.do(ctx, http.MethodPost, "/queries/call-doctor-drug-usage", &model.DoctorDrugUsageRequest{DoctorID: doctorID}, nil)
}

func (c *Client) PersonRoles(ctx context.Context, id model.ID) (*model.PersonRoles, error) {
	var out model.PersonRoles
	if err := c.do(ctx, http.MethodGet, "/queries/people/"+url.PathEscape(id.String())+"/roles", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}
