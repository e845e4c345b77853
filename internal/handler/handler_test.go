package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine() *gin.Engine {
	r := gin.New()
	r.UseRawPath = true
	r.UnescapePathValues = true
	return r
}

func TestTreatmentKey_DecodesEncodedDate(t *testing.T) {
	var got model.TreatmentKey
	r := newEngine()
	r.GET("/t/:date/:patientId/:doctorId", func(c *gin.Context) {
		key, ok := TreatmentKey(c)
		require.True(t, ok)
		got = key
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t/01%2F02%2F2024/P1/D1", nil))

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "2024-01-02", got.TreatmentDate.String())
	assert.Equal(t, model.ID("P1"), got.PatientID)
	assert.Equal(t, model.ID("D1"), got.AttendingDoctorID)
}

func TestPathParam_DecodesOnce(t *testing.T) {
	var got string
	r := newEngine()
	r.GET("/p/:id", func(c *gin.Context) {
		id, ok := PathParam(c, "id")
		require.True(t, ok)
		got = id
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p/A%2541", nil))

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "A%41", got)
}

func TestTreatmentKey_ISODate(t *testing.T) {
	var got model.TreatmentKey
	r := newEngine()
	r.GET("/t/:date/:patientId/:doctorId", func(c *gin.Context) {
		got, _ = TreatmentKey(c)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t/2024-03-15/P1/D1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-03-15", got.TreatmentDate.String())
}

func TestTreatmentKey_BadDate(t *testing.T) {
	r := newEngine()
	r.GET("/t/:date/:patientId/:doctorId", func(c *gin.Context) {
		_, ok := TreatmentKey(c)
		assert.False(t, ok)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t/not-a-date/P1/D1", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"error"`)
}

func TestIntParam(t *testing.T) {
	r := newEngine()
	r.GET("/d/:number", func(c *gin.Context) {
		n, ok := IntParam(c, "number")
		if ok {
			c.JSON(http.StatusOK, NewSuccessResponse(n))
		}
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/d/7", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","data":7}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/d/seven", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResponses(t *testing.T) {
	assert.Equal(t, "success", NewMessageResponse("ok").Status)
	assert.Equal(t, "error", NewErrorResponse("bad").Status)
	assert.Equal(t, "bad", NewErrorResponse("bad").Message)
}
