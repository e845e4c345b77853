package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/pkg/validator"
)

// BindJSON decodes and validates the request body into obj. On failure it
// writes a 400 response and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, NewErrorResponse(validator.Message(err)))
		return false
	}
	return true
}

// BindOptionalJSON is BindJSON for bodies that may be omitted. An empty body
// leaves obj at its zero value.
func BindOptionalJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		c.AbortWithStatusJSON(http.StatusBadRequest, NewErrorResponse(validator.Message(err)))
		return false
	}
	return true
}

// PathParam returns the named path segment. The router has already
// percent-decoded it.
func PathParam(c *gin.Context, name string) (string, bool) {
	value := c.Param(name)
	if value == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, NewErrorResponse("invalid "+name))
		return "", false
	}
	return value, true
}

// IntParam parses the named path segment as an integer.
func IntParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, NewErrorResponse("invalid "+name))
		return 0, false
	}
	return n, true
}

// TreatmentKey reads the :date/:patientId/:doctorId segments. The date may
// be ISO or month/day/year and may arrive percent-encoded.
func TreatmentKey(c *gin.Context) (model.TreatmentKey, bool) {
	rawDate, ok := PathParam(c, "date")
	if !ok {
		return model.TreatmentKey{}, false
	}
	date, err := model.ParseDate(rawDate)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
		return model.TreatmentKey{}, false
	}

	patientID, ok := PathParam(c, "patientId")
	if !ok {
		return model.TreatmentKey{}, false
	}
	doctorID, ok := PathParam(c, "doctorId")
	if !ok {
		return model.TreatmentKey{}, false
	}

	return model.TreatmentKey{
		TreatmentDate:     date,
		PatientID:         model.ID(patientID),
		AttendingDoctorID: model.ID(doctorID),
	}, true
}
