package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/model"
	patientService "github.com/jwalitptl/hospital-api/internal/service/patient"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type Handler struct {
	service patientService.PatientServicer
}

func NewHandler(service patientService.PatientServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.CreatePatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)
	}
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	patient, err := h.service.CreatePatient(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(patient))
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, ok := handler.PathParam(c, "id")
	if !ok {
		return
	}

	patient, err := h.service.GetPatient(c.Request.Context(), model.ID(id))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patient))
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, ok := handler.PathParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdatePatientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	patient, err := h.service.UpdatePatient(c.Request.Context(), model.ID(id), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patient))
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, ok := handler.PathParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeletePatient(c.Request.Context(), model.ID(id)); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("Patient deleted successfully"))
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}
