package medication

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/model"
	medicationService "github.com/jwalitptl/hospital-api/internal/service/medication"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type Handler struct {
	service medicationService.MedicationServicer
}

func NewHandler(service medicationService.MedicationServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	medications := r.Group("/medications")
	{
		medications.POST("", h.CreateMedication)
		medications.GET("", h.ListMedications)
		medications.GET("/:code", h.GetMedication)
		medications.PUT("/:code", h.UpdateMedication)
		medications.DELETE("/:code", h.DeleteMedication)
	}
}

func (h *Handler) CreateMedication(c *gin.Context) {
	var req model.CreateMedicationRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	medication, err := h.service.CreateMedication(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(medication))
}

func (h *Handler) GetMedication(c *gin.Context) {
	code, ok := handler.PathParam(c, "code")
	if !ok {
		return
	}

	medication, err := h.service.GetMedication(c.Request.Context(), code)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(medication))
}

func (h *Handler) UpdateMedication(c *gin.Context) {
	code, ok := handler.PathParam(c, "code")
	if !ok {
		return
	}

	var req model.UpdateMedicationRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	medication, err := h.service.UpdateMedication(c.Request.Context(), code, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(medication))
}

func (h *Handler) DeleteMedication(c *gin.Context) {
	code, ok := handler.PathParam(c, "code")
	if !ok {
		return
	}

	if err := h.service.DeleteMedication(c.Request.Context(), code); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("Medication deleted successfully"))
}

func (h *Handler) ListMedications(c *gin.Context) {
	medications, err := h.service.ListMedications(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(medications))
}
