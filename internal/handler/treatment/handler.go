package treatment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/model"
	treatmentService "github.com/jwalitptl/hospital-api/internal/service/treatment"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type Handler struct {
	service treatmentService.TreatmentServicer
}

func NewHandler(service treatmentService.TreatmentServicer) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the treatment routes. A treatment is addressed by
// its composite key; the date segment is usually sent percent-encoded.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	treatments := r.Group("/treatments")
	{
		treatments.POST("", h.CreateTreatment)
		treatments.GET("", h.ListTreatments)
		treatments.GET("/:date/:patientId/:doctorId", h.GetTreatment)
		treatments.PUT("/:date/:patientId/:doctorId", h.UpdateTreatment)
		treatments.DELETE("/:date/:patientId/:doctorId", h.DeleteTreatment)
	}
}

func (h *Handler) CreateTreatment(c *gin.Context) {
	var req model.CreateTreatmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	treatment, err := h.service.CreateTreatment(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(treatment))
}

func (h *Handler) GetTreatment(c *gin.Context) {
	key, ok := handler.TreatmentKey(c)
	if !ok {
		return
	}

	treatment, err := h.service.GetTreatment(c.Request.Context(), key)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(treatment))
}

func (h *Handler) UpdateTreatment(c *gin.Context) {
	key, ok := handler.TreatmentKey(c)
	if !ok {
		return
	}

	// A missing body clears the medication set.
	var req model.UpdateTreatmentRequest
	if !handler.BindOptionalJSON(c, &req) {
		return
	}

	treatment, err := h.service.UpdateTreatment(c.Request.Context(), key, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(treatment))
}

func (h *Handler) DeleteTreatment(c *gin.Context) {
	key, ok := handler.TreatmentKey(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTreatment(c.Request.Context(), key); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("Treatment deleted successfully"))
}

func (h *Handler) ListTreatments(c *gin.Context) {
	treatments, err := h.service.ListTreatments(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(treatments))
}
