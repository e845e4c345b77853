package query

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/model"
	queryService "github.com/jwalitptl/hospital-api/internal/service/query"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

// Handler serves the reporting routes. Internal failures on these routes
// carry the underlying database message back to the caller.
type Handler struct {
	service queryService.QueryServicer
}

func NewHandler(service queryService.QueryServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	queries := r.Group("/queries")
	{
		queries.GET("/doctor-shifts", h.DoctorShifts)
		queries.GET("/department-medications", h.DepartmentMedications)
		queries.GET("/nurses", h.Nurses)
		queries.GET("/departments", h.Departments)
		queries.GET("/doctors", h.Doctors)
		queries.GET("/doctor-drug-usage/:doctorId", h.DoctorDrugUsage)
		queries.POST("/assign-nurse", h.AssignNurse)
		queries.POST("/call-doctor-drug-usage", h.CalculateDoctorDrugUsage)
		queries.GET("/people/:id/roles", h.PersonRoles)
	}
}

func (h *Handler) DoctorShifts(c *gin.Context) {
	shifts, err := h.service.DoctorShifts(c.Request.Context())
	if err != nil {
		httputil.RespondWithErrorDetail(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(shifts))
}

func (h *Handler) DepartmentMedications(c *gin.Context) {
	usage, err := h.service.DepartmentMedications(c.Request.Context())
	if err != nil {
		httputil.RespondWithErrorDetail(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(usage))
}

func (h *Handler) Nurses(c *gin.Context) {
	nurses, err := h.service.Nurses(c.Request.Context())
	if err != nil {
		httputil.RespondWithErrorDetail(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nurses))
}

func (h *Handler) Departments(c *gin.Context) {
	departments, err := h.service.Departments(c.Request.Context())
	if err != nil {
		httputil.RespondWithErrorDetail(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(departments))
}

func (h *Handler) Doctors(c *gin.Context) {
	doctors, err := h.service.Doctors(c.Request.Context())
	if err != nil {
		httputil.RespondWithErrorDetail(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) DoctorDrugUsage(c *gin.Context) {
	doctorID, ok := handler.PathParam(c, "doctorId")
	if !ok {
		return
	}

	usage, err := h.service.DoctorDrugUsage(c.Request.Context(), model.ID(doctorID))
	if err != nil {
		httputil.RespondWithErrorDetail(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(usage))
}

func (h *Handler) AssignNurse(c *gin.Context) {
	var req model.AssignNurseRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	if err := h.service.AssignNurse(c.Request.Context(), &req); err != nil {
		httputil.RespondWithErrorDetail(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("Nurse assigned successfully"))
}

func (h *Handler) CalculateDoctorDrugUsage(c *gin.Context) {
	var req model.DoctorDrugUsageRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	if err := h.service.CalculateDoctorDrugUsage(c.Request.Context(), req.DoctorID); err != nil {
		httputil.RespondWithErrorDetail(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("Doctor drug usage calculated"))
}

func (h *Handler) PersonRoles(c *gin.Context) {
	id, ok := handler.PathParam(c, "id")
	if !ok {
		return
	}

	roles, err := h.service.PersonRoles(c.Request.Context(), model.ID(id))
	if err != nil {
		httputil.RespondWithErrorDetail(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(roles))
}
