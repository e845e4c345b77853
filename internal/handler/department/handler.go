package department

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/model"
	departmentService "github.com/jwalitptl/hospital-api/internal/service/department"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type Handler struct {
	service departmentService.DepartmentServicer
}

func NewHandler(service departmentService.DepartmentServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	departments := r.Group("/departments")
	{
		departments.POST("", h.CreateDepartment)
		departments.GET("", h.ListDepartments)
		departments.GET("/:number", h.GetDepartment)
		departments.PUT("/:number", h.UpdateDepartment)
		departments.DELETE("/:number", h.DeleteDepartment)
	}
}

func (h *Handler) CreateDepartment(c *gin.Context) {
	var req model.CreateDepartmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	department, err := h.service.CreateDepartment(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(department))
}

func (h *Handler) GetDepartment(c *gin.Context) {
	number, ok := handler.IntParam(c, "number")
	if !ok {
		return
	}

	department, err := h.service.GetDepartment(c.Request.Context(), number)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(department))
}

func (h *Handler) UpdateDepartment(c *gin.Context) {
	number, ok := handler.IntParam(c, "number")
	if !ok {
		return
	}

	var req model.UpdateDepartmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	department, err := h.service.UpdateDepartment(c.Request.Context(), number, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(department))
}

func (h *Handler) DeleteDepartment(c *gin.Context) {
	number, ok := handler.IntParam(c, "number")
	if !ok {
		return
	}

	if err := h.service.DeleteDepartment(c.Request.Context(), number); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("Department deleted successfully"))
}

func (h *Handler) ListDepartments(c *gin.Context) {
	departments, err := h.service.ListDepartments(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(departments))
}
