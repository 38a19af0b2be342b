package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ssis-api/internal/models"
	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
	"github.com/noah-isme/ssis-api/pkg/response"
)

type studentService interface {
	resourceService[models.Student]
	UpdateImage(ctx context.Context, studentID string, url *string) (*models.Student, error)
}

// StudentFilters are the extra equality filters accepted when listing students.
var StudentFilters = []string{"program", "year", "gender", "college"}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	*ResourceHandler[models.Student]
	students studentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{
		ResourceHandler: NewResourceHandler[models.Student](students, "id", StudentFilters...),
		students:        students,
	}
}

// UpdateImage godoc
// @Summary Set student image
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body models.StudentImageRequest true "Image payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Security BearerAuth
// @Router /students/{id}/image [patch]
func (h *StudentHandler) UpdateImage(c *gin.Context) {
	var req models.StudentImageRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ImageURL == nil || strings.TrimSpace(*req.ImageURL) == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "image_url is required"))
		return
	}
	h.writeImage(c, req.ImageURL)
}

// DeleteImage godoc
// @Summary Clear student image
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Security BearerAuth
// @Router /students/{id}/image [delete]
func (h *StudentHandler) DeleteImage(c *gin.Context) {
	h.writeImage(c, nil)
}

func (h *StudentHandler) writeImage(c *gin.Context, url *string) {
	student, err := h.students.UpdateImage(c.Request.Context(), c.Param("id"), url)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Mutation(c, http.StatusOK, "Student image updated successfully", "student", student)
}
