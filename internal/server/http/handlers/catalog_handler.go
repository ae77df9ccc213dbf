package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raidergo/checkout/internal/domain/model"
	"github.com/raidergo/checkout/internal/server/http/dto"
)

// CatalogHandler serves the public course catalog.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/courses.
func (h *CatalogHandler) List(c *gin.Context) {
	courses, err := h.facade.Courses(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(courses) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		response = append(response, toCourseResponse(course))
	}

	c.JSON(http.StatusOK, response)
}

func toCourseResponse(course model.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:       course.ID,
		Title:    course.Title,
		Price:    course.Price,
		Currency: course.Currency,
	}
}
