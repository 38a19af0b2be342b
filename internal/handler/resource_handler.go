package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/query"
	"github.com/noah-isme/ssis-api/internal/service"
	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
	"github.com/noah-isme/ssis-api/pkg/response"
)

type resourceService[T any] interface {
	Resource() service.Resource
	List(ctx context.Context, params query.Params) (*models.Page[T], error)
	Get(ctx context.Context, key string) (*T, error)
	Create(ctx context.Context, row T) (*T, error)
	Update(ctx context.Context, currentKey string, row T) (*T, error)
	Delete(ctx context.Context, key string) (*T, error)
}

// ResourceHandler exposes list/get/create/update/delete for one resource.
// It serves several resources, so its routes are described in api/swagger by hand.
type ResourceHandler[T any] struct {
	service resourceService[T]
	param   string
	filters []string
}

// NewResourceHandler constructs a ResourceHandler. param names the path parameter holding
// the natural key; filters are the extra equality filters accepted by List.
func NewResourceHandler[T any](svc resourceService[T], param string, filters ...string) *ResourceHandler[T] {
	return &ResourceHandler[T]{service: svc, param: param, filters: filters}
}

// Param returns the path parameter name, e.g. "id".
func (h *ResourceHandler[T]) Param() string {
	return h.param
}

// List handles GET /<resource>?page=&limit=&query=&filterBy=&sortBy=&sortDesc=.
func (h *ResourceHandler[T]) List(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), h.listParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

func (h *ResourceHandler[T]) listParams(c *gin.Context) query.Params {
	params := query.Params{
		Page:     1,
		Limit:    query.DefaultLimit,
		Search:   strings.TrimSpace(c.Query("query")),
		FilterBy: c.DefaultQuery("filterBy", "All"),
		SortBy:   c.Query("sortBy"),
		SortDesc: strings.EqualFold(strings.TrimSpace(c.Query("sortDesc")), "true"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		params.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		params.Limit = limit
	}
	if len(h.filters) > 0 {
		params.Filters = make(map[string]string, len(h.filters))
		for _, name := range h.filters {
			if value := strings.TrimSpace(c.Query(name)); value != "" {
				params.Filters[name] = value
			}
		}
	}
	return params
}

// Get handles GET /<resource>/:key.
func (h *ResourceHandler[T]) Get(c *gin.Context) {
	row, err := h.service.Get(c.Request.Context(), c.Param(h.param))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, row)
}

// Create handles POST /<resource>.
func (h *ResourceHandler[T]) Create(c *gin.Context) {
	var row T
	if !bindJSON(c, &row) {
		return
	}
	created, err := h.service.Create(c.Request.Context(), row)
	if err != nil {
		response.Error(c, err)
		return
	}
	resource := h.service.Resource()
	response.Created(c, resource.CreatedMessage(), resource.Key, created)
}

// Update handles PUT /<resource>/:key. The body may carry a new natural key.
func (h *ResourceHandler[T]) Update(c *gin.Context) {
	var row T
	if !bindJSON(c, &row) {
		return
	}
	updated, err := h.service.Update(c.Request.Context(), c.Param(h.param), row)
	if err != nil {
		response.Error(c, err)
		return
	}
	resource := h.service.Resource()
	response.Mutation(c, http.StatusOK, resource.UpdatedMessage(), resource.Key, updated)
}

// Delete handles DELETE /<resource>/:key and returns the deleted row.
func (h *ResourceHandler[T]) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param(h.param))
	if err != nil {
		response.Error(c, err)
		return
	}
	resource := h.service.Resource()
	response.Mutation(c, http.StatusOK, resource.DeletedMessage(), resource.Key, deleted)
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}
