package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/evimeria/catalog-service/internal/apperr"
	"github.com/evimeria/catalog-service/internal/auth"
	"github.com/evimeria/catalog-service/internal/category"
	"github.com/evimeria/catalog-service/internal/category/dto"
	"github.com/evimeria/catalog-service/internal/httperr"
	"github.com/evimeria/catalog-service/internal/media"
)

type Handler struct {
	uc       category.UseCase
	resolver *media.Resolver
	logger   *zap.Logger
}

func NewHandler(uc category.UseCase, resolver *media.Resolver, log *zap.Logger) *Handler {
	return &Handler{uc: uc, resolver: resolver, logger: log}
}

// ParsePage reads page/page_size query params. Missing params select the
// defaults downstream; malformed ones are a client error.
func ParsePage(c *gin.Context) (int, int, error) {
	page, err := parseIntParam(c, "page")
	if err != nil {
		return 0, 0, err
	}
	pageSize, err := parseIntParam(c, "page_size")
	if err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

func parseIntParam(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validationf("%s must be an integer", name)
	}
	return v, nil
}

func (h *Handler) List(c *gin.Context) {
	page, pageSize, err := ParsePage(c)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}

	viewer := auth.FromContext(c.Request.Context())
	cats, count, err := h.uc.List(c.Request.Context(), viewer, page, pageSize)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   count,
		"results": dto.FromModels(cats, h.resolver),
	})
}

func (h *Handler) Get(c *gin.Context) {
	viewer := auth.FromContext(c.Request.Context())
	cat, err := h.uc.GetBySlug(c.Request.Context(), viewer, c.Param("slug"))
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModel(cat, h.resolver))
}

func (h *Handler) Create(c *gin.Context) {
	var input dto.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	cat, err := h.uc.Create(c.Request.Context(), &input)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModel(cat, h.resolver))
}

func (h *Handler) Update(c *gin.Context) {
	var input dto.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	cat, err := h.uc.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModel(cat, h.resolver))
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.uc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
