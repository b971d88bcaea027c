package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/evimeria/catalog-service/internal/auth"
	cathandler "github.com/evimeria/catalog-service/internal/category/handler"
	"github.com/evimeria/catalog-service/internal/httperr"
	"github.com/evimeria/catalog-service/internal/subcategory"
	"github.com/evimeria/catalog-service/internal/subcategory/dto"
)

type Handler struct {
	uc     subcategory.UseCase
	logger *zap.Logger
}

func NewHandler(uc subcategory.UseCase, log *zap.Logger) *Handler {
	return &Handler{uc: uc, logger: log}
}

func (h *Handler) List(c *gin.Context) {
	page, pageSize, err := cathandler.ParsePage(c)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}

	viewer := auth.FromContext(c.Request.Context())
	subs, count, err := h.uc.List(c.Request.Context(), viewer, c.Query("category"), page, pageSize)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   count,
		"results": dto.FromModels(subs),
	})
}

func (h *Handler) Get(c *gin.Context) {
	viewer := auth.FromContext(c.Request.Context())
	sub, err := h.uc.GetBySlug(c.Request.Context(), viewer, c.Param("slug"))
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModel(sub))
}

func (h *Handler) Create(c *gin.Context) {
	var input dto.CreateSubCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	sub, err := h.uc.Create(c.Request.Context(), &input)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModel(sub))
}

func (h *Handler) Update(c *gin.Context) {
	var input dto.UpdateSubCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	sub, err := h.uc.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModel(sub))
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.uc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
