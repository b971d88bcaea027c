package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/evimeria/catalog-service/internal/apperr"
	"github.com/evimeria/catalog-service/internal/auth"
	cathandler "github.com/evimeria/catalog-service/internal/category/handler"
	"github.com/evimeria/catalog-service/internal/httperr"
	"github.com/evimeria/catalog-service/internal/media"
	"github.com/evimeria/catalog-service/internal/product"
	"github.com/evimeria/catalog-service/internal/product/dto"
)

type Handler struct {
	uc       product.UseCase
	resolver *media.Resolver
	logger   *zap.Logger
}

func NewHandler(uc product.UseCase, resolver *media.Resolver, log *zap.Logger) *Handler {
	return &Handler{uc: uc, resolver: resolver, logger: log}
}

func parseFilters(c *gin.Context) (*dto.ProductFilters, error) {
	page, pageSize, err := cathandler.ParsePage(c)
	if err != nil {
		return nil, err
	}

	f := &dto.ProductFilters{
		CategorySlug:    c.Query("category"),
		SubCategorySlug: c.Query("subcategory"),
		Search:          c.Query("search"),
		Page:            page,
		PageSize:        pageSize,
	}

	if f.MinPrice, err = parsePriceParam(c, "min_price"); err != nil {
		return nil, err
	}
	if f.MaxPrice, err = parsePriceParam(c, "max_price"); err != nil {
		return nil, err
	}

	if raw := c.Query("featured"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, apperr.Validation("featured must be a boolean")
		}
		f.Featured = &v
	}

	if f.SortBy, err = dto.ParseSortField(c.Query("sort_by")); err != nil {
		return nil, err
	}
	if f.SortOrder, err = dto.ParseSortOrder(c.Query("sort_order")); err != nil {
		return nil, err
	}

	return f, nil
}

func parsePriceParam(c *gin.Context, name string) (*decimal.Decimal, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperr.Validationf("%s must be a number", name)
	}
	return &v, nil
}

func (h *Handler) List(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}

	viewer := auth.FromContext(c.Request.Context())
	products, count, err := h.uc.List(c.Request.Context(), viewer, filters)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   count,
		"results": dto.FromModels(products, h.resolver),
	})
}

func (h *Handler) ListByCategory(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}

	viewer := auth.FromContext(c.Request.Context())
	products, count, err := h.uc.ListByCategorySlug(c.Request.Context(), viewer, c.Param("slug"), filters)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   count,
		"results": dto.FromModels(products, h.resolver),
	})
}

func (h *Handler) ListBySubCategory(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}

	viewer := auth.FromContext(c.Request.Context())
	products, count, err := h.uc.ListBySubCategorySlug(c.Request.Context(), viewer, c.Param("slug"), filters)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   count,
		"results": dto.FromModels(products, h.resolver),
	})
}

func (h *Handler) Get(c *gin.Context) {
	viewer := auth.FromContext(c.Request.Context())
	p, err := h.uc.GetBySlug(c.Request.Context(), viewer, c.Param("slug"))
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.DetailFromModel(p, h.resolver))
}

func (h *Handler) Featured(c *gin.Context) {
	viewer := auth.FromContext(c.Request.Context())
	products, err := h.uc.Featured(c.Request.Context(), viewer)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModels(products, h.resolver))
}

func (h *Handler) Search(c *gin.Context) {
	page, pageSize, err := cathandler.ParsePage(c)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}

	viewer := auth.FromContext(c.Request.Context())
	products, count, err := h.uc.Search(c.Request.Context(), viewer, c.Query("q"), page, pageSize)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   count,
		"results": dto.FromModels(products, h.resolver),
	})
}

func (h *Handler) Create(c *gin.Context) {
	var input dto.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if input.Price.IsNegative() {
		httperr.Handle(c, h.logger, apperr.Validation("price must not be negative"))
		return
	}

	p, err := h.uc.Create(c.Request.Context(), &input)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DetailFromModel(p, h.resolver))
}

func (h *Handler) Update(c *gin.Context) {
	var input dto.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if input.Price.IsNegative() {
		httperr.Handle(c, h.logger, apperr.Validation("price must not be negative"))
		return
	}

	p, err := h.uc.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.DetailFromModel(p, h.resolver))
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.uc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AddImage(c *gin.Context) {
	var input dto.ProductImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	img, err := h.uc.AddImage(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		httperr.Handle(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ProductImageResponse{
		ID:     img.ID,
		Image:  h.resolver.URL(img.Image),
		IsMain: img.IsMain,
	})
}
