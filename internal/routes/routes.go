package routes

import (
	"github.com/gin-gonic/gin"

	cathandler "github.com/evimeria/catalog-service/internal/category/handler"
	"github.com/evimeria/catalog-service/internal/middleware"
	prodhandler "github.com/evimeria/catalog-service/internal/product/handler"
	subhandler "github.com/evimeria/catalog-service/internal/subcategory/handler"
)

type Handlers struct {
	Categories    *cathandler.Handler
	SubCategories *subhandler.Handler
	Products      *prodhandler.Handler
}

// Register wires the public catalog surface and the admin write surface.
// Every route passes through Identify so viewers are resolved uniformly;
// writes additionally require the admin capability.
func Register(r *gin.Engine, h Handlers, jwtSecret string) {
	api := r.Group("/api", middleware.Identify(jwtSecret))

	categories := api.Group("/categories")
	{
		categories.GET("/", h.Categories.List)
		categories.GET("/:slug/", h.Categories.Get)
		categories.GET("/:slug/products/", h.Products.ListByCategory)
	}

	subcategories := api.Group("/subcategories")
	{
		subcategories.GET("/", h.SubCategories.List)
		subcategories.GET("/:slug/", h.SubCategories.Get)
		subcategories.GET("/:slug/products/", h.Products.ListBySubCategory)
	}

	products := api.Group("/products")
	{
		products.GET("/", h.Products.List)
		products.GET("/featured/", h.Products.Featured)
		products.GET("/search/", h.Products.Search)
		products.GET("/:slug/", h.Products.Get)
	}

	admin := api.Group("/admin", middleware.RequireAdmin)
	{
		admin.POST("/categories/", h.Categories.Create)
		admin.PUT("/categories/:id/", h.Categories.Update)
		admin.DELETE("/categories/:id/", h.Categories.Delete)

		admin.POST("/subcategories/", h.SubCategories.Create)
		admin.PUT("/subcategories/:id/", h.SubCategories.Update)
		admin.DELETE("/subcategories/:id/", h.SubCategories.Delete)

		admin.POST("/products/", h.Products.Create)
		admin.PUT("/products/:id/", h.Products.Update)
		admin.DELETE("/products/:id/", h.Products.Delete)
		admin.POST("/products/:id/images/", h.Products.AddImage)
	}
}
