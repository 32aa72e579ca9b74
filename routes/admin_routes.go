package routes

import (
	"github.com/gdevgproject/shopsphere/controllers"
	"github.com/gdevgproject/shopsphere/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes registers the back-office routes
func initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	admin.POST("/login", controllers.AdminLogin)

	protected := admin.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		products := protected.Group("/products")
		{
			products.POST("", controllers.CreateProduct)
			products.PUT("/:id", controllers.UpdateProduct)
			products.DELETE("/:id", controllers.DeleteProduct)
			products.PUT("/variants/:variantId", controllers.UpdateProductVariant)
		}
		protected.POST("/categories", controllers.CreateCategory)

		discounts := protected.Group("/discounts")
		{
			discounts.POST("", controllers.CreateDiscount)
			discounts.GET("", controllers.ListDiscounts)
			discounts.PUT("/:id", controllers.UpdateDiscount)
			discounts.DELETE("/:id", controllers.DisableDiscount)
		}

		orders := protected.Group("/orders")
		{
			orders.GET("", controllers.AdminListOrders)
			orders.GET("/:id", controllers.AdminGetOrder)
			orders.PUT("/:id/status", controllers.UpdateOrderStatus)
			orders.PUT("/:id/payment-status", controllers.UpdatePaymentStatus)
		}

		activity := protected.Group("/activity")
		{
			activity.GET("", controllers.ListActivityLogs)
			activity.GET("/export", controllers.ExportActivityLogs)
		}
	}
}
