package routes

import (
	"github.com/gdevgproject/shopsphere/controllers"
	"github.com/gdevgproject/shopsphere/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes registers the storefront routes. Cart and checkout run
// behind optional auth: a bearer token selects the user's cart, the
// X-Device-ID header selects a guest cart.
func initUserRoutes(api *gin.RouterGroup) {
	api.POST("/register", controllers.RegisterUser)
	api.POST("/login", controllers.LoginUser)
	api.POST("/logout", middleware.AuthMiddleware(), controllers.LogoutUser)

	// Public catalog
	products := api.Group("/products")
	{
		products.GET("", controllers.ListProducts)
		products.GET("/:id", controllers.GetProduct)
	}
	api.GET("/categories", controllers.ListCategories)

	// Cart works for users and guests alike
	cart := api.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware())
	{
		cart.GET("", controllers.GetCart)
		cart.POST("/items", controllers.AddToCart)
		cart.PUT("/items", controllers.UpdateCartItem)
		cart.DELETE("/items", controllers.RemoveCartItem)
		cart.DELETE("", controllers.ClearCart)
	}

	// Checkout and discount preview, also open to guests
	checkout := api.Group("/checkout")
	checkout.Use(middleware.OptionalAuthMiddleware())
	{
		checkout.GET("/summary", controllers.GetCheckoutSummary)
		checkout.POST("/discount/preview", controllers.PreviewDiscount)
		checkout.POST("/order", controllers.PlaceOrder)
	}

	// Order history requires a logged-in user
	orders := api.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	{
		orders.GET("", controllers.ListOrders)
		orders.GET("/:id", controllers.GetOrderDetails)
		orders.POST("/:id/cancel", controllers.CancelOrder)
		orders.POST("/:id/confirm", controllers.ConfirmOrderReceipt)
		orders.GET("/:id/invoice", controllers.DownloadInvoice)
	}

	// Access-token order paths. Optional auth lets a logged-in owner be
	// attributed as the owner rather than as an anonymous token holder.
	tokenOrders := api.Group("/orders/token")
	tokenOrders.Use(middleware.OptionalAuthMiddleware())
	{
		tokenOrders.GET("/:token", controllers.GetOrderByToken)
		tokenOrders.POST("/:token/cancel", controllers.CancelOrderByToken)
		tokenOrders.POST("/:token/confirm", controllers.ConfirmOrderReceiptByToken)
		tokenOrders.GET("/:token/invoice", controllers.DownloadInvoiceByToken)
	}
}
