package main

import (
	"github.com/gin-gonic/gin"

	"collex.backend/internal/domain/entities"
	"collex.backend/internal/interfaces/http/handlers"
	"collex.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	productHandler *handlers.ProductHandler
	orderHandler   *handlers.OrderHandler
	authMiddleware gin.HandlerFunc
	optionalAuth   gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", d.authHandler.Signup)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
			auth.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)
			auth.DELETE("/me", d.authMiddleware, d.authHandler.Deactivate)
		}

		// Product routes (public browse, seller write)
		products := v1.Group("/products")
		{
			products.GET("", d.productHandler.List)
			products.GET("/mine", d.authMiddleware, d.productHandler.MyProducts)
			if d.optionalAuth != nil {
				products.GET("/:id", d.optionalAuth, d.productHandler.Get)
			} else {
				products.GET("/:id", d.productHandler.Get)
			}
			products.POST("", d.authMiddleware, d.productHandler.Submit)
			products.PUT("/:id", d.authMiddleware, d.productHandler.Update)
			products.DELETE("/:id", d.authMiddleware, d.productHandler.Withdraw)
		}

		// Order routes (protected)
		orders := v1.Group("/orders")
		orders.Use(d.authMiddleware)
		{
			orders.POST("", d.orderHandler.Place)
			orders.GET("/mine", d.orderHandler.MyOrders)
			orders.GET("/received", d.orderHandler.Received)
			orders.GET("/:id", d.orderHandler.Get)
			orders.POST("/:id/confirm", d.orderHandler.Confirm)
			orders.POST("/:id/advance", d.orderHandler.Advance)
			orders.POST("/:id/cancel", d.orderHandler.Cancel)
		}

		// Admin moderation routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireRole(string(entities.UserRoleAdmin)))
		{
			admin.GET("/products/pending", d.productHandler.PendingReview)
			admin.POST("/products/:id/approve", d.productHandler.Approve)
			admin.POST("/products/:id/reject", d.productHandler.Reject)
		}
	}
}
