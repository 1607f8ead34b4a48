package router

import (
	"laundryTrack/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.AuthHandler) {
	auth := api.Group("/auth")

	auth.POST("/otp", handler.SendOtp)
	auth.POST("/verify", handler.VerifyOtp)
	auth.GET("/session", handler.GetSession)
	auth.POST("/logout", handler.Logout)
}

func SetupShopRoutes(api *echo.Group, handler *rest.ShopHandler, authRequired echo.MiddlewareFunc) {
	shops := api.Group("/shops", authRequired)

	shops.POST("", handler.Create)
	shops.GET("", handler.List)
	shops.GET("/active", handler.ListActive)
	shops.PUT("/:id", handler.Update)
	shops.PATCH("/:id/active", handler.ToggleActive)
	shops.PATCH("/:id/default", handler.SetDefault)
}

func SetupClothTypeRoutes(api *echo.Group, handler *rest.ClothTypeHandler, authRequired echo.MiddlewareFunc) {
	clothTypes := api.Group("/cloth-types", authRequired)

	clothTypes.POST("", handler.Create)
	clothTypes.GET("", handler.List)
	clothTypes.GET("/active", handler.ListActive)
	clothTypes.PUT("/:id", handler.Update)
	clothTypes.PATCH("/:id/active", handler.ToggleActive)
}

func SetupLoadRoutes(api *echo.Group, handler *rest.LoadHandler, authRequired echo.MiddlewareFunc) {
	loads := api.Group("/loads", authRequired)

	loads.POST("", handler.Create)
	loads.GET("", handler.List)
	loads.GET("/rates/latest", handler.GetLastRates)
	loads.GET("/:id", handler.GetByID)
	loads.PUT("/:id", handler.Update)
	loads.DELETE("/:id", handler.Delete)
	loads.PATCH("/:id/delivered", handler.MarkDelivered)
	loads.DELETE("/:id/delivered", handler.UnmarkDelivered)
}

func SetupAnalyticsRoutes(api *echo.Group, handler *rest.AnalyticsHandler, authRequired echo.MiddlewareFunc) {
	analytics := api.Group("/analytics", authRequired)

	analytics.GET("/expenditure", handler.GetExpenditure)
}
