package api

import (
	"log"
	stdhttp "net/http"

	intconfig "busbooking/internal/config"
	h "busbooking/internal/http/handlers"
	"busbooking/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	_ = env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Buses
		buses := api.Group("/buses")
		buses.GET("", h.GetBuses)
		buses.GET("/:id", h.GetBusByID)
		buses.GET("/:id/availability", h.GetBusAvailability)
		busAdmin := buses.Group("", middleware.RequireAuth(), middleware.RequireAdmin())
		busAdmin.POST("", h.CreateBus)
		busAdmin.PUT("/:id", h.UpdateBus)
		busAdmin.DELETE("/:id", h.DeleteBus)

		// Routes
		routes := api.Group("/routes")
		routes.GET("/search", h.SearchRoutes)
		routes.GET("/:id", h.GetRouteByID)
		routeAdmin := routes.Group("", middleware.RequireAuth(), middleware.RequireAdmin())
		routeAdmin.POST("", h.CreateRoute)
		routeAdmin.PUT("/:id", h.UpdateRoute)
		routeAdmin.DELETE("/:id", h.DeleteRoute)

		// Bookings
		bookings := api.Group("/bookings", middleware.RequireAuth())
		bookings.POST("", h.CreateBooking)
		bookings.GET("", middleware.RequireAdmin(), h.GetAllBookings)
		bookings.GET("/:id", h.GetBookingByID)
		bookings.PUT("/:id/cancel", h.CancelBooking)
		bookings.GET("/:id/e-ticket", h.GetBookingETicket)
		bookings.GET("/:id/invoice", h.GetBookingInvoice)

		// Users
		users := api.Group("/users", middleware.RequireAuth())
		users.GET("/:id/bookings", h.GetUserBookings)
	}

	return r
}
