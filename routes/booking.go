package routes

import (
	"fixmate/handlers"
	"fixmate/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())

		api.POST("/create", h.CreateBooking)
		api.PUT("/update-status/:bookingId", h.UpdateStatus)
		api.POST("/reschedule/:bookingId", h.Reschedule)
		api.POST("/verify-job-code/:bookingId", middleware.RequireRole("worker", "admin"), h.VerifyJobCode)

		api.GET("/all", middleware.RequireRole("admin"), h.AllBookings)
		api.GET("/my-bookings", h.MyBookings)
		api.GET("/assigned-bookings", middleware.RequireRole("worker", "admin"), h.AssignedBookings)
		api.GET("/recent", middleware.RequireRole("worker", "admin"), h.RecentAssignedBookings)
		api.GET("/:bookingId", h.GetBooking)
	}
}
