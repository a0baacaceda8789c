package handlers

import (
	"net/http"
	"strconv"

	"busbooking/internal/http/middleware"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	// The booking always belongs to the authenticated caller.
	req.UserID = middleware.GetUserID(c)

	booking, err := bookingService(c).Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "booking created", "booking": booking})
}

// GET /api/bookings (admin)
func GetAllBookings(c *gin.Context) {
	bookings, err := bookingService(c).ListAll(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(bookings), "bookings": bookings})
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	booking, err := bookingService(c).GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !mayAccessBooking(c, booking.UserID) {
		respondError(c, http.StatusForbidden, "forbidden", "booking belongs to another user", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// PUT /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	svc := bookingService(c)

	booking, err := svc.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !mayAccessBooking(c, booking.UserID) {
		respondError(c, http.StatusForbidden, "forbidden", "booking belongs to another user", nil)
		return
	}

	cancelled, err := svc.Cancel(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled", "booking": cancelled})
}

// GET /api/bookings/:id/e-ticket
func GetBookingETicket(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	booking, err := bookingService(c).GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !mayAccessBooking(c, booking.UserID) {
		respondError(c, http.StatusForbidden, "forbidden", "booking belongs to another user", nil)
		return
	}

	pdf, filename, err := docsService(c).GenerateETicket(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/bookings/:id/invoice
func GetBookingInvoice(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	booking, err := bookingService(c).GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !mayAccessBooking(c, booking.UserID) {
		respondError(c, http.StatusForbidden, "forbidden", "booking belongs to another user", nil)
		return
	}

	pdf, filename, err := docsService(c).GenerateInvoice(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/users/:id/bookings
func GetUserBookings(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "invalid user id", nil)
		return
	}
	if !mayAccessBooking(c, userID) {
		respondError(c, http.StatusForbidden, "forbidden", "bookings belong to another user", nil)
		return
	}

	bookings, err := bookingService(c).ListByUser(c.Request.Context(), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(bookings), "bookings": bookings})
}

// mayAccessBooking allows the owning user and admins.
func mayAccessBooking(c *gin.Context, ownerID int64) bool {
	if middleware.GetRole(c) == "admin" {
		return true
	}
	return middleware.GetUserID(c) == ownerID
}
