package handlers

import (
	"net/http"

	"busbooking/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/buses
func GetBuses(c *gin.Context) {
	buses, err := busService(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(buses), "buses": buses})
}

// GET /api/buses/:id
func GetBusByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	bus, err := busService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bus": bus})
}

// GET /api/buses/:id/availability?date=YYYY-MM-DD
func GetBusAvailability(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	seats, err := bookingService(c).Availability(c.Request.Context(), id, c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"busId":          id,
		"date":           c.Query("date"),
		"count":          len(seats),
		"seatsAvailable": seats,
	})
}

// POST /api/buses
func CreateBus(c *gin.Context) {
	var bus models.Bus
	if !BindJSONOrError(c, &bus) {
		return
	}
	if err := busService(c).Create(c.Request.Context(), &bus); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "bus created", "bus": bus})
}

// PUT /api/buses/:id
func UpdateBus(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var upd models.BusUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	bus, err := busService(c).Update(c.Request.Context(), id, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bus updated", "bus": bus})
}

// DELETE /api/buses/:id
func DeleteBus(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	if err := busService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bus deleted"})
}
