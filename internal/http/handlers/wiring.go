package handlers

import (
	"busbooking/internal/cache"
	intconfig "busbooking/internal/config"
	"busbooking/internal/inventory"
	"busbooking/internal/repositories"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

// seatInventory is process-wide: its lock table is what serializes
// concurrent reservations per (bus, journey date), so there must be
// exactly one instance.
var seatInventory *inventory.Manager

// Setup wires the shared seat inventory manager. Must run once before
// the router serves traffic.
func Setup(env intconfig.Env) {
	seatInventory = inventory.NewManager(
		repositories.BookingRepo{},
		repositories.RouteRepo{},
		env.SeatLockWait,
	)
}

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Inventory: seatInventory,
		Repo:      repositories.BookingRepo{},
		Cache:     cache.Availability{Client: intconfig.Redis},
		RequestID: requestID(c),
	}
}

func busService(c *gin.Context) services.BusService {
	return services.BusService{
		Repo:      repositories.BusRepo{},
		Bookings:  repositories.BookingRepo{},
		RequestID: requestID(c),
	}
}

func routeService(c *gin.Context) services.RouteService {
	return services.RouteService{
		Repo:      repositories.RouteRepo{},
		Buses:     repositories.BusRepo{},
		RequestID: requestID(c),
	}
}

func docsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		Bookings:  repositories.BookingRepo{},
		Routes:    repositories.RouteRepo{},
		Buses:     repositories.BusRepo{},
		RequestID: requestID(c),
	}
}
