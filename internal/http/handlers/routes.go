package handlers

import (
	"net/http"

	"busbooking/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/routes/search?from=&to=&journeyDate=
func SearchRoutes(c *gin.Context) {
	routes, err := routeService(c).Search(c.Request.Context(),
		c.Query("from"), c.Query("to"), c.Query("journeyDate"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(routes), "routes": routes})
}

// GET /api/routes/:id
func GetRouteByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	route, err := routeService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

// POST /api/routes
func CreateRoute(c *gin.Context) {
	var route models.Route
	if !BindJSONOrError(c, &route) {
		return
	}
	if err := routeService(c).Create(c.Request.Context(), &route); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "route created", "route": route})
}

// PUT /api/routes/:id
func UpdateRoute(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var upd models.RouteUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	route, err := routeService(c).Update(c.Request.Context(), id, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route updated", "route": route})
}

// DELETE /api/routes/:id
func DeleteRoute(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	if err := routeService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route deleted"})
}
