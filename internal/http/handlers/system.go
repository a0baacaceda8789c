package handlers

import (
	"net/http"

	intconfig "busbooking/internal/config"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database unreachable: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK"})
}
