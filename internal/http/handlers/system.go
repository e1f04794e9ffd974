package handlers

import (
	"net/http"

	intconfig "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/config"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/repositories"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "courier backend running"})
}

func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database not connected"})
		return
	}
	if !repositories.HasCoreTables(intconfig.DB) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "core tables missing"})
		return
	}
	var count int
	if err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM bookings").Scan(&count); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "bookings_in_db": count})
}
