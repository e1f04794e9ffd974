package handlers

import (
	"net/http"
	"strconv"

	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/http/middleware"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/repositories"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/depots
func GetDepots(c *gin.Context) {
	depots, err := repositories.DepotRepo{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"depots": depots})
}

// GET /api/depots/:id/forwardable
func GetForwardableBookings(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid depot id", nil)
		return
	}

	svc := services.TripService{RequestID: middleware.GetRequestID(c)}
	bookings, err := svc.EligibleForForwarding(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b, nil))
	}
	c.JSON(http.StatusOK, gin.H{"depot_id": id, "bookings": out})
}
