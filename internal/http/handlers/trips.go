package handlers

import (
	"net/http"
	"strconv"

	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain/models"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/http/middleware"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/repositories"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type createTripRequest struct {
	DriverName    string  `json:"driver_name"`
	VehicleCode   string  `json:"vehicle_code"`
	OriginDepotID int64   `json:"origin_depot_id"`
	DestDepotID   int64   `json:"dest_depot_id"`
	IsForwarding  bool    `json:"is_forwarding"`
	BookingIDs    []int64 `json:"booking_ids"`
}

type tripResponse struct {
	ID            int64  `json:"id"`
	TripNo        string `json:"trip_no"`
	DriverName    string `json:"driver_name"`
	VehicleCode   string `json:"vehicle_code"`
	OriginDepotID int64  `json:"origin_depot_id"`
	DestDepotID   int64  `json:"dest_depot_id"`
	Status        string `json:"status"`
	IsForwarding  bool   `json:"is_forwarding"`
	CompletedAt   string `json:"completed_at,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

func toTripResponse(t models.Trip) tripResponse {
	return tripResponse{
		ID:            t.ID,
		TripNo:        t.TripNo,
		DriverName:    t.DriverName,
		VehicleCode:   t.VehicleCode,
		OriginDepotID: t.OriginDepotID,
		DestDepotID:   t.DestDepotID,
		Status:        t.Status,
		IsForwarding:  t.IsForwarding,
		CompletedAt:   t.CompletedAt,
		CreatedAt:     t.CreatedAt,
	}
}

func tripIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid trip id", nil)
		return 0, false
	}
	return id, true
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var req createTripRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.TripService{RequestID: middleware.GetRequestID(c)}
	trip, err := svc.CreateTrip(services.CreateTripInput{
		DriverName:    req.DriverName,
		VehicleCode:   req.VehicleCode,
		OriginDepotID: req.OriginDepotID,
		DestDepotID:   req.DestDepotID,
		IsForwarding:  req.IsForwarding,
		BookingIDs:    req.BookingIDs,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTripResponse(trip))
}

// GET /api/trips
func GetTrips(c *gin.Context) {
	trips, err := repositories.TripRepo{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]tripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, toTripResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{"trips": out})
}

// GET /api/trips/:id/bookings
func GetTripBookings(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	svc := services.TripService{RequestID: middleware.GetRequestID(c)}
	bookings, err := svc.BookingsForTrip(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b, nil))
	}
	c.JSON(http.StatusOK, gin.H{"trip_id": id, "bookings": out})
}

type tripStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/trips/:id/status
func UpdateTripStatus(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	var req tripStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := (repositories.TripRepo{}).UpdateStatus(id, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated", "trip_id": id, "status": req.Status})
}

// GET /api/trips/:id/manifest
func GetTripManifest(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	svc := services.ManifestService{
		TripSvc:   services.TripService{RequestID: middleware.GetRequestID(c)},
		RequestID: middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.BuildTripManifest(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
