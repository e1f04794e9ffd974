package handlers

import (
	"net/http"
	"strconv"

	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain/models"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/http/middleware"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/repositories"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type packageLineDTO struct {
	ID        int64  `json:"id,omitempty"`
	PackageID int64  `json:"package_id,omitempty"`
	SizeText  string `json:"size_text,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

type receiverDTO struct {
	ID       int64            `json:"id,omitempty"`
	Name     string           `json:"name"`
	Phone    string           `json:"phone,omitempty"`
	Address  string           `json:"address,omitempty"`
	Packages []packageLineDTO `json:"packages"`
}

type createBookingRequest struct {
	OriginDepotID  int64         `json:"origin_depot_id"`
	DestDepotID    int64         `json:"dest_depot_id"`
	SenderName     string        `json:"sender_name"`
	SenderPhone    string        `json:"sender_phone"`
	PaymentMethod  string        `json:"payment_method"`
	DeliveryType   string        `json:"delivery_type"`
	DeliveryCharge int64         `json:"delivery_charge"`
	Receivers      []receiverDTO `json:"receivers"`
}

type bookingResponse struct {
	ID                int64         `json:"id"`
	ReceiptNo         string        `json:"receipt_no"`
	OriginDepotID     int64         `json:"origin_depot_id"`
	DestDepotID       int64         `json:"dest_depot_id"`
	SenderName        string        `json:"sender_name"`
	SenderPhone       string        `json:"sender_phone,omitempty"`
	PaymentMethod     string        `json:"payment_method"`
	DeliveryType      string        `json:"delivery_type"`
	DeliveryCharge    int64         `json:"delivery_charge"`
	Subtotal          int64         `json:"subtotal"`
	Total             int64         `json:"total"`
	Status            string        `json:"status"`
	TripID            int64         `json:"trip_id,omitempty"`
	CurrentLocationID int64         `json:"current_location_depot_id,omitempty"`
	BookedAt          string        `json:"booked_at,omitempty"`
	DeliveredAt       string        `json:"delivered_at,omitempty"`
	Receivers         []receiverDTO `json:"receivers,omitempty"`
}

func toBookingResponse(b models.Booking, receivers []models.Receiver) bookingResponse {
	resp := bookingResponse{
		ID:                b.ID,
		ReceiptNo:         b.ReceiptNo,
		OriginDepotID:     b.OriginDepotID,
		DestDepotID:       b.DestDepotID,
		SenderName:        b.SenderName,
		SenderPhone:       b.SenderPhone,
		PaymentMethod:     b.PaymentMethod,
		DeliveryType:      b.DeliveryType,
		DeliveryCharge:    b.DeliveryCharge,
		Subtotal:          b.Subtotal,
		Total:             b.Total,
		Status:            b.Status,
		TripID:            b.TripID,
		CurrentLocationID: b.CurrentLocationID,
		BookedAt:          b.BookedAt,
		DeliveredAt:       b.DeliveredAt,
	}
	for _, rc := range receivers {
		dto := receiverDTO{ID: rc.ID, Name: rc.Name, Phone: rc.Phone, Address: rc.Address}
		for _, pl := range rc.Packages {
			dto.Packages = append(dto.Packages, packageLineDTO{
				ID:        pl.ID,
				PackageID: pl.PackageID,
				SizeText:  pl.SizeText,
				Quantity:  pl.Quantity,
				UnitPrice: pl.UnitPrice,
			})
		}
		resp.Receivers = append(resp.Receivers, dto)
	}
	return resp
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	input := models.BookingInput{
		OriginDepotID:  req.OriginDepotID,
		DestDepotID:    req.DestDepotID,
		SenderName:     req.SenderName,
		SenderPhone:    req.SenderPhone,
		PaymentMethod:  req.PaymentMethod,
		DeliveryType:   req.DeliveryType,
		DeliveryCharge: req.DeliveryCharge,
	}
	for _, rc := range req.Receivers {
		rin := models.ReceiverInput{Name: rc.Name, Phone: rc.Phone, Address: rc.Address}
		for _, pl := range rc.Packages {
			rin.Packages = append(rin.Packages, models.PackageLineInput{
				PackageID: pl.PackageID,
				SizeText:  pl.SizeText,
				Quantity:  pl.Quantity,
				UnitPrice: pl.UnitPrice,
			})
		}
		input.Receivers = append(input.Receivers, rin)
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	created, err := svc.Create(input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(created, nil))
}

// GET /api/bookings/:receipt
func GetBooking(c *gin.Context) {
	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	b, receivers, err := svc.GetByReceipt(c.Param("receipt"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b, receivers))
}

type updateStatusRequest struct {
	Status string `json:"status"`
	// Strict restricts completion detection to managed-depot,
	// non-pickup bookings.
	Strict bool `json:"strict,omitempty"`
}

// PUT /api/bookings/:receipt/status
func UpdateBookingStatus(c *gin.Context) {
	var req updateStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	reqID := middleware.GetRequestID(c)

	bookingSvc := services.BookingService{RequestID: reqID}
	b, _, err := bookingSvc.GetByReceipt(c.Param("receipt"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if req.Status == string(domain.BookingDelivered) {
		tripSvc := services.TripService{RequestID: reqID}
		err = tripSvc.MarkDelivered(b.ID, req.Strict)
	} else {
		err = repositories.BookingRepo{}.UpdateStatus(b.ID, req.Status)
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated", "receipt_no": b.ReceiptNo, "status": req.Status})
}

type updateLineRequest struct {
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

// PUT /api/package-lines/:id
func UpdatePackageLine(c *gin.Context) {
	lineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || lineID <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid line id", nil)
		return
	}
	var req updateLineRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	if err := svc.UpdatePackageLine(lineID, req.Quantity, req.UnitPrice); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "package line updated"})
}

// DELETE /api/package-lines/:id
func DeletePackageLine(c *gin.Context) {
	lineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || lineID <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid line id", nil)
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	if err := svc.DeletePackageLine(lineID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "package line deleted"})
}
