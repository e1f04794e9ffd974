package handlers

import (
	"net/http"

	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/http/middleware"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/repositories"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type advancePaymentRequest struct {
	BookingID int64  `json:"booking_id"`
	Amount    int64  `json:"amount"`
	Method    string `json:"method"`
}

// POST /api/payments/advance
func CreateAdvancePayment(c *gin.Context) {
	var req advancePaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.PaymentService{RequestID: middleware.GetRequestID(c)}
	payment, err := svc.RecordAdvance(req.BookingID, req.Amount, req.Method)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"receipt_no": payment.ReceiptNo,
		"booking_id": payment.BookingID,
		"amount":     payment.Amount,
		"method":     payment.Method,
	})
}

// GET /api/bookings/:receipt/payments
func GetBookingPayments(c *gin.Context) {
	b, err := repositories.BookingRepo{}.GetByReceipt(c.Param("receipt"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	payments, err := repositories.PaymentRepo{}.ListByBooking(b.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"receipt_no": b.ReceiptNo, "payments": payments})
}
