package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain/models"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ManifestService renders the printable road manifest for a trip. The
// booking order comes from the reconciling read, newest first.
type ManifestService struct {
	TripSvc   TripService
	RequestID string
}

func (s ManifestService) BuildTripManifest(tripID int64) ([]byte, string, error) {
	trip, err := s.TripSvc.trips().GetByID(tripID)
	if err != nil {
		return nil, "", err
	}
	bookings, err := s.TripSvc.BookingsForTrip(tripID)
	if err != nil {
		return nil, "", err
	}

	depots := s.TripSvc.depots()
	origin, _ := depots.GetByID(trip.OriginDepotID)
	dest, _ := depots.GetByID(trip.DestDepotID)

	utils.LogEvent(s.RequestID, "manifest", "build", fmt.Sprintf("trip_id=%d bookings=%d", tripID, len(bookings)))
	return buildManifestPDF(trip, origin, dest, bookings)
}

func buildManifestPDF(trip models.Trip, origin, dest models.Depot, bookings []models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Trip Manifest", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "ROAD TRIP MANIFEST")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	head := []string{
		fmt.Sprintf("Trip No   : %s", safeText(trip.TripNo, "-")),
		fmt.Sprintf("Route     : %s -> %s", safeText(origin.Name, "-"), safeText(dest.Name, "-")),
		fmt.Sprintf("Driver    : %s", safeText(trip.DriverName, "-")),
		fmt.Sprintf("Vehicle   : %s", safeText(trip.VehicleCode, "-")),
		fmt.Sprintf("Status    : %s", safeText(trip.Status, "-")),
	}
	if trip.IsForwarding {
		head = append(head, "Type      : forwarding")
	}
	for _, line := range head {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(40, 7, "Receipt No", "1", 0, "", false, 0, "")
	pdf.CellFormat(55, 7, "Sender", "1", 0, "", false, 0, "")
	pdf.CellFormat(45, 7, "Payment", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 7, "Status", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 7, "Total", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	var grand int64
	for _, b := range bookings {
		payment := b.PaymentMethod
		if payment == "to_pay" {
			payment = "to-pay (collect on delivery)"
		}
		pdf.CellFormat(40, 7, b.ReceiptNo, "1", 0, "", false, 0, "")
		pdf.CellFormat(55, 7, safeText(b.SenderName, "-"), "1", 0, "", false, 0, "")
		pdf.CellFormat(45, 7, payment, "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 7, b.Status, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, utils.FormatRupees(b.Total), "1", 1, "R", false, 0, "")
		grand += b.Total
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(175, 7, "Grand Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, utils.FormatRupees(grand), "1", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, fmt.Sprintf("Parcels listed: %d. Driver signature confirms loading of all listed parcels.", len(bookings)), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("MANIFEST_%s.pdf", utils.SafeFilenamePart(trip.TripNo))
	return buf.Bytes(), filename, nil
}

func safeText(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
