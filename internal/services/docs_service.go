package services

import (
	"bytes"
	"context"
	"fmt"

	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders booking e-tickets and invoices as PDFs.
type DocsService struct {
	Bookings  repositories.BookingRepo
	Routes    repositories.RouteRepo
	Buses     repositories.BusRepo
	RequestID string
	// Loader overrides data loading in tests.
	Loader func(context.Context, int64) (bookingDocData, error)
}

type docPassenger struct {
	Name  string
	Phone string
	Seat  int
}

type bookingDocData struct {
	BookingID   int64
	BookingRef  string
	Status      string
	From        string
	To          string
	JourneyDate string
	Departure   string
	BusName     string
	BusNumber   string
	Passengers  []docPassenger
	TotalFare   int64
}

func (s DocsService) GenerateETicket(ctx context.Context, bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(data)
}

func (s DocsService) GenerateInvoice(ctx context.Context, bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("booking_id=%d", bookingID))
	return buildInvoicePDF(data)
}

func (s DocsService) loadBookingDocData(ctx context.Context, bookingID int64) (bookingDocData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, bookingID)
	}

	booking, err := s.Bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return bookingDocData{}, err
	}

	out := bookingDocData{
		BookingID:   booking.ID,
		BookingRef:  booking.Ref,
		Status:      string(booking.Status),
		JourneyDate: booking.JourneyDate,
		TotalFare:   booking.TotalFare,
	}
	for _, p := range booking.Passengers {
		out.Passengers = append(out.Passengers, docPassenger{
			Name:  p.Name,
			Phone: p.Phone,
			Seat:  p.SeatNumber,
		})
	}

	if route, err := s.Routes.GetByID(ctx, booking.RouteID); err == nil {
		out.From = route.From
		out.To = route.To
		out.Departure = route.DepartureTime
	}
	if bus, err := s.Buses.GetByID(ctx, booking.BusID); err == nil {
		out.BusName = bus.BusName
		out.BusNumber = bus.BusNumber
	}
	return out, nil
}

func buildETicketPDF(data bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "E-Ticket", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Booking ref: %s", data.BookingRef), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeRow := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	writeRow("Route", fmt.Sprintf("%s - %s", data.From, data.To))
	writeRow("Journey date", data.JourneyDate)
	writeRow("Departure", data.Departure)
	writeRow("Bus", fmt.Sprintf("%s (%s)", data.BusName, data.BusNumber))
	writeRow("Status", data.Status)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(20, 7, "Seat", "1", 0, "C", false, 0, "")
	pdf.CellFormat(90, 7, "Passenger", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Phone", "1", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, p := range data.Passengers {
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", p.Seat), "1", 0, "C", false, 0, "")
		pdf.CellFormat(90, 7, p.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, p.Phone, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, "Total fare: "+utils.FormatAmount(data.TotalFare), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("eticket-%d.pdf", data.BookingID), nil
}

func buildInvoicePDF(data bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Invoice", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Booking ref: %s", data.BookingRef), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	seatCount := len(data.Passengers)
	var perSeat int64
	if seatCount > 0 {
		perSeat = data.TotalFare / int64(seatCount)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 7, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(0, 7, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(90, 7, fmt.Sprintf("Bus ticket %s - %s (%s)", data.From, data.To, data.JourneyDate), "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, fmt.Sprintf("%d", seatCount), "1", 0, "C", false, 0, "")
	pdf.CellFormat(0, 7, utils.FormatAmount(perSeat), "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(115, 7, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, utils.FormatAmount(data.TotalFare), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("invoice-%d.pdf", data.BookingID), nil
}
