package services

import (
	"context"
	"testing"
)

func TestDocsServiceGenerate(t *testing.T) {
	loader := func(ctx context.Context, id int64) (bookingDocData, error) {
		return bookingDocData{
			BookingID:   id,
			BookingRef:  "1f2e3d4c",
			Status:      "confirmed",
			From:        "CityA",
			To:          "CityB",
			JourneyDate: "2026-09-15",
			Departure:   "10:00",
			BusName:     "Express One",
			BusNumber:   "B123",
			Passengers: []docPassenger{
				{Name: "Tester", Phone: "0800", Seat: 5},
				{Name: "Tester Two", Phone: "0801", Seat: 6},
			},
			TotalFare: 300000,
		}, nil
	}

	svc := DocsService{Loader: loader}

	pdf, filename, err := svc.GenerateETicket(context.Background(), 1)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateETicket returned empty data")
	}

	invoice, invName, err := svc.GenerateInvoice(context.Background(), 1)
	if err != nil {
		t.Fatalf("GenerateInvoice returned error: %v", err)
	}
	if len(invoice) == 0 || invName == "" {
		t.Fatalf("GenerateInvoice returned empty data")
	}
}
