package billing

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"taxi24/internal/domain"
)

// PDFRenderer renders bills as PDF documents.
type PDFRenderer struct{}

// NewPDFRenderer creates a new PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the PDF bytes for a completed trip's bill.
func (r *PDFRenderer) Render(trip *domain.CompletedTrip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Taxi24 - Factura")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Factura No. %s", uuid.New().String()))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Viaje No. %d", trip.ID))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Detalle del viaje")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 10)
	rows := [][2]string{
		{"Conductor", trip.DriverGivenName},
		{"Pasajero", trip.PassengerGivenName},
		{"Inicio", trip.StartDate.Format("2006-01-02 15:04:05")},
		{"Fin", trip.EndDate.Format("2006-01-02 15:04:05")},
		{"Origen", fmt.Sprintf("(%.7f, %.7f)", trip.StartLocation.Latitude, trip.StartLocation.Longitude)},
		{"Destino", fmt.Sprintf("(%.7f, %.7f)", trip.EndLocation.Latitude, trip.EndLocation.Longitude)},
		{"Distancia", fmt.Sprintf("%.2f km", trip.DistanceKm)},
	}
	for _, row := range rows {
		pdf.Cell(50, 6, row[0])
		pdf.Cell(0, 6, row[1])
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(50, 8, "Total")
	pdf.Cell(0, 8, fmt.Sprintf("%.2f %s", trip.Price, trip.PriceCurrency))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Ensure PDFRenderer implements Renderer.
var _ Renderer = (*PDFRenderer)(nil)
