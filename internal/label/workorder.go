package label

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"torino-tile-backend/internal/store"
)

// WorkOrder renders a one-page installer work order for a project. The QR in
// the top right encodes "finish/{id}" so the installer's phone can open the
// job-completion page on site.
func WorkOrder(project *store.Project, tile *store.Tile) ([]byte, error) {
	if project == nil {
		return nil, fmt.Errorf("project is required")
	}
	if tile == nil {
		return nil, fmt.Errorf("tile is required")
	}

	png, err := qrcode.Encode(fmt.Sprintf("finish/%d", project.ID), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR: %w", err)
	}

	pdf := gofpdf.New("P", "in", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(1, 1, "Work Order")

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("finish", opts, bytes.NewReader(png))
	pdf.ImageOptions("finish", 5, 1, 1, 1, false, opts, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	y := 1.5
	line := func(s string) {
		pdf.Text(1, y, s)
		y += 0.2
	}
	line(fmt.Sprintf("Tile: %s", tile.Name))
	line(fmt.Sprintf("Size: %s", tile.Size))
	line(fmt.Sprintf("Sq Ft: %g", project.SqFt))
	line(fmt.Sprintf("Address: %s", project.Address))
	line(fmt.Sprintf("Date: %s", project.InstallDate))
	line(fmt.Sprintf("Installer Fee: $%.2f", project.InstallerFee))
	if project.Budget > 0 {
		line(fmt.Sprintf("Budget: $%.2f", project.Budget))
	}
	if project.Schedule != "" {
		line(fmt.Sprintf("Schedule: %s...", truncate(project.Schedule, 50)))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render work order: %w", err)
	}
	return buf.Bytes(), nil
}
