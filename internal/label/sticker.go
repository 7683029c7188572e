// Package label renders the showroom's printable artifacts: QR sticker
// sheets for tile boxes and per-project work orders.
package label

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"torino-tile-backend/internal/store"
)

// Sticker sheet layout in inches, sized for 3x4 label stock on letter paper.
const (
	labelWidth  = 2.63
	labelHeight = 1.0
	labelCols   = 3
	labelRows   = 4
	marginLeft  = 0.25
	marginTop   = 0.5
	qrSize      = 0.8
)

// StickerSheet renders a full letter page of identical labels for one tile:
// a QR of the torino code plus name, price, size, and the code itself.
func StickerSheet(tile *store.Tile) ([]byte, error) {
	if tile == nil {
		return nil, fmt.Errorf("tile is required")
	}

	png, err := qrcode.Encode(tile.TorinoCode, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR: %w", err)
	}

	pdf := gofpdf.New("P", "in", "Letter", "")
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(tile.TorinoCode, opts, bytes.NewReader(png))

	for row := 0; row < labelRows; row++ {
		for col := 0; col < labelCols; col++ {
			x := marginLeft + float64(col)*labelWidth
			y := marginTop + float64(row)*labelHeight

			pdf.ImageOptions(tile.TorinoCode, x, y, qrSize, qrSize, false, opts, 0, "")

			pdf.SetFont("Helvetica", "B", 10)
			pdf.Text(x, y+0.88, truncate(tile.Name, 30))
			pdf.SetFont("Helvetica", "", 8)
			pdf.Text(x, y+0.96, fmt.Sprintf("$%.2f/sq ft | %s", tile.Price, tile.Size))
			pdf.Text(x, y+1.04, tile.TorinoCode)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render sticker sheet: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
