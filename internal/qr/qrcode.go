// Package qr renders the scannable code for a business's public
// feedback page.
package qr

import (
	"encoding/base64"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/reviewqr/reviewqr/internal/metrics"
)

// Size is the rendered PNG edge length in pixels.
const Size = 400

// Generator renders QR code PNGs pointing at the public feedback page.
type Generator struct {
	baseURL string
	metrics metrics.Recorder
}

// NewGenerator creates a Generator. baseURL is the externally visible
// origin of the service, without a trailing slash.
func NewGenerator(baseURL string, recorder metrics.Recorder) *Generator {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		metrics: recorder,
	}
}

// FeedbackURL returns the public URL a scanned code opens.
func (g *Generator) FeedbackURL(qrCodeID string) string {
	return fmt.Sprintf("%s/r/%s", g.baseURL, qrCodeID)
}

// RenderPNG encodes the feedback URL for qrCodeID as a black-on-white
// PNG with medium error correction.
func (g *Generator) RenderPNG(qrCodeID string) ([]byte, error) {
	png, err := qrcode.Encode(g.FeedbackURL(qrCodeID), qrcode.Medium, Size)
	if err != nil {
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}
	g.metrics.IncQRRendered()
	return png, nil
}

// RenderDataURI renders the PNG and wraps it as a data URI suitable
// for an <img> src attribute.
func (g *Generator) RenderDataURI(qrCodeID string) (string, error) {
	png, err := g.RenderPNG(qrCodeID)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
