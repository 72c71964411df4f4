package renderer

import (
	"fmt"
	"os"
	"strings"

	"github.com/skip2/go-qrcode"
)

// VerificationURL is the address a certificate's QR code points at.
func VerificationURL(baseURL string, certificateID string) string {
	return fmt.Sprintf("%s/verify/%s", strings.TrimRight(baseURL, "/"), certificateID)
}

// QREncoder produces PNG QR codes. The documents are generated digitally, so
// medium error correction is plenty.
type QREncoder struct {
	Level qrcode.RecoveryLevel
	Size  int
}

func NewQREncoder() *QREncoder {
	return &QREncoder{Level: qrcode.Medium, Size: 290}
}

// Encode returns the PNG bytes of a QR code carrying url.
func (e *QREncoder) Encode(url string) ([]byte, error) {
	png, err := qrcode.Encode(url, e.Level, e.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// WriteFile encodes url and writes the PNG to path.
func (e *QREncoder) WriteFile(url string, path string) error {
	png, err := e.Encode(url)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("failed to write QR code: %w", err)
	}
	return nil
}
