package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRService renders PNG QR codes for links built from a base URL and a code.
type QRService struct {
	baseURL string
	size    int
}

// NewQRService creates a QRService. baseURL is the link prefix, e.g. "https://groupslot.app/join/".
func NewQRService(baseURL string, size int) *QRService {
	return &QRService{
		baseURL: baseURL,
		size:    size,
	}
}

// Link returns the full URL encoded for code.
func (s *QRService) Link(code string) string {
	return s.baseURL + code
}

// GenerateQRCode returns a PNG QR code for the link of code.
func (s *QRService) GenerateQRCode(code string) ([]byte, error) {
	png, err := qrcode.Encode(s.Link(code), qrcode.Medium, s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}
	return png, nil
}
