// Package qrcode implements QR code generation for shop permalinks.
package qrcode

import (
	"fmt"
	"strings"

	"inkwell/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimSuffix(baseURL, "/"),
	}
}

// GeneratePermalinkQR renders a PNG QR code for the given permalink.
func (s *qrcodeService) GeneratePermalinkQR(permalink string) ([]byte, error) {
	qrCode, err := qrcode.New(permalink, s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ProductPermalink builds the public URL of a product from its slug.
func (s *qrcodeService) ProductPermalink(slug string) string {
	return fmt.Sprintf("%s/shop/products/%s", s.baseURL, slug)
}
