package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GeneratePermalinkQR renders a PNG QR code pointing at the given
	// public permalink (product or post share links).
	GeneratePermalinkQR(permalink string) ([]byte, error)

	// ProductPermalink builds the public URL of a product from its slug.
	ProductPermalink(slug string) string
}
