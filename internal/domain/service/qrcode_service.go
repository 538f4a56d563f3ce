package service

// QRCodeService defines the interface for destination QR code generation and parsing
type QRCodeService interface {
	// GenerateDestinationQR renders a PNG QR code that deep-links to a destination
	GenerateDestinationQR(destinationKey string) ([]byte, error)

	// ParseDestinationQR extracts the destination key from scanned QR content
	ParseDestinationQR(qrData string) (string, error)
}
