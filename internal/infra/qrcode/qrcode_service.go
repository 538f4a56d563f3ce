package qrcode

import (
	"net/url"
	"strings"

	"campusnav/config"
	"campusnav/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// New creates the QR code service from configuration
func New(cfg *config.Config) service.QRCodeService {
	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

// NewQRCodeService creates a QR code service whose codes deep-link to baseURL + destination key
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch strings.ToLower(errorCorrectionLevel) {
	case "l", "low":
		level = qrcode.Low
	case "m", "medium":
		level = qrcode.Medium
	case "q", "high":
		level = qrcode.High
	case "h", "highest":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              baseURL,
	}
}

// GenerateDestinationQR renders the deep link for a destination as a PNG
func (s *qrcodeService) GenerateDestinationQR(destinationKey string) ([]byte, error) {
	if destinationKey == "" {
		return nil, errors.New("destination key is required")
	}

	qrCode, err := qrcode.New(s.baseURL+url.PathEscape(destinationKey), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseDestinationQR extracts the destination key from a scanned deep link
func (s *qrcodeService) ParseDestinationQR(qrData string) (string, error) {
	escaped, ok := strings.CutPrefix(strings.TrimSpace(qrData), s.baseURL)
	if !ok {
		return "", errors.Errorf("not a destination link: %q", qrData)
	}

	key, err := url.PathUnescape(escaped)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode destination key")
	}
	if key == "" || strings.Contains(key, "/") {
		return "", errors.Errorf("invalid destination key: %q", key)
	}

	return key, nil
}
