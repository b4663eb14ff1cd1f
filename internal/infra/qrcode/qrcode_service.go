// Package qrcode renders recipe share links as QR code PNGs.
package qrcode

import (
	"strings"

	"plateful/config"
	"plateful/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const defaultQRSize = 256

type qrcodeService struct {
	baseURL              string
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance. Codes encode the
// public recipe URL directly so any stock camera app can open them.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := defaultQRSize
	levelName := ""
	if cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		levelName = cfg.QRCode.ErrorCorrectionLevel
	}

	var level qrcode.RecoveryLevel
	switch levelName {
	case "L":
		level = qrcode.Low
	case "M", "":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		baseURL:              strings.TrimRight(cfg.HTTP.BaseURL, "/"),
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// RecipeShareQR returns a PNG QR code encoding the recipe's public URL.
func (s *qrcodeService) RecipeShareQR(recipeID uuid.UUID) ([]byte, error) {
	shareURL := s.baseURL + "/recipes/" + recipeID.String()

	qrCode, err := qrcode.New(shareURL, s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render QR code PNG")
	}

	return pngBytes, nil
}
