package service

import "github.com/google/uuid"

// QRCodeService renders share links for recipes as QR code images.
type QRCodeService interface {
	// RecipeShareQR returns a PNG QR code encoding the public URL of the
	// given recipe.
	RecipeShareQR(recipeID uuid.UUID) ([]byte, error)
}
