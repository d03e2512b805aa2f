package utils

import (
	"encoding/base64"

	"github.com/skip2/go-qrcode"
)

// GenerateOrderQR génère le QR du suivi de commande en base64, prêt à
// mettre dans <img src="...">
func GenerateOrderQR(trackingURL string) (string, error) {
	png, err := qrcode.Encode(trackingURL, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
