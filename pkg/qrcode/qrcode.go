package qrcode

import (
	"encoding/json"
	"fmt"
	"strings"

	"gearguard/pkg/constants"

	goqrcode "github.com/skip2/go-qrcode"
)

// modulePixels is the rendered size of one QR module; a negative size tells
// go-qrcode to scale the image by module count.
const modulePixels = -10

// Generator renders equipment QR codes.
type Generator struct {
	frontendBaseURL string
}

func NewGenerator(frontendBaseURL string) *Generator {
	return &Generator{frontendBaseURL: strings.TrimRight(frontendBaseURL, "/")}
}

// Payload returns the text encoded into the QR code for the given mode.
func (g *Generator) Payload(equipmentID string, mode constants.QRMode) (string, error) {
	switch mode {
	case constants.QRModeLink:
		return fmt.Sprintf("%s/scan/%s", g.frontendBaseURL, equipmentID), nil
	case constants.QRModeJSON:
		b, err := json.Marshal(struct {
			EquipmentID string `json:"equipmentId"`
		}{EquipmentID: equipmentID})
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return "", fmt.Errorf("unsupported qr mode %q", mode)
}

// PNG renders the payload for equipmentID as a PNG image.
func (g *Generator) PNG(equipmentID string, mode constants.QRMode) ([]byte, error) {
	payload, err := g.Payload(equipmentID, mode)
	if err != nil {
		return nil, err
	}
	code, err := goqrcode.New(payload, goqrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return code.PNG(modulePixels)
}
