package qrcode

import (
	"encoding/json"
	"fmt"
	"strings"

	"focuspit/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// QRCodeData represents the QR code data structure
type QRCodeData struct {
	GroupID string `json:"group_id"`
	Type    string `json:"type"`
	Link    string `json:"link,omitempty"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	// Set error correction level
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

// GenerateInviteQR generates a QR code encoding an invite link for a group
func (s *qrcodeService) GenerateInviteQR(groupID string) ([]byte, error) {
	// Create QR code data
	data := QRCodeData{
		GroupID: groupID,
		Type:    "invite",
	}
	if s.baseURL != "" {
		data.Link = fmt.Sprintf("%s/invite/%s", s.baseURL, groupID)
	}

	// Convert to JSON
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	// Generate QR code
	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	// Generate PNG image
	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseInviteQR parses QR code data and returns the group ID
func (s *qrcodeService) ParseInviteQR(qrData string) (string, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return "", fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	// Validate type
	if data.Type != "invite" {
		return "", fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	if data.GroupID == "" {
		return "", fmt.Errorf("QR code missing group ID")
	}

	return data.GroupID, nil
}
