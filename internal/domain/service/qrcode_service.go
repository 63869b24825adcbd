package service

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateInviteQR generates a QR code encoding an invite link for a group
	GenerateInviteQR(groupID string) ([]byte, error)

	// ParseInviteQR parses QR code data and returns the group ID
	ParseInviteQR(qrData string) (string, error)
}
