package auth

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"regexp"
	"strings"
)

// QR code identifiers are 16 random bytes encoded as lowercase
// Crockford base32: 26 URL-safe characters, no padding.
// The id is the only public handle for a business, so it must be
// non-sequential and unguessable.
const qrCodeIDBytes = 16

var qrCodeEncoding = base32.NewEncoding("0123456789abcdefghjkmnpqrstvwxyz").WithPadding(base32.NoPadding)

// qrCodeIDPattern validates the identifier format.
var qrCodeIDPattern = regexp.MustCompile(`^[0-9a-hj-km-np-tv-z]{26}$`)

// GenerateQRCodeID produces a fresh public QR identifier.
func GenerateQRCodeID() (string, error) {
	buf := make([]byte, qrCodeIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate qr code id: %w", err)
	}
	return strings.ToLower(qrCodeEncoding.EncodeToString(buf)), nil
}

// ValidQRCodeIDFormat reports whether id matches the generated format.
// An unknown id and a malformed id both surface as not found; the
// lookup path uses this check to skip Redis and database round-trips
// for garbage input.
func ValidQRCodeIDFormat(id string) bool {
	return qrCodeIDPattern.MatchString(id)
}
