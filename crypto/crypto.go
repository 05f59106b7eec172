// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

func GenerateRandomString(prefix string, length int, encoding string) (string, error) {
	supported_encodings := []string{"hex", "base64"}

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	switch encoding {
	case "hex":
		return prefix + hex.EncodeToString(b), nil
	case "base64":
		return prefix + base64.StdEncoding.EncodeToString(b), nil
	default:
		return "", fmt.Errorf("unsupported encoding: %s, Supported encodings are: %s", encoding, supported_encodings)
	}
}

// GenerateLicenseKey produces an unbound license key in the form the admin
// dashboard prefills, e.g. LIC-0F3A2B1C4D5E6F70.
func GenerateLicenseKey() (string, error) {
	suffix, err := GenerateRandomString("", 8, "hex")
	if err != nil {
		return "", err
	}
	return "LIC-" + strings.ToUpper(suffix), nil
}
