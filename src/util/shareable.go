package util

import "encoding/base64"

// Shareable ids are obfuscated, not encrypted: an account id encoded
// so it can appear in URLs and receiver-facing payloads.
func EncodeShareableID(accountID string) string {
	return base64.StdEncoding.EncodeToString([]byte(accountID))
}

func DecodeShareableID(shareableID string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(shareableID)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
