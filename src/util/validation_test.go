package util

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.co", true},
		{"no-at-sign.example.com", false},
		{"user@", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidateEmail(tt.email); got != tt.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "Sup3rsecret", true},
		{"too short", "Ab1", false},
		{"no digit", "Supersecret", false},
		{"no upper", "sup3rsecret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePassword(tt.password); got != tt.want {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestShareableIDRoundTrip(t *testing.T) {
	shareable := EncodeShareableID("acc-123")
	if shareable == "acc-123" {
		t.Fatal("shareable id should be obfuscated")
	}

	decoded, err := DecodeShareableID(shareable)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != "acc-123" {
		t.Errorf("round trip = %q, want acc-123", decoded)
	}

	if _, err := DecodeShareableID("%%%not-base64%%%"); err == nil {
		t.Error("invalid shareable id should error")
	}
}
