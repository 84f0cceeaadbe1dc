package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"invoice.pdf", "invoice.pdf"},
		{"../../etc/passwd", "passwd"},
		{"my invoice (final).pdf", "my_invoice__final_.pdf"},
		{"Rechnung März.pdf", "Rechnung_M_rz.pdf"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSignedFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"invoice.pdf", "invoice_signed.pdf"},
		{"docs/invoice.PDF", "docs/invoice_signed.pdf"},
		{"noext", "noext_signed.pdf"},
	}
	for _, tt := range tests {
		if got := SignedFilename(tt.in); got != tt.want {
			t.Errorf("SignedFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateUUID(t *testing.T) {
	id := GenerateUUID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("GenerateUUID returned invalid UUID %q: %v", id, err)
	}
	if id == GenerateUUID() {
		t.Error("Expected distinct UUIDs")
	}
}
