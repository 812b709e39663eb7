package validate

import (
	"errors"
	"testing"
)

func TestFilename(t *testing.T) {
	valid := []string{"claim.jpg", "claim.JPEG", "scan.png", "form.pdf", "old.bmp", "fax.tiff", "fax.tif"}
	for _, name := range valid {
		if err := Filename(name); err != nil {
			t.Errorf("expected %q to be accepted, got %v", name, err)
		}
	}

	invalid := []string{"", "claim.gif", "claim.txt", "claim", "claim.exe"}
	for _, name := range invalid {
		err := Filename(name)
		if err == nil {
			t.Errorf("expected %q to be rejected", name)
			continue
		}
		var verr *Error
		if !errors.As(err, &verr) {
			t.Errorf("expected validate.Error for %q, got %T", name, err)
		}
	}
}

func TestContent(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content []byte
		wantErr bool
	}{
		{"valid pdf", "form.pdf", []byte("%PDF-1.4 rest"), false},
		{"fake pdf", "form.pdf", []byte("not a pdf"), true},
		{"jpeg magic", "claim.jpg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 1, 2}, false},
		{"png magic", "scan.png", []byte{0x89, 'P', 'N', 'G', 13, 10}, false},
		{"bmp magic", "old.bmp", []byte{'B', 'M', 0, 0}, false},
		{"tiff magic", "fax.tif", []byte{'I', 'I', '*', 0x00, 8}, false},
		{"garbage image", "claim.jpg", []byte("plain text"), true},
		{"empty", "claim.jpg", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Content(tt.file, tt.content)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error for %s, got %v", tt.name, err)
			}
		})
	}
}

func TestRequestFields(t *testing.T) {
	if err := DocumentID("abc-123"); err != nil {
		t.Errorf("expected valid id, got %v", err)
	}
	if err := DocumentID("  "); err == nil {
		t.Error("expected error for blank id")
	}
	if err := Question("What medication is used and why?"); err != nil {
		t.Errorf("expected valid question, got %v", err)
	}
	if err := Question(""); err == nil {
		t.Error("expected error for empty question")
	}
}
