// Package validate checks uploaded claim documents and request fields
// before they reach the OCR pipeline.
package validate

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// Error reports invalid request input. Handlers map it to a 400.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// Magic numbers for the supported content types.
var imageSignatures = [][]byte{
	{0xFF, 0xD8, 0xFF},      // JPEG
	{0x89, 'P', 'N', 'G'},   // PNG
	{'B', 'M'},              // BMP
	{'I', 'I', '*', 0x00},   // TIFF little-endian
	{'M', 'M', 0x00, 0x2A},  // TIFF big-endian
}

var pdfSignature = []byte("%PDF-")

// Filename checks that the upload carries a supported extension.
func Filename(name string) error {
	if strings.TrimSpace(name) == "" {
		return &Error{Msg: "no filename provided"}
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return &Error{Msg: fmt.Sprintf("unsupported file type %q (allowed: jpg, jpeg, png, pdf, bmp, tiff, tif)", ext)}
	}
	return nil
}

// Content checks the file signature against the claimed type. PDFs must
// start with the PDF magic; everything else must look like a supported
// image.
func Content(name string, content []byte) error {
	if len(content) == 0 {
		return &Error{Msg: "empty file"}
	}

	if strings.HasSuffix(strings.ToLower(name), ".pdf") {
		if !bytes.HasPrefix(content, pdfSignature) {
			return &Error{Msg: fmt.Sprintf("file %q is not a valid PDF", name)}
		}
		return nil
	}

	for _, sig := range imageSignatures {
		if bytes.HasPrefix(content, sig) {
			return nil
		}
	}
	return &Error{Msg: fmt.Sprintf("file %q is not a supported image", name)}
}

// DocumentID checks the /ask document id field.
func DocumentID(id string) error {
	if strings.TrimSpace(id) == "" {
		return &Error{Msg: "document_id is required"}
	}
	return nil
}

// Question checks the /ask question field.
func Question(q string) error {
	if strings.TrimSpace(q) == "" {
		return &Error{Msg: "question is required"}
	}
	return nil
}
