package ocr

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/unidoc/unipdf/v3/extractor"
	pdfmodel "github.com/unidoc/unipdf/v3/model"
)

// ExtractPDFText pulls embedded text directly out of a PDF without any
// vision call. Scanned PDFs with no text layer yield an empty string.
func ExtractPDFText(content []byte) (string, error) {
	reader, err := pdfmodel.NewPdfReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}

	encrypted, err := reader.IsEncrypted()
	if err != nil {
		return "", fmt.Errorf("check PDF encryption: %w", err)
	}
	if encrypted {
		ok, err := reader.Decrypt([]byte(""))
		if err != nil {
			return "", fmt.Errorf("decrypt PDF: %w", err)
		}
		if !ok {
			return "", fmt.Errorf("PDF is password-protected")
		}
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("get PDF page count: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			continue
		}
		ex, err := extractor.New(page)
		if err != nil {
			continue
		}
		text, err := ex.ExtractText()
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String()), nil
}
