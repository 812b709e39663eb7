// Package extract parses OCR text from medical claim documents into
// structured claim records using ordered regex pattern lists, keyword
// scans, and demo-data fallbacks.
package extract

import (
	"fmt"
	"strings"

	"github.com/claimsight/claimsight/internal/model"
)

// ExtractionError reports a failed extraction run.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("claim extraction failed: %s", e.Reason)
}

// ExtractClaimData parses OCR text into a complete claim record. The
// text is normalized once and every field group is extracted from the
// same normalized view. Extraction is all-or-nothing: any internal
// failure surfaces as an ExtractionError and no partial record is
// returned.
func ExtractClaimData(ocrText string) (record model.ClaimRecord, err error) {
	if strings.TrimSpace(ocrText) == "" {
		return model.ClaimRecord{}, &ExtractionError{Reason: "empty OCR text provided"}
	}

	defer func() {
		if r := recover(); r != nil {
			record = model.ClaimRecord{}
			err = &ExtractionError{Reason: fmt.Sprint(r)}
		}
	}()

	cleaned := CleanText(ocrText)

	record = model.ClaimRecord{
		Patient:     extractPatient(cleaned),
		Diagnoses:   extractDiagnoses(cleaned),
		Medications: extractMedications(cleaned),
		Procedures:  extractProcedures(cleaned),
		Admission:   extractAdmission(cleaned),
		TotalAmount: extractTotalAmount(cleaned),
	}
	return record, nil
}
