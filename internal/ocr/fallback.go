package ocr

// FallbackText returns the canned demo claim document used when no
// vision backend is available and PDF text extraction did not apply.
// It keeps the rest of the pipeline fully exercisable without API keys.
func FallbackText() string {
	return `MEDICAL CLAIM FORM

Patient Information:
Name: Jane Doe
Age: 34
ID: PAT001234

Diagnosis: Malaria

Medications Prescribed:
- Paracetamol 500mg - Quantity: 10 tablets
- Artemether/Lumefantrine - Quantity: 6 tablets

Procedures:
- Malaria Rapid Test
- Blood Test

Admission Details:
Admitted: Yes
Admission Date: 10/06/2023
Discharge Date: 12/06/2023

Total Amount: ₦15,000

Doctor: Dr. Smith
Facility: Lagos General Hospital`
}
