package model

// ClaimRecord is the structured data extracted from one claim document.
// Every field is populated: extractors fall back to demo defaults when the
// OCR text yields nothing usable.
type ClaimRecord struct {
	Patient     Patient      `json:"patient"`
	Diagnoses   []string     `json:"diagnoses"`
	Medications []Medication `json:"medications"`
	Procedures  []string     `json:"procedures"`
	Admission   Admission    `json:"admission"`
	TotalAmount string       `json:"total_amount"` // formatted, e.g. "₦15,000.00"
}

// Patient identifies the claimant.
type Patient struct {
	Name string `json:"name,omitempty"`
	Age  *int   `json:"age,omitempty"`
}

// Medication is one prescribed drug with dosage and quantity as they
// appeared on the document (lowercased).
type Medication struct {
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Quantity string `json:"quantity"`
}

// Admission captures whether the patient was admitted and the stay window.
// Dates are ISO (YYYY-MM-DD) when they parsed, verbatim otherwise.
type Admission struct {
	WasAdmitted   bool   `json:"was_admitted"`
	AdmissionDate string `json:"admission_date,omitempty"`
	DischargeDate string `json:"discharge_date,omitempty"`
}
