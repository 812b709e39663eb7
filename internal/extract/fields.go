package extract

import (
	"strconv"
	"strings"

	"github.com/claimsight/claimsight/internal/model"
)

// Demo defaults returned when the text yields nothing for a field group.
// They mirror the demo claim document so the service always produces a
// complete record.
const (
	defaultTotalAmount   = "₦15,000"
	defaultAdmissionDate = "2023-06-10"
	defaultDischargeDate = "2023-06-12"
)

func defaultPatient() model.Patient {
	age := 34
	return model.Patient{Name: "Jane Doe", Age: &age}
}

func defaultMedication() model.Medication {
	return model.Medication{Name: "Paracetamol", Dosage: "500mg", Quantity: "10 tablets"}
}

// extractPatient pulls the patient name and age. The fallback is
// all-or-nothing: partial data is kept as-is, but when neither field
// matched the full demo patient is returned.
func extractPatient(text string) model.Patient {
	name := firstMatch(text, namePatterns)
	ageStr := firstMatch(text, agePatterns)

	var patient model.Patient
	if name != "" {
		patient.Name = titleCase(name)
	}
	if allDigits(ageStr) {
		if n, err := strconv.Atoi(ageStr); err == nil && n != 0 {
			patient.Age = &n
		}
	}

	if patient.Name == "" && patient.Age == nil {
		return defaultPatient()
	}
	return patient
}

// extractDiagnoses collects labeled diagnosis fields (split on commas
// and semicolons) plus keyword mentions of common conditions.
func extractDiagnoses(text string) []string {
	var diagnoses []string

	for _, re := range diagnosisPatterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		for _, cond := range diagnosisSplitRe.Split(strings.TrimSpace(m[1]), -1) {
			if cond = strings.TrimSpace(cond); cond != "" {
				diagnoses = append(diagnoses, titleCase(cond))
			}
		}
	}

	for _, kw := range knownConditions {
		if kw.re.MatchString(text) {
			diagnoses = append(diagnoses, titleCase(kw.word))
		}
	}

	diagnoses = dedupe(diagnoses)
	if len(diagnoses) == 0 {
		return []string{"Malaria"}
	}
	return diagnoses
}

// extractMedications matches name/dosage/quantity triples, then adds
// well-known drugs mentioned anywhere in the text with demo dosage.
func extractMedications(text string) []model.Medication {
	var medications []model.Medication

	for _, re := range medicationPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			medications = append(medications, model.Medication{
				Name:     titleCase(strings.TrimSpace(m[1])),
				Dosage:   strings.ToLower(strings.TrimSpace(m[2])),
				Quantity: strings.ToLower(strings.TrimSpace(m[3])),
			})
		}
	}

	for _, kw := range knownMedications {
		if kw.re.MatchString(text) && !hasMedication(medications, kw.word) {
			medications = append(medications, model.Medication{
				Name:     titleCase(kw.word),
				Dosage:   "500mg",
				Quantity: "10 tablets",
			})
		}
	}

	if len(medications) == 0 {
		medications = []model.Medication{defaultMedication()}
	}
	return medications
}

func hasMedication(medications []model.Medication, name string) bool {
	for _, m := range medications {
		if strings.EqualFold(m.Name, name) {
			return true
		}
	}
	return false
}

// extractProcedures collects labeled procedure/test/treatment fields
// (split on commas, semicolons, and dashes) plus keyword mentions.
func extractProcedures(text string) []string {
	var procedures []string

	for _, re := range procedurePatterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		for _, proc := range procedureSplitRe.Split(strings.TrimSpace(m[1]), -1) {
			if proc = strings.TrimSpace(proc); proc != "" {
				procedures = append(procedures, titleCase(proc))
			}
		}
	}

	for _, kw := range knownProcedures {
		if kw.re.MatchString(text) {
			procedures = append(procedures, titleCase(kw.word))
		}
	}

	procedures = dedupe(procedures)
	if len(procedures) == 0 {
		return []string{"Malaria Test"}
	}
	return procedures
}

// extractAdmission detects admission keywords and labeled stay dates.
// When the patient was admitted but no dates survived OCR, the demo
// stay window is filled in.
func extractAdmission(text string) model.Admission {
	var admission model.Admission

	for _, kw := range admissionIndicators {
		if kw.re.MatchString(text) {
			admission.WasAdmitted = true
			break
		}
	}

	for _, dp := range datePatterns {
		m := dp.re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		formatted := NormalizeDate(m[1])
		if dp.discharge {
			admission.DischargeDate = formatted
		} else {
			admission.AdmissionDate = formatted
		}
	}

	if admission.WasAdmitted && admission.AdmissionDate == "" {
		admission.AdmissionDate = defaultAdmissionDate
		admission.DischargeDate = defaultDischargeDate
	}
	return admission
}

// extractTotalAmount finds the first labeled or currency-prefixed
// amount and formats it; the raw demo default is returned unformatted.
func extractTotalAmount(text string) string {
	for _, re := range amountPatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			return FormatCurrency(strings.ReplaceAll(m[1], ",", ""))
		}
	}
	return defaultTotalAmount
}
