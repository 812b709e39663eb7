// Package qa answers the fixed follow-up question about a stored claim
// using a deterministic medication-reasoning table.
package qa

import (
	"fmt"
	"strings"

	"github.com/claimsight/claimsight/internal/model"
)

// FixedQuestion is the question every /ask request is answered with,
// regardless of what was actually asked.
const FixedQuestion = "What medication is used and why?"

// Answer generates the medication answer for a claim. It never fails:
// a claim without medications yields a fixed not-found message.
func Answer(claim model.ClaimRecord) string {
	if len(claim.Medications) == 0 {
		return "No medication information was found in the claim document."
	}

	var primaryDiagnosis string
	if len(claim.Diagnoses) > 0 {
		primaryDiagnosis = claim.Diagnoses[0]
	}

	if len(claim.Medications) == 1 {
		med := claim.Medications[0]
		if primaryDiagnosis == "" {
			return fmt.Sprintf("%s was prescribed as part of the treatment plan.", medicationDetails(med))
		}
		return fmt.Sprintf("%s was prescribed %s.", medicationDetails(med), medicationReasoning(med.Name, primaryDiagnosis))
	}

	sentences := make([]string, 0, len(claim.Medications))
	for _, med := range claim.Medications {
		reason := medicationReasoning(med.Name, primaryDiagnosis)
		sentences = append(sentences, fmt.Sprintf("%s was prescribed %s.", medicationDetails(med), reason))
	}
	return strings.Join(sentences, " ")
}

// medicationDetails renders "Name (dosage) - quantity", omitting parts
// that are empty.
func medicationDetails(med model.Medication) string {
	details := med.Name
	if details == "" {
		details = "Unknown medication"
	}
	if med.Dosage != "" {
		details += fmt.Sprintf(" (%s)", med.Dosage)
	}
	if med.Quantity != "" {
		details += fmt.Sprintf(" - %s", med.Quantity)
	}
	return details
}

// medicationReasoning explains why a medication was prescribed, first
// by drug, then by diagnosis.
func medicationReasoning(medicationName, diagnosis string) string {
	med := strings.ToLower(medicationName)
	diag := strings.ToLower(diagnosis)

	switch {
	case strings.Contains(med, "paracetamol") || strings.Contains(med, "acetaminophen"):
		switch {
		case strings.Contains(diag, "malaria"):
			return "to reduce fever and alleviate pain associated with malaria infection"
		case strings.Contains(diag, "fever"):
			return "to reduce elevated body temperature and provide pain relief"
		case strings.Contains(diag, "headache"):
			return "to provide effective pain relief for headache symptoms"
		default:
			return "to manage pain and reduce fever symptoms"
		}
	case strings.Contains(med, "artemether") || strings.Contains(med, "lumefantrine"):
		return "as an antimalarial treatment to eliminate malaria parasites from the blood"
	case strings.Contains(med, "ibuprofen"):
		return "to reduce inflammation, fever, and provide pain relief"
	case strings.Contains(med, "aspirin"):
		return "to reduce pain, inflammation, and fever, and potentially for cardiovascular protection"
	case strings.Contains(med, "amoxicillin"):
		return "as an antibiotic to treat bacterial infections and prevent complications"
	case strings.Contains(med, "chloroquine"):
		return "to treat and prevent malaria by eliminating parasites from the blood"
	case strings.Contains(med, "metformin"):
		return "to help manage blood sugar levels in patients with diabetes"
	case strings.Contains(med, "multiple medications"):
		if strings.Contains(diag, "malaria") {
			return "to provide comprehensive treatment for malaria, including fever reduction and parasite elimination"
		}
		return fmt.Sprintf("to comprehensively treat %s and manage associated symptoms", diag)
	}

	switch {
	case strings.Contains(diag, "malaria"):
		return "to treat malaria infection and manage its associated symptoms"
	case strings.Contains(diag, "fever"):
		return "to reduce fever and provide symptomatic relief"
	case strings.Contains(diag, "infection"):
		return fmt.Sprintf("to treat the %s and prevent complications", diag)
	case strings.Contains(diag, "pain"):
		return fmt.Sprintf("to provide effective pain management for %s", diag)
	default:
		return fmt.Sprintf("to treat %s and manage related symptoms", diag)
	}
}

// Summary produces a one-line claim digest for request logs.
func Summary(claim model.ClaimRecord) string {
	var parts []string

	if claim.Patient.Name != "" {
		parts = append(parts, "Patient: "+claim.Patient.Name)
	}
	if len(claim.Diagnoses) > 0 {
		parts = append(parts, "Diagnosis: "+strings.Join(claim.Diagnoses, ", "))
	}
	if len(claim.Medications) > 0 {
		names := make([]string, len(claim.Medications))
		for i, med := range claim.Medications {
			names[i] = med.Name
			if names[i] == "" {
				names[i] = "Unknown"
			}
		}
		parts = append(parts, "Medications: "+strings.Join(names, ", "))
	}

	if len(parts) == 0 {
		return "No claim data available"
	}
	return strings.Join(parts, " | ")
}
