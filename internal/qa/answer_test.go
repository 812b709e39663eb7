package qa

import (
	"strings"
	"testing"

	"github.com/claimsight/claimsight/internal/model"
)

func TestAnswer_SingleMedicationWithDiagnosis(t *testing.T) {
	claim := model.ClaimRecord{
		Diagnoses: []string{"Malaria"},
		Medications: []model.Medication{
			{Name: "Paracetamol", Dosage: "500mg", Quantity: "10 tablets"},
		},
	}

	answer := Answer(claim)
	want := "Paracetamol (500mg) - 10 tablets was prescribed to reduce fever and alleviate pain associated with malaria infection."
	if answer != want {
		t.Errorf("got %q, want %q", answer, want)
	}
}

func TestAnswer_SingleMedicationNoDiagnosis(t *testing.T) {
	claim := model.ClaimRecord{
		Medications: []model.Medication{{Name: "Ibuprofen"}},
	}

	answer := Answer(claim)
	want := "Ibuprofen was prescribed as part of the treatment plan."
	if answer != want {
		t.Errorf("got %q, want %q", answer, want)
	}
}

func TestAnswer_MultipleMedications(t *testing.T) {
	claim := model.ClaimRecord{
		Diagnoses: []string{"Malaria"},
		Medications: []model.Medication{
			{Name: "Paracetamol", Dosage: "500mg", Quantity: "10 tablets"},
			{Name: "Artemether", Dosage: "500mg", Quantity: "10 tablets"},
		},
	}

	answer := Answer(claim)
	if !strings.Contains(answer, "Paracetamol (500mg) - 10 tablets was prescribed to reduce fever") {
		t.Errorf("missing paracetamol sentence: %q", answer)
	}
	if !strings.Contains(answer, "Artemether (500mg) - 10 tablets was prescribed as an antimalarial treatment") {
		t.Errorf("missing artemether sentence: %q", answer)
	}
}

func TestAnswer_NoMedications(t *testing.T) {
	answer := Answer(model.ClaimRecord{})
	want := "No medication information was found in the claim document."
	if answer != want {
		t.Errorf("got %q, want %q", answer, want)
	}
}

func TestAnswer_DiagnosisFallbackReasoning(t *testing.T) {
	claim := model.ClaimRecord{
		Diagnoses:   []string{"Typhoid Infection"},
		Medications: []model.Medication{{Name: "Ciprofloxacin"}},
	}

	answer := Answer(claim)
	if !strings.Contains(answer, "to treat the typhoid infection and prevent complications") {
		t.Errorf("expected infection fallback reasoning, got %q", answer)
	}
}

func TestSummary(t *testing.T) {
	age := 34
	claim := model.ClaimRecord{
		Patient:   model.Patient{Name: "Jane Doe", Age: &age},
		Diagnoses: []string{"Malaria", "Fever"},
		Medications: []model.Medication{
			{Name: "Paracetamol"}, {Name: "Artemether"},
		},
	}

	want := "Patient: Jane Doe | Diagnosis: Malaria, Fever | Medications: Paracetamol, Artemether"
	if got := Summary(claim); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := Summary(model.ClaimRecord{}); got != "No claim data available" {
		t.Errorf("expected empty summary message, got %q", got)
	}
}
