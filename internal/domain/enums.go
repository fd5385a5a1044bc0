// Package domain contains the core entities, closed vocabularies and error
// taxonomy of the ambulance dispatch operation.
package domain

// EnumMember is one (code, display value) pair of a closed vocabulary.
// Inputs and persisted columns always carry the display value; the code is an
// internal stable identifier.
type EnumMember struct {
	Code  string `json:"codigo"`
	Value string `json:"valor"`
}

// Enum is a closed, ordered vocabulary. Membership checks are exact and
// case-sensitive on the display value.
type Enum struct {
	Name    string
	Members []EnumMember
}

// IsValid reports whether raw exactly matches the display value of a member.
func (e Enum) IsValid(raw string) bool {
	for _, m := range e.Members {
		if m.Value == raw {
			return true
		}
	}
	return false
}

// Values returns the allowed display values in declaration order.
func (e Enum) Values() []string {
	out := make([]string, len(e.Members))
	for i, m := range e.Members {
		out[i] = m.Value
	}
	return out
}

var (
	// RolesEnum lists the personnel roles.
	RolesEnum = Enum{
		Name: "rol",
		Members: []EnumMember{
			{Code: "SUPERADMIN", Value: "Super Administrador"},
			{Code: "ADMINISTRADOR", Value: "Administrador"},
			{Code: "CONDUCTOR", Value: "Conductor"},
			{Code: "ENFERMERO", Value: "Enfermero"},
			{Code: "PARAMEDICO", Value: "Paramédico"},
		},
	}

	// AmbulanceCategoryEnum lists the ambulance equipment categories.
	AmbulanceCategoryEnum = Enum{
		Name: "categoria_ambulancia",
		Members: []EnumMember{
			{Code: "BASICA", Value: "Básica"},
			{Code: "MEDICALIZADA", Value: "Medicalizada"},
			{Code: "UTIM", Value: "UTIM"},
		},
	}

	// HospitalCategoryEnum lists the hospital categories.
	HospitalCategoryEnum = Enum{
		Name: "categoria",
		Members: []EnumMember{
			{Code: "GENERAL", Value: "General"},
			{Code: "ESPECIALIZADO", Value: "Especializado"},
			{Code: "CLINICA", Value: "Clínica"},
			{Code: "EMERGENCIAS", Value: "Emergencias"},
		},
	}

	// GenderEnum lists the accepted gender values on accident intake.
	GenderEnum = Enum{
		Name: "genero",
		Members: []EnumMember{
			{Code: "MASCULINO", Value: "M"},
			{Code: "FEMENINO", Value: "F"},
			{Code: "OTRO", Value: "Otro"},
		},
	}

	// SeverityEnum lists the accident triage severities.
	SeverityEnum = Enum{
		Name: "estado",
		Members: []EnumMember{
			{Code: "LEVE", Value: "leve"},
			{Code: "MODERADO", Value: "moderado"},
			{Code: "GRAVE", Value: "grave"},
			{Code: "CRITICO", Value: "critico"},
		},
	}
)

// Vocabularies returns every closed vocabulary, for catalog listing.
func Vocabularies() []Enum {
	return []Enum{RolesEnum, AmbulanceCategoryEnum, HospitalCategoryEnum, GenderEnum, SeverityEnum}
}

// ValidateEnum checks raw against the vocabulary and returns the typed
// validation error on mismatch. It never touches the store.
func ValidateEnum(e Enum, raw string) error {
	if !e.IsValid(raw) {
		return &InvalidEnumValueError{Field: e.Name, Value: raw, Allowed: e.Values()}
	}
	return nil
}
