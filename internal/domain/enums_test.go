package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumIsValid(t *testing.T) {
	tests := []struct {
		name  string
		enum  Enum
		value string
		valid bool
	}{
		{"valid role", RolesEnum, "Conductor", true},
		{"valid accented role", RolesEnum, "Paramédico", true},
		{"wrong case", RolesEnum, "conductor", false},
		{"unknown role", RolesEnum, "Piloto", false},
		{"valid ambulance category", AmbulanceCategoryEnum, "UTIM", true},
		{"accent stripped", AmbulanceCategoryEnum, "Basica", false},
		{"valid hospital category", HospitalCategoryEnum, "Clínica", true},
		{"valid gender", GenderEnum, "Otro", true},
		{"gender long form", GenderEnum, "Masculino", false},
		{"valid severity", SeverityEnum, "critico", true},
		{"severity wrong case", SeverityEnum, "Critico", false},
		{"empty value", SeverityEnum, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.enum.IsValid(tt.value))
		})
	}
}

func TestValidateEnum(t *testing.T) {
	err := ValidateEnum(SeverityEnum, "grave")
	assert.NoError(t, err)

	err = ValidateEnum(SeverityEnum, "fatal")
	require.Error(t, err)

	var invalid *InvalidEnumValueError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "estado", invalid.Field)
	assert.Equal(t, "fatal", invalid.Value)
	assert.Equal(t, []string{"leve", "moderado", "grave", "critico"}, invalid.Allowed)
}

func TestEnumValuesOrder(t *testing.T) {
	assert.Equal(t, []string{
		"Super Administrador", "Administrador", "Conductor", "Enfermero", "Paramédico",
	}, RolesEnum.Values())
}

func TestVocabularies(t *testing.T) {
	vocabs := Vocabularies()
	require.Len(t, vocabs, 5)

	names := make([]string, len(vocabs))
	for i, v := range vocabs {
		names[i] = v.Name
		assert.NotEmpty(t, v.Members, "vocabulary %s has no members", v.Name)
	}
	assert.Equal(t, []string{"rol", "categoria_ambulancia", "categoria", "genero", "estado"}, names)
}
