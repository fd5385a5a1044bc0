package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambusos/ambusos-api/internal/domain"
)

func registerPersonnel(t *testing.T, env *testEnv, email, password string) *domain.Personnel {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, env.catalog.SeedRoles(ctx))

	p, err := env.personnel.Register(ctx, domain.PersonnelInput{
		Name:     "Ana Gómez",
		Email:    email,
		Password: password,
		RoleName: ptr("Enfermero"),
	})
	require.NoError(t, err)
	return p
}

func TestRegisterHashesCredential(t *testing.T) {
	env := newTestEnv(t)

	p := registerPersonnel(t, env, "ana@ambusos.co", "s3creto")
	assert.NotEmpty(t, p.PasswordHash)
	assert.NotEqual(t, "s3creto", p.PasswordHash)
	require.NotNil(t, p.RoleName)
	assert.Equal(t, "Enfermero", *p.RoleName)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.personnel.Register(context.Background(), domain.PersonnelInput{
		Name:     "Ana Gómez",
		Email:    "ana@ambusos.co",
		Password: "s3creto",
		RoleName: ptr("Piloto"),
	})
	var invalid *domain.InvalidEnumValueError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "rol", invalid.Field)
}

func TestRegisterRejectsEmptyCredential(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.personnel.Register(context.Background(), domain.PersonnelInput{
		Name:  "Ana Gómez",
		Email: "ana@ambusos.co",
	})
	var validation *domain.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "contrasena", validation.Field)
}

func TestVerifyCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registerPersonnel(t, env, "login@ambusos.co", "s3creto")

	p, ok, err := env.personnel.VerifyCredentials(ctx, "login@ambusos.co", "s3creto")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, p)
	assert.Equal(t, "login@ambusos.co", p.Email)

	_, ok, err = env.personnel.VerifyCredentials(ctx, "login@ambusos.co", "incorrecta")
	require.NoError(t, err)
	assert.False(t, ok)

	// Unknown email verifies false without leaking whether the account exists.
	_, ok, err = env.personnel.VerifyCredentials(ctx, "nadie@ambusos.co", "s3creto")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdatePersonnelPartial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := registerPersonnel(t, env, "update@ambusos.co", "s3creto")

	updated, err := env.personnel.Update(ctx, p.ID, domain.PersonnelUpdate{
		Name: ptr("Ana María Gómez"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana María Gómez", updated.Name)
	assert.Equal(t, "update@ambusos.co", updated.Email)
	require.NotNil(t, updated.RoleName)
	assert.Equal(t, "Enfermero", *updated.RoleName)

	// Changing the credential keeps the old one from verifying.
	_, err = env.personnel.Update(ctx, p.ID, domain.PersonnelUpdate{
		Password: ptr("nuev0s3creto"),
	})
	require.NoError(t, err)

	_, ok, err := env.personnel.VerifyCredentials(ctx, "update@ambusos.co", "s3creto")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = env.personnel.VerifyCredentials(ctx, "update@ambusos.co", "nuev0s3creto")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdatePersonnelCredentialErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := registerPersonnel(t, env, "cred@ambusos.co", "s3creto")

	_, err := env.personnel.Update(ctx, p.ID, domain.PersonnelUpdate{Password: ptr("")})
	var validation *domain.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "contrasena", validation.Field)

	// bcrypt rejects secrets past its 72-byte limit; that failure is not an
	// empty-credential problem and must surface as-is.
	long := strings.Repeat("x", 80)
	_, err = env.personnel.Update(ctx, p.ID, domain.PersonnelUpdate{Password: ptr(long)})
	require.Error(t, err)
	assert.False(t, errors.As(err, &validation))
}

func TestDeletePersonnelRemovesAssignments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := registerPersonnel(t, env, "delete@ambusos.co", "s3creto")
	a, err := env.fleet.CreateAmbulance(ctx, domain.AmbulanceInput{Plate: "DEL-001", Category: "Básica"})
	require.NoError(t, err)

	created, err := env.assignments.Assign(ctx, p.ID, a.ID)
	require.NoError(t, err)

	require.NoError(t, env.personnel.Delete(ctx, p.ID))

	_, err = env.assignments.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
