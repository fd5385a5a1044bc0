package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambusos/ambusos-api/internal/domain"
)

func TestSeedRolesIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.catalog.SeedRoles(ctx))
	require.NoError(t, env.catalog.SeedRoles(ctx))

	roles, err := env.catalog.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, len(domain.RolesEnum.Members))
}

func TestCreateRoleRejectsUnknownName(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.catalog.CreateRole(context.Background(), "Piloto")
	var invalid *domain.InvalidEnumValueError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "rol", invalid.Field)
}

func TestVocabulariesCatalog(t *testing.T) {
	env := newTestEnv(t)

	vocabs := env.catalog.Vocabularies()
	require.Len(t, vocabs, 5)
	assert.Equal(t, "rol", vocabs[0].Name)
}

func TestDeleteRoleInUse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.catalog.SeedRoles(ctx))
	_, err := env.personnel.Register(ctx, domain.PersonnelInput{
		Name:     "Carlos Pérez",
		Email:    "carlos@ambusos.co",
		Password: "s3creto",
		RoleName: ptr("Conductor"),
	})
	require.NoError(t, err)

	roles, err := env.catalog.ListRoles(ctx)
	require.NoError(t, err)

	var conductorID int64
	for _, r := range roles {
		if r.Name == "Conductor" {
			conductorID = r.ID
		}
	}
	require.NotZero(t, conductorID)

	err = env.catalog.DeleteRole(ctx, conductorID)
	var conflict *domain.ConflictError
	assert.True(t, errors.As(err, &conflict))
}
