package store

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambusos/ambusos-api/internal/domain"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(sqliteDateLayout, value)
	require.NoError(t, err)
	return d
}

func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	st, err := NewSQLite(filepath.Join(t.TempDir(), "ambusos_test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func seedHospital(t *testing.T, st *SQLite, name string) *domain.Hospital {
	t.Helper()
	h, err := st.CreateHospital(context.Background(), &domain.Hospital{
		Name:     name,
		Address:  "Calle 10 #5-51",
		Capacity: 80,
		Category: "General",
	})
	require.NoError(t, err)
	return h
}

func seedAmbulance(t *testing.T, st *SQLite, plate string, hospitalID *int64) *domain.Ambulance {
	t.Helper()
	a, err := st.CreateAmbulance(context.Background(), &domain.Ambulance{
		Plate:      plate,
		Category:   "Básica",
		HospitalID: hospitalID,
	})
	require.NoError(t, err)
	return a
}

func seedPersonnel(t *testing.T, st *SQLite, email string) *domain.Personnel {
	t.Helper()
	role := "Conductor"
	_, err := st.CreateRole(context.Background(), role)
	if err != nil {
		var uc *domain.UniqueConstraintError
		require.True(t, errors.As(err, &uc))
	}
	p, err := st.CreatePersonnel(context.Background(), &domain.Personnel{
		Name:         "Carlos Pérez",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		RoleName:     &role,
	})
	require.NoError(t, err)
	return p
}

func TestRoleLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	role, err := st.CreateRole(ctx, "Enfermero")
	require.NoError(t, err)
	assert.NotZero(t, role.ID)

	got, err := st.GetRole(ctx, role.ID)
	require.NoError(t, err)
	assert.Equal(t, "Enfermero", got.Name)

	_, err = st.CreateRole(ctx, "Enfermero")
	var uc *domain.UniqueConstraintError
	require.True(t, errors.As(err, &uc))
	assert.Equal(t, "roles", uc.Entity)
	assert.Equal(t, "nombre", uc.Field)

	roles, err := st.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 1)

	require.NoError(t, st.DeleteRole(ctx, role.ID))
	_, err = st.GetRole(ctx, role.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeleteRoleHeldByPersonnelIsBlocked(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	p := seedPersonnel(t, st, "carlos@ambusos.co")

	roles, err := st.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 1)

	err = st.DeleteRole(ctx, roles[0].ID)
	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "roles", conflict.Entity)
	assert.False(t, errors.Is(err, domain.ErrStoreUnavailable))

	// Once the holder is gone the role can be removed.
	require.NoError(t, st.DeletePersonnel(ctx, p.ID))
	assert.NoError(t, st.DeleteRole(ctx, roles[0].ID))
}

func TestPersonnelUniqueEmail(t *testing.T) {
	st := newTestStore(t)

	seedPersonnel(t, st, "ana@ambusos.co")
	role := "Conductor"
	_, err := st.CreatePersonnel(context.Background(), &domain.Personnel{
		Name:         "Ana Gómez",
		Email:        "ana@ambusos.co",
		PasswordHash: "$2a$10$otherhash",
		RoleName:     &role,
	})

	var uc *domain.UniqueConstraintError
	require.True(t, errors.As(err, &uc))
	assert.Equal(t, "personal", uc.Entity)
	assert.Equal(t, "email", uc.Field)
}

func TestGetPersonnelByEmail(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	seeded := seedPersonnel(t, st, "busca@ambusos.co")

	p, err := st.GetPersonnelByEmail(ctx, "busca@ambusos.co")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, p.ID)
	assert.NotEmpty(t, p.PasswordHash)

	_, err = st.GetPersonnelByEmail(ctx, "nadie@ambusos.co")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestHospitalUniqueName(t *testing.T) {
	st := newTestStore(t)

	seedHospital(t, st, "Hospital Central")
	_, err := st.CreateHospital(context.Background(), &domain.Hospital{
		Name:     "Hospital Central",
		Address:  "Otra dirección",
		Capacity: 10,
		Category: "Emergencias",
	})

	var uc *domain.UniqueConstraintError
	require.True(t, errors.As(err, &uc))
	assert.Equal(t, "hospitales", uc.Entity)
	assert.Equal(t, "nombre", uc.Field)
}

func TestAmbulanceUniquePlate(t *testing.T) {
	st := newTestStore(t)

	seedAmbulance(t, st, "ABC-123", nil)
	_, err := st.CreateAmbulance(context.Background(), &domain.Ambulance{
		Plate:    "ABC-123",
		Category: "UTIM",
	})

	var uc *domain.UniqueConstraintError
	require.True(t, errors.As(err, &uc))
	assert.Equal(t, "ambulancia", uc.Entity)
	assert.Equal(t, "placa", uc.Field)
}

func TestAmbulanceUnknownHospitalFailsFK(t *testing.T) {
	st := newTestStore(t)

	missing := int64(999)
	_, err := st.CreateAmbulance(context.Background(), &domain.Ambulance{
		Plate:      "ZZZ-999",
		Category:   "Básica",
		HospitalID: &missing,
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.False(t, errors.Is(err, domain.ErrStoreUnavailable))
}

func TestDeleteHospitalNullsAmbulanceReference(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	h := seedHospital(t, st, "Hospital Norte")
	a := seedAmbulance(t, st, "NOR-001", &h.ID)

	require.NoError(t, st.DeleteHospital(ctx, h.ID))

	got, err := st.GetAmbulance(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.HospitalID)
}

func TestDuplicateAssignmentRejected(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	p := seedPersonnel(t, st, "dup@ambusos.co")
	a := seedAmbulance(t, st, "DUP-001", nil)

	first, err := st.CreateAssignment(ctx, p.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, first.AssignedAt.IsZero())

	_, err = st.CreateAssignment(ctx, p.ID, a.ID)
	var dup *domain.DuplicateAssignmentError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, p.ID, dup.PersonnelID)
	assert.Equal(t, a.ID, dup.AmbulanceID)
}

func TestAssignmentAllowsReassignAfterDelete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	p := seedPersonnel(t, st, "re@ambusos.co")
	a := seedAmbulance(t, st, "REA-001", nil)

	first, err := st.CreateAssignment(ctx, p.ID, a.ID)
	require.NoError(t, err)
	require.NoError(t, st.DeleteAssignment(ctx, first.ID))

	second, err := st.CreateAssignment(ctx, p.ID, a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestDeleteAssignmentTwiceIsNotFound(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	p := seedPersonnel(t, st, "once@ambusos.co")
	a := seedAmbulance(t, st, "ONC-001", nil)

	created, err := st.CreateAssignment(ctx, p.ID, a.ID)
	require.NoError(t, err)

	require.NoError(t, st.DeleteAssignment(ctx, created.ID))
	err = st.DeleteAssignment(ctx, created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeletePersonnelCascadesAssignments(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	p := seedPersonnel(t, st, "cascade@ambusos.co")
	a := seedAmbulance(t, st, "CAS-001", nil)

	created, err := st.CreateAssignment(ctx, p.ID, a.ID)
	require.NoError(t, err)

	require.NoError(t, st.DeletePersonnel(ctx, p.ID))

	_, err = st.GetAssignment(ctx, created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// The ambulance itself survives.
	_, err = st.GetAmbulance(ctx, a.ID)
	assert.NoError(t, err)
}

func TestDeleteAmbulanceCascadesAssignments(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	p := seedPersonnel(t, st, "cascade2@ambusos.co")
	a := seedAmbulance(t, st, "CAS-002", nil)

	created, err := st.CreateAssignment(ctx, p.ID, a.ID)
	require.NoError(t, err)

	require.NoError(t, st.DeleteAmbulance(ctx, a.ID))

	_, err = st.GetAssignment(ctx, created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = st.GetPersonnel(ctx, p.ID)
	assert.NoError(t, err)
}

func TestDeleteAmbulanceNullsAccidentReference(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	a := seedAmbulance(t, st, "ACC-001", nil)
	report := seedAccident(t, st, &a.ID)

	require.NoError(t, st.DeleteAmbulance(ctx, a.ID))

	got, err := st.GetAccident(ctx, report.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AmbulanceID)
}

func seedAccident(t *testing.T, st *SQLite, ambulanceID *int64) *domain.AccidentReport {
	t.Helper()
	doc := "1032456789"
	r, err := st.CreateAccident(context.Background(), &domain.AccidentReport{
		FirstName:      "María",
		LastName:       "Lopez",
		DocumentNumber: &doc,
		Gender:         "F",
		Narrative:      "Colisión en la autopista norte",
		ReportDate:     mustDate(t, "2026-08-30"),
		InsurerCode:    "SURA",
		Severity:       "grave",
		AmbulanceID:    ambulanceID,
	})
	require.NoError(t, err)
	return r
}

func TestAccidentRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	report := seedAccident(t, st, nil)

	got, err := st.GetAccident(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "María", got.FirstName)
	assert.Equal(t, "2026-08-30", got.ReportDate.Format(sqliteDateLayout))
	assert.Equal(t, "grave", got.Severity)
	require.NotNil(t, got.DocumentNumber)
	assert.Equal(t, "1032456789", *got.DocumentNumber)

	got.Severity = "critico"
	require.NoError(t, st.UpdateAccident(ctx, got))

	updated, err := st.GetAccident(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "critico", updated.Severity)
}

func TestDeleteAccidentNullsTripReference(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	report := seedAccident(t, st, nil)
	trip, err := st.CreateTrip(ctx, &domain.Trip{
		Duration:   "00:25:00",
		AccidentID: &report.ID,
	})
	require.NoError(t, err)

	require.NoError(t, st.DeleteAccident(ctx, report.ID))

	got, err := st.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AccidentID)
}

func TestTripsByAccident(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first := seedAccident(t, st, nil)
	second := seedAccident(t, st, nil)

	for _, accID := range []*int64{&first.ID, &first.ID, &second.ID, nil} {
		_, err := st.CreateTrip(ctx, &domain.Trip{Duration: "00:10:00", AccidentID: accID})
		require.NoError(t, err)
	}

	trips, err := st.TripsByAccident(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, trips, 2)

	all, err := st.ListTrips(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestGetMissingRowsReturnNotFound(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.GetHospital(ctx, 12345)
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "hospitales", nf.Entity)

	_, err = st.GetAmbulance(ctx, 12345)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = st.GetPersonnel(ctx, 12345)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = st.GetAccident(ctx, 12345)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = st.GetTrip(ctx, 12345)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPing(t *testing.T) {
	st := newTestStore(t)
	assert.NoError(t, st.Ping(context.Background()))
}
