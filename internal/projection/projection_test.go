package projection

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambusos/ambusos-api/internal/domain"
	"github.com/ambusos/ambusos-api/internal/store"
)

func newTestProjector(t *testing.T) (*Projector, *store.SQLite) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "projection_test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return New(st, nil, logger), st
}

func TestAmbulanceViewEmbedsHospitalRef(t *testing.T) {
	p, st := newTestProjector(t)
	ctx := context.Background()

	h, err := st.CreateHospital(ctx, &domain.Hospital{
		Name: "Central", Address: "Calle 10", Capacity: 80, Category: "General",
	})
	require.NoError(t, err)

	a, err := st.CreateAmbulance(ctx, &domain.Ambulance{
		Plate: "ABC-123", Category: "Básica", HospitalID: &h.ID,
	})
	require.NoError(t, err)

	view, err := p.Ambulance(ctx, *a)
	require.NoError(t, err)

	payload, err := json.Marshal(view)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))

	hospital, ok := decoded["hospital"].(map[string]any)
	require.True(t, ok, "hospital embed missing: %s", payload)
	assert.Equal(t, "Central", hospital["nombre"])
	assert.Equal(t, float64(h.ID), hospital["id"])
	// The embed is shallow: no address, capacity or ambulance back-reference.
	assert.Len(t, hospital, 2)
}

func TestAmbulanceViewNullHospital(t *testing.T) {
	p, st := newTestProjector(t)
	ctx := context.Background()

	a, err := st.CreateAmbulance(ctx, &domain.Ambulance{Plate: "SIN-001", Category: "UTIM"})
	require.NoError(t, err)

	view, err := p.Ambulance(ctx, *a)
	require.NoError(t, err)

	payload, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"hospital":null`)
}

func TestPersonnelViewOmitsCredential(t *testing.T) {
	p, _ := newTestProjector(t)

	role := "Conductor"
	view := p.Person(domain.Personnel{
		ID: 1, Name: "Carlos", Email: "c@ambusos.co",
		PasswordHash: "$2a$10$secret", RoleName: &role,
	})

	payload, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "secret")
	assert.Contains(t, string(payload), `"rol":"Conductor"`)
}

func TestTripViewCarriesOnlyAccidentID(t *testing.T) {
	p, _ := newTestProjector(t)

	accID := int64(7)
	view := p.Trip(domain.Trip{ID: 3, Duration: "00:25:00", AccidentID: &accID})

	payload, err := json.Marshal(view)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, float64(7), decoded["accidente_id"])
	// No nested report object, so report -> trips -> report cannot loop.
	assert.NotContains(t, decoded, "accidente")
}

func TestAccidentViewFormatsDate(t *testing.T) {
	p, _ := newTestProjector(t)

	date, err := time.Parse("2006-01-02", "2026-08-30")
	require.NoError(t, err)

	view := p.Accident(domain.AccidentReport{
		ID: 1, FirstName: "María", LastName: "Lopez", Gender: "F",
		Narrative: "n", ReportDate: date, InsurerCode: "SURA", Severity: "grave",
	})
	assert.Equal(t, "2026-08-30", view.ReportDate)
}

func TestAssignmentViewJoinsBothSides(t *testing.T) {
	p, _ := newTestProjector(t)

	role := "Paramédico"
	hospital := &domain.Hospital{ID: 2, Name: "Central", Address: "Calle 10", Capacity: 80, Category: "General"}
	assigned := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)

	view := p.Assignment(domain.AssignmentDetail{
		Assignment: domain.Assignment{ID: 5, PersonnelID: 1, AmbulanceID: 3, AssignedAt: assigned},
		Personnel:  domain.Personnel{ID: 1, Name: "Ana", Email: "ana@ambusos.co", RoleName: &role},
		Ambulance:  domain.Ambulance{ID: 3, Plate: "ABC-123", Category: "Medicalizada", HospitalID: &hospital.ID},
		Hospital:   hospital,
	})

	assert.Equal(t, "Ana", view.Person.Name)
	assert.Equal(t, "ABC-123", view.Ambulance.Plate)
	require.NotNil(t, view.Ambulance.Hospital)
	assert.Equal(t, "Central", view.Ambulance.Hospital.Name)
	require.NotNil(t, view.PersonRole)
	assert.Equal(t, "Paramédico", *view.PersonRole)
	assert.Equal(t, "2026-08-30T14:30:00Z", view.AssignedAt)
}
