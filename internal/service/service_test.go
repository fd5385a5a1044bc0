package service

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/ambusos/ambusos-api/internal/auth"
	"github.com/ambusos/ambusos-api/internal/store"
)

// testEnv wires the full service layer onto a throwaway SQLite store.
type testEnv struct {
	store       store.Store
	catalog     *CatalogService
	personnel   *PersonnelService
	fleet       *FleetService
	assignments *AssignmentService
	accidents   *AccidentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "service_test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	guard := NewStoreGuard(logger)
	creds := auth.NewCredentials()

	return &testEnv{
		store:       st,
		catalog:     NewCatalogService(st, guard, logger),
		personnel:   NewPersonnelService(st, creds, guard, logger),
		fleet:       NewFleetService(st, nil, guard, logger),
		assignments: NewAssignmentService(st, guard, logger),
		accidents:   NewAccidentService(st, guard, logger),
	}
}

func ptr[T any](v T) *T { return &v }
