package store

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambusos/ambusos-api/internal/domain"
)

// newMockStore wires a SQLite store onto a sqlmock connection so driver-level
// failures can be injected without a real database.
func newMockStore(t *testing.T) (*SQLite, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &SQLite{db: db, log: logger}, mock
}

func TestDriverFailureMapsToStoreUnavailable(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, nombre FROM roles").
		WillReturnError(errors.New("disk I/O error"))

	_, err := st.ListRoles(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))

	var se *domain.StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "listing roles", se.Op)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecFailureMapsToStoreUnavailable(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO hospitales").
		WillReturnError(errors.New("database is locked"))

	_, err := st.CreateHospital(context.Background(), &domain.Hospital{
		Name:     "Hospital Sur",
		Address:  "Carrera 30",
		Capacity: 40,
		Category: "General",
	})
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPingFailureMapsToStoreUnavailable(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectPing().WillReturnError(errors.New("connection gone"))

	err := st.Ping(context.Background())
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
}
