package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	sqlite "modernc.org/sqlite"

	"github.com/ambusos/ambusos-api/internal/domain"
)

// SQLite implements Store on an embedded database file. It backs single-node
// deployments and the test suite; semantics match the Postgres store.
type SQLite struct {
	db  *sql.DB
	log *logrus.Logger
}

const (
	sqliteConstraintPrimary    = 19   // SQLITE_CONSTRAINT
	sqliteConstraintForeignKey = 787  // SQLITE_CONSTRAINT_FOREIGNKEY
	sqliteConstraintTrigger    = 1811 // SQLITE_CONSTRAINT_TRIGGER
	sqliteConstraintUnique     = 2067 // SQLITE_CONSTRAINT_UNIQUE

	sqliteDateLayout = "2006-01-02"
)

// sqliteForeignKeyViolation reports whether err is a foreign key constraint
// failure. The driver enforces foreign keys through internal triggers, so the
// extended code it reports is SQLITE_CONSTRAINT_TRIGGER rather than
// SQLITE_CONSTRAINT_FOREIGNKEY; match both, falling back on the primary
// constraint code plus the message.
func sqliteForeignKeyViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqliteConstraintForeignKey, sqliteConstraintTrigger:
		return true
	}
	return se.Code()&0xff == sqliteConstraintPrimary &&
		strings.Contains(se.Error(), "FOREIGN KEY")
}

// NewSQLite opens (creating if needed) the database at dbPath. Foreign key
// enforcement and WAL are enabled on every pooled connection through DSN
// pragmas, not per-session statements.
func NewSQLite(dbPath string, logger *logrus.Logger) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	dsn := "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.WithFields(logrus.Fields{"path": dbPath}).Info("SQLite store opened")
	return &SQLite{db: db, log: logger}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS roles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS personal (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		contrasena_hash TEXT NOT NULL,
		personal_rol TEXT REFERENCES roles (nombre) ON DELETE RESTRICT
	);

	CREATE TABLE IF NOT EXISTS hospitales (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre TEXT NOT NULL UNIQUE,
		direccion TEXT NOT NULL,
		capacidad_atencion INTEGER NOT NULL CHECK (capacidad_atencion > 0),
		categoria TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ambulancia (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		placa TEXT NOT NULL UNIQUE,
		categoria_ambulancia TEXT NOT NULL,
		hospital_id INTEGER REFERENCES hospitales (id) ON DELETE SET NULL
	);

	CREATE TABLE IF NOT EXISTS asignacion_ambulancia (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		personal_id INTEGER NOT NULL REFERENCES personal (id) ON DELETE CASCADE,
		ambulancia_id INTEGER NOT NULL REFERENCES ambulancia (id) ON DELETE CASCADE,
		fecha_asignacion TEXT NOT NULL,
		UNIQUE (ambulancia_id, personal_id)
	);

	CREATE TABLE IF NOT EXISTS formularioaccidente (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre TEXT NOT NULL,
		apellido TEXT NOT NULL,
		numero_documento TEXT,
		genero TEXT NOT NULL,
		seguro_medico TEXT,
		reporte_accidente TEXT NOT NULL,
		fecha_reporte TEXT NOT NULL,
		ubicacion TEXT,
		eps TEXT NOT NULL,
		estado TEXT NOT NULL,
		ambulancia_id INTEGER REFERENCES ambulancia (id) ON DELETE SET NULL
	);

	CREATE TABLE IF NOT EXISTS reporte_viajes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tiempo TEXT NOT NULL,
		punto_i TEXT,
		punto_f TEXT,
		accidente_id INTEGER REFERENCES formularioaccidente (id) ON DELETE SET NULL
	);

	CREATE INDEX IF NOT EXISTS idx_asignacion_personal ON asignacion_ambulancia (personal_id);
	CREATE INDEX IF NOT EXISTS idx_asignacion_ambulancia ON asignacion_ambulancia (ambulancia_id);
	CREATE INDEX IF NOT EXISTS idx_viajes_accidente ON reporte_viajes (accidente_id);
	`

	_, err := db.Exec(schema)
	return err
}

// sqliteUniqueColumns maps the "table.column" fragment SQLite reports on
// unique violations to the entity/field pair of the typed error.
var sqliteUniqueColumns = []struct {
	needle, entity, field string
}{
	{"roles.nombre", "roles", "nombre"},
	{"personal.email", "personal", "email"},
	{"hospitales.nombre", "hospitales", "nombre"},
	{"ambulancia.placa", "ambulancia", "placa"},
}

// sqliteError converts a driver error into the typed taxonomy. SQLite does
// not name the violated foreign key, so FK failures map to a generic missing
// reference; services pre-check referenced ids for precise NotFound errors.
func (s *SQLite) sqliteError(op string, err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		if se.Code() == sqliteConstraintUnique {
			msg := se.Error()
			for _, uc := range sqliteUniqueColumns {
				if strings.Contains(msg, uc.needle) {
					return &domain.UniqueConstraintError{Entity: uc.entity, Field: uc.field}
				}
			}
		}
		if sqliteForeignKeyViolation(err) {
			return fmt.Errorf("%s: referenced row does not exist: %w", op, domain.ErrNotFound)
		}
	}
	s.log.WithFields(logrus.Fields{"op": op, "error": err}).Error("SQLite operation failed")
	return domain.NewStoreError(op, err)
}

// Roles

func (s *SQLite) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	result, err := s.db.ExecContext(ctx, `INSERT INTO roles (nombre) VALUES (?)`, name)
	if err != nil {
		return nil, s.sqliteError("creating role", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, domain.NewStoreError("creating role", err)
	}
	return &domain.Role{ID: id, Name: name}, nil
}

func (s *SQLite) GetRole(ctx context.Context, id int64) (*domain.Role, error) {
	var role domain.Role
	err := s.db.QueryRowContext(ctx,
		`SELECT id, nombre FROM roles WHERE id = ?`, id,
	).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "roles", ID: id}
		}
		return nil, s.sqliteError("getting role", err)
	}
	return &role, nil
}

func (s *SQLite) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, nombre FROM roles ORDER BY id`)
	if err != nil {
		return nil, s.sqliteError("listing roles", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, s.sqliteError("scanning role row", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, s.sqliteError("iterating role rows", err)
	}
	return roles, nil
}

func (s *SQLite) DeleteRole(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, id)
	if err != nil {
		if sqliteForeignKeyViolation(err) {
			return &domain.ConflictError{Entity: "roles", Reason: "role is still held by personnel"}
		}
		return s.sqliteError("deleting role", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "roles", ID: id}
	}
	return nil
}

// Personnel

func (s *SQLite) CreatePersonnel(ctx context.Context, p *domain.Personnel) (*domain.Personnel, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO personal (nombre, email, contrasena_hash, personal_rol)
		VALUES (?, ?, ?, ?)`,
		p.Name, p.Email, p.PasswordHash, p.RoleName,
	)
	if err != nil {
		return nil, s.sqliteError("creating personnel", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, domain.NewStoreError("creating personnel", err)
	}
	p.ID = id
	s.log.WithFields(logrus.Fields{"personnel_id": id, "email": p.Email}).Info("Personnel created")
	return p, nil
}

func (s *SQLite) GetPersonnel(ctx context.Context, id int64) (*domain.Personnel, error) {
	var p domain.Personnel
	err := s.db.QueryRowContext(ctx, `
		SELECT id, nombre, email, contrasena_hash, personal_rol
		FROM personal WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.RoleName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "personal", ID: id}
		}
		return nil, s.sqliteError("getting personnel", err)
	}
	return &p, nil
}

func (s *SQLite) GetPersonnelByEmail(ctx context.Context, email string) (*domain.Personnel, error) {
	var p domain.Personnel
	err := s.db.QueryRowContext(ctx, `
		SELECT id, nombre, email, contrasena_hash, personal_rol
		FROM personal WHERE email = ?`, email,
	).Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.RoleName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("personnel with email %q: %w", email, domain.ErrNotFound)
		}
		return nil, s.sqliteError("getting personnel by email", err)
	}
	return &p, nil
}

func (s *SQLite) ListPersonnel(ctx context.Context) ([]domain.Personnel, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, nombre, email, contrasena_hash, personal_rol
		FROM personal ORDER BY id`)
	if err != nil {
		return nil, s.sqliteError("listing personnel", err)
	}
	defer rows.Close()

	var people []domain.Personnel
	for rows.Next() {
		var p domain.Personnel
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.RoleName); err != nil {
			return nil, s.sqliteError("scanning personnel row", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, s.sqliteError("iterating personnel rows", err)
	}
	return people, nil
}

func (s *SQLite) UpdatePersonnel(ctx context.Context, p *domain.Personnel) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE personal
		SET nombre = ?, email = ?, contrasena_hash = ?, personal_rol = ?
		WHERE id = ?`,
		p.Name, p.Email, p.PasswordHash, p.RoleName, p.ID,
	)
	if err != nil {
		return s.sqliteError("updating personnel", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "personal", ID: p.ID}
	}
	return nil
}

func (s *SQLite) DeletePersonnel(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM personal WHERE id = ?`, id)
	if err != nil {
		return s.sqliteError("deleting personnel", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "personal", ID: id}
	}
	return nil
}

// Hospitals

func (s *SQLite) CreateHospital(ctx context.Context, h *domain.Hospital) (*domain.Hospital, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO hospitales (nombre, direccion, capacidad_atencion, categoria)
		VALUES (?, ?, ?, ?)`,
		h.Name, h.Address, h.Capacity, h.Category,
	)
	if err != nil {
		return nil, s.sqliteError("creating hospital", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, domain.NewStoreError("creating hospital", err)
	}
	h.ID = id
	return h, nil
}

func (s *SQLite) GetHospital(ctx context.Context, id int64) (*domain.Hospital, error) {
	var h domain.Hospital
	err := s.db.QueryRowContext(ctx, `
		SELECT id, nombre, direccion, capacidad_atencion, categoria
		FROM hospitales WHERE id = ?`, id,
	).Scan(&h.ID, &h.Name, &h.Address, &h.Capacity, &h.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "hospitales", ID: id}
		}
		return nil, s.sqliteError("getting hospital", err)
	}
	return &h, nil
}

func (s *SQLite) ListHospitals(ctx context.Context) ([]domain.Hospital, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, nombre, direccion, capacidad_atencion, categoria
		FROM hospitales ORDER BY id`)
	if err != nil {
		return nil, s.sqliteError("listing hospitals", err)
	}
	defer rows.Close()

	var hospitals []domain.Hospital
	for rows.Next() {
		var h domain.Hospital
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.Capacity, &h.Category); err != nil {
			return nil, s.sqliteError("scanning hospital row", err)
		}
		hospitals = append(hospitals, h)
	}
	if err := rows.Err(); err != nil {
		return nil, s.sqliteError("iterating hospital rows", err)
	}
	return hospitals, nil
}

func (s *SQLite) UpdateHospital(ctx context.Context, h *domain.Hospital) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE hospitales
		SET nombre = ?, direccion = ?, capacidad_atencion = ?, categoria = ?
		WHERE id = ?`,
		h.Name, h.Address, h.Capacity, h.Category, h.ID,
	)
	if err != nil {
		return s.sqliteError("updating hospital", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "hospitales", ID: h.ID}
	}
	return nil
}

func (s *SQLite) DeleteHospital(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM hospitales WHERE id = ?`, id)
	if err != nil {
		return s.sqliteError("deleting hospital", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "hospitales", ID: id}
	}
	return nil
}

// Ambulances

func (s *SQLite) CreateAmbulance(ctx context.Context, a *domain.Ambulance) (*domain.Ambulance, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO ambulancia (placa, categoria_ambulancia, hospital_id)
		VALUES (?, ?, ?)`,
		a.Plate, a.Category, a.HospitalID,
	)
	if err != nil {
		return nil, s.sqliteError("creating ambulance", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, domain.NewStoreError("creating ambulance", err)
	}
	a.ID = id
	return a, nil
}

func (s *SQLite) GetAmbulance(ctx context.Context, id int64) (*domain.Ambulance, error) {
	var a domain.Ambulance
	err := s.db.QueryRowContext(ctx, `
		SELECT id, placa, categoria_ambulancia, hospital_id
		FROM ambulancia WHERE id = ?`, id,
	).Scan(&a.ID, &a.Plate, &a.Category, &a.HospitalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "ambulancia", ID: id}
		}
		return nil, s.sqliteError("getting ambulance", err)
	}
	return &a, nil
}

func (s *SQLite) ListAmbulances(ctx context.Context) ([]domain.Ambulance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, placa, categoria_ambulancia, hospital_id
		FROM ambulancia ORDER BY id`)
	if err != nil {
		return nil, s.sqliteError("listing ambulances", err)
	}
	defer rows.Close()

	var ambulances []domain.Ambulance
	for rows.Next() {
		var a domain.Ambulance
		if err := rows.Scan(&a.ID, &a.Plate, &a.Category, &a.HospitalID); err != nil {
			return nil, s.sqliteError("scanning ambulance row", err)
		}
		ambulances = append(ambulances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, s.sqliteError("iterating ambulance rows", err)
	}
	return ambulances, nil
}

func (s *SQLite) UpdateAmbulance(ctx context.Context, a *domain.Ambulance) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE ambulancia
		SET placa = ?, categoria_ambulancia = ?, hospital_id = ?
		WHERE id = ?`,
		a.Plate, a.Category, a.HospitalID, a.ID,
	)
	if err != nil {
		return s.sqliteError("updating ambulance", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "ambulancia", ID: a.ID}
	}
	return nil
}

func (s *SQLite) DeleteAmbulance(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM ambulancia WHERE id = ?`, id)
	if err != nil {
		return s.sqliteError("deleting ambulance", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "ambulancia", ID: id}
	}
	return nil
}

// Assignments

func (s *SQLite) CreateAssignment(ctx context.Context, personnelID, ambulanceID int64) (*domain.Assignment, error) {
	assignedAt := time.Now().UTC().Truncate(time.Second)
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO asignacion_ambulancia (personal_id, ambulancia_id, fecha_asignacion)
		VALUES (?, ?, ?)`,
		personnelID, ambulanceID, assignedAt.Format(time.RFC3339),
	)
	if err != nil {
		var se *sqlite.Error
		if errors.As(err, &se) && se.Code() == sqliteConstraintUnique &&
			strings.Contains(se.Error(), "asignacion_ambulancia") {
			return nil, &domain.DuplicateAssignmentError{PersonnelID: personnelID, AmbulanceID: ambulanceID}
		}
		return nil, s.sqliteError("creating assignment", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, domain.NewStoreError("creating assignment", err)
	}
	s.log.WithFields(logrus.Fields{
		"assignment_id": id,
		"personal_id":   personnelID,
		"ambulancia_id": ambulanceID,
	}).Info("Assignment created")
	return &domain.Assignment{
		ID:          id,
		PersonnelID: personnelID,
		AmbulanceID: ambulanceID,
		AssignedAt:  assignedAt,
	}, nil
}

func (s *SQLite) GetAssignment(ctx context.Context, id int64) (*domain.Assignment, error) {
	var a domain.Assignment
	var assignedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, personal_id, ambulancia_id, fecha_asignacion
		FROM asignacion_ambulancia WHERE id = ?`, id,
	).Scan(&a.ID, &a.PersonnelID, &a.AmbulanceID, &assignedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "asignacion_ambulancia", ID: id}
		}
		return nil, s.sqliteError("getting assignment", err)
	}
	a.AssignedAt, err = time.Parse(time.RFC3339, assignedAt)
	if err != nil {
		return nil, domain.NewStoreError("parsing assignment timestamp", err)
	}
	return &a, nil
}

func (s *SQLite) ListAssignments(ctx context.Context) ([]domain.Assignment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, personal_id, ambulancia_id, fecha_asignacion
		FROM asignacion_ambulancia ORDER BY id`)
	if err != nil {
		return nil, s.sqliteError("listing assignments", err)
	}
	defer rows.Close()

	var assignments []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		var assignedAt string
		if err := rows.Scan(&a.ID, &a.PersonnelID, &a.AmbulanceID, &assignedAt); err != nil {
			return nil, s.sqliteError("scanning assignment row", err)
		}
		if a.AssignedAt, err = time.Parse(time.RFC3339, assignedAt); err != nil {
			return nil, domain.NewStoreError("parsing assignment timestamp", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, s.sqliteError("iterating assignment rows", err)
	}
	return assignments, nil
}

func (s *SQLite) DeleteAssignment(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM asignacion_ambulancia WHERE id = ?`, id)
	if err != nil {
		return s.sqliteError("deleting assignment", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "asignacion_ambulancia", ID: id}
	}
	return nil
}

// Accident reports

func (s *SQLite) CreateAccident(ctx context.Context, a *domain.AccidentReport) (*domain.AccidentReport, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO formularioaccidente (
			nombre, apellido, numero_documento, genero, seguro_medico,
			reporte_accidente, fecha_reporte, ubicacion, eps, estado, ambulancia_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.FirstName, a.LastName, a.DocumentNumber, a.Gender, a.Insurance,
		a.Narrative, a.ReportDate.Format(sqliteDateLayout), a.Location,
		a.InsurerCode, a.Severity, a.AmbulanceID,
	)
	if err != nil {
		return nil, s.sqliteError("creating accident report", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, domain.NewStoreError("creating accident report", err)
	}
	a.ID = id
	s.log.WithFields(logrus.Fields{"accident_id": id, "estado": a.Severity}).Info("Accident report created")
	return a, nil
}

func (s *SQLite) scanAccident(sc interface{ Scan(dest ...any) error }) (*domain.AccidentReport, error) {
	var a domain.AccidentReport
	var reportDate string
	err := sc.Scan(&a.ID, &a.FirstName, &a.LastName, &a.DocumentNumber, &a.Gender,
		&a.Insurance, &a.Narrative, &reportDate, &a.Location, &a.InsurerCode,
		&a.Severity, &a.AmbulanceID)
	if err != nil {
		return nil, err
	}
	if a.ReportDate, err = time.Parse(sqliteDateLayout, reportDate); err != nil {
		return nil, domain.NewStoreError("parsing report date", err)
	}
	return &a, nil
}

func (s *SQLite) GetAccident(ctx context.Context, id int64) (*domain.AccidentReport, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, nombre, apellido, numero_documento, genero, seguro_medico,
			   reporte_accidente, fecha_reporte, ubicacion, eps, estado, ambulancia_id
		FROM formularioaccidente WHERE id = ?`, id)
	a, err := s.scanAccident(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "formularioaccidente", ID: id}
		}
		return nil, s.sqliteError("getting accident report", err)
	}
	return a, nil
}

func (s *SQLite) ListAccidents(ctx context.Context) ([]domain.AccidentReport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, nombre, apellido, numero_documento, genero, seguro_medico,
			   reporte_accidente, fecha_reporte, ubicacion, eps, estado, ambulancia_id
		FROM formularioaccidente ORDER BY id`)
	if err != nil {
		return nil, s.sqliteError("listing accident reports", err)
	}
	defer rows.Close()

	var reports []domain.AccidentReport
	for rows.Next() {
		a, err := s.scanAccident(rows)
		if err != nil {
			return nil, s.sqliteError("scanning accident row", err)
		}
		reports = append(reports, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, s.sqliteError("iterating accident rows", err)
	}
	return reports, nil
}

func (s *SQLite) UpdateAccident(ctx context.Context, a *domain.AccidentReport) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE formularioaccidente
		SET nombre = ?, apellido = ?, numero_documento = ?, genero = ?,
			seguro_medico = ?, reporte_accidente = ?, ubicacion = ?,
			eps = ?, estado = ?, ambulancia_id = ?
		WHERE id = ?`,
		a.FirstName, a.LastName, a.DocumentNumber, a.Gender, a.Insurance,
		a.Narrative, a.Location, a.InsurerCode, a.Severity, a.AmbulanceID, a.ID,
	)
	if err != nil {
		return s.sqliteError("updating accident report", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "formularioaccidente", ID: a.ID}
	}
	return nil
}

func (s *SQLite) DeleteAccident(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM formularioaccidente WHERE id = ?`, id)
	if err != nil {
		return s.sqliteError("deleting accident report", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "formularioaccidente", ID: id}
	}
	return nil
}

// Trips

func (s *SQLite) CreateTrip(ctx context.Context, t *domain.Trip) (*domain.Trip, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO reporte_viajes (tiempo, punto_i, punto_f, accidente_id)
		VALUES (?, ?, ?, ?)`,
		t.Duration, t.Origin, t.Destination, t.AccidentID,
	)
	if err != nil {
		return nil, s.sqliteError("creating trip", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, domain.NewStoreError("creating trip", err)
	}
	t.ID = id
	return t, nil
}

func (s *SQLite) GetTrip(ctx context.Context, id int64) (*domain.Trip, error) {
	var t domain.Trip
	err := s.db.QueryRowContext(ctx, `
		SELECT id, tiempo, punto_i, punto_f, accidente_id
		FROM reporte_viajes WHERE id = ?`, id,
	).Scan(&t.ID, &t.Duration, &t.Origin, &t.Destination, &t.AccidentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "reporte_viajes", ID: id}
		}
		return nil, s.sqliteError("getting trip", err)
	}
	return &t, nil
}

func (s *SQLite) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	return s.queryTrips(ctx, `
		SELECT id, tiempo, punto_i, punto_f, accidente_id
		FROM reporte_viajes ORDER BY id`)
}

func (s *SQLite) TripsByAccident(ctx context.Context, accidentID int64) ([]domain.Trip, error) {
	return s.queryTrips(ctx, `
		SELECT id, tiempo, punto_i, punto_f, accidente_id
		FROM reporte_viajes WHERE accidente_id = ? ORDER BY id`, accidentID)
}

func (s *SQLite) queryTrips(ctx context.Context, query string, args ...any) ([]domain.Trip, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.sqliteError("listing trips", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		var t domain.Trip
		if err := rows.Scan(&t.ID, &t.Duration, &t.Origin, &t.Destination, &t.AccidentID); err != nil {
			return nil, s.sqliteError("scanning trip row", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, s.sqliteError("iterating trip rows", err)
	}
	return trips, nil
}

func (s *SQLite) DeleteTrip(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reporte_viajes WHERE id = ?`, id)
	if err != nil {
		return s.sqliteError("deleting trip", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "reporte_viajes", ID: id}
	}
	return nil
}

// Ping reports database reachability.
func (s *SQLite) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return domain.NewStoreError("pinging sqlite", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
