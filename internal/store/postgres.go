package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/ambusos/ambusos-api/internal/domain"
)

// Postgres implements Store on a pgx connection pool.
type Postgres struct {
	db  *pgxpool.Pool
	log *logrus.Logger
}

// NewPostgres creates a Postgres-backed store.
func NewPostgres(db *pgxpool.Pool, logger *logrus.Logger) *Postgres {
	return &Postgres{db: db, log: logger}
}

const (
	pgUniqueViolation = "23505"
	pgFKViolation     = "23503"
)

// uniqueConstraints maps Postgres unique constraint names to the entity/field
// pair reported to callers. The assignment pair constraint is handled in
// CreateAssignment, which knows the offending ids.
var uniqueConstraints = map[string]struct{ entity, field string }{
	"roles_nombre_key":      {"roles", "nombre"},
	"personal_email_key":    {"personal", "email"},
	"hospitales_nombre_key": {"hospitales", "nombre"},
	"ambulancia_placa_key":  {"ambulancia", "placa"},
}

// fkConstraints maps foreign key constraint names to the referenced entity.
var fkConstraints = map[string]string{
	"asignacion_ambulancia_personal_id_fkey":   "personal",
	"asignacion_ambulancia_ambulancia_id_fkey": "ambulancia",
	"formularioaccidente_ambulancia_id_fkey":   "ambulancia",
	"reporte_viajes_accidente_id_fkey":         "formularioaccidente",
	"ambulancia_hospital_id_fkey":              "hospitales",
	"personal_personal_rol_fkey":               "roles",
}

// pgError converts a driver error into the typed taxonomy. Anything that is
// not a recognized constraint violation wraps ErrStoreUnavailable.
func (s *Postgres) pgError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if uc, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
				return &domain.UniqueConstraintError{Entity: uc.entity, Field: uc.field}
			}
		case pgFKViolation:
			if entity, ok := fkConstraints[pgErr.ConstraintName]; ok {
				return fmt.Errorf("%s: referenced %s does not exist: %w", op, entity, domain.ErrNotFound)
			}
		}
	}
	s.log.WithFields(logrus.Fields{"op": op, "error": err}).Error("Postgres operation failed")
	return domain.NewStoreError(op, err)
}

// Roles

func (s *Postgres) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	role := &domain.Role{Name: name}
	err := s.db.QueryRow(ctx,
		`INSERT INTO roles (nombre) VALUES ($1) RETURNING id`, name,
	).Scan(&role.ID)
	if err != nil {
		return nil, s.pgError("creating role", err)
	}
	s.log.WithFields(logrus.Fields{"role_id": role.ID, "nombre": name}).Info("Role created")
	return role, nil
}

func (s *Postgres) GetRole(ctx context.Context, id int64) (*domain.Role, error) {
	var role domain.Role
	err := s.db.QueryRow(ctx,
		`SELECT id, nombre FROM roles WHERE id = $1`, id,
	).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "roles", ID: id}
		}
		return nil, s.pgError("getting role", err)
	}
	return &role, nil
}

func (s *Postgres) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := s.db.Query(ctx, `SELECT id, nombre FROM roles ORDER BY id`)
	if err != nil {
		return nil, s.pgError("listing roles", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, s.pgError("scanning role row", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, s.pgError("iterating role rows", err)
	}
	return roles, nil
}

func (s *Postgres) DeleteRole(ctx context.Context, id int64) error {
	result, err := s.db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgFKViolation {
			return &domain.ConflictError{Entity: "roles", Reason: "role is still held by personnel"}
		}
		return s.pgError("deleting role", err)
	}
	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "roles", ID: id}
	}
	s.log.WithFields(logrus.Fields{"role_id": id}).Info("Role deleted")
	return nil
}

// Personnel

func (s *Postgres) CreatePersonnel(ctx context.Context, p *domain.Personnel) (*domain.Personnel, error) {
	err := s.db.QueryRow(ctx, `
		INSERT INTO personal (nombre, email, contrasena_hash, personal_rol)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		p.Name, p.Email, p.PasswordHash, p.RoleName,
	).Scan(&p.ID)
	if err != nil {
		return nil, s.pgError("creating personnel", err)
	}
	s.log.WithFields(logrus.Fields{"personnel_id": p.ID, "email": p.Email}).Info("Personnel created")
	return p, nil
}

func (s *Postgres) GetPersonnel(ctx context.Context, id int64) (*domain.Personnel, error) {
	var p domain.Personnel
	err := s.db.QueryRow(ctx, `
		SELECT id, nombre, email, contrasena_hash, personal_rol
		FROM personal WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.RoleName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "personal", ID: id}
		}
		return nil, s.pgError("getting personnel", err)
	}
	return &p, nil
}

func (s *Postgres) GetPersonnelByEmail(ctx context.Context, email string) (*domain.Personnel, error) {
	var p domain.Personnel
	err := s.db.QueryRow(ctx, `
		SELECT id, nombre, email, contrasena_hash, personal_rol
		FROM personal WHERE email = $1`, email,
	).Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.RoleName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("personnel with email %q: %w", email, domain.ErrNotFound)
		}
		return nil, s.pgError("getting personnel by email", err)
	}
	return &p, nil
}

func (s *Postgres) ListPersonnel(ctx context.Context) ([]domain.Personnel, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, nombre, email, contrasena_hash, personal_rol
		FROM personal ORDER BY id`)
	if err != nil {
		return nil, s.pgError("listing personnel", err)
	}
	defer rows.Close()

	var people []domain.Personnel
	for rows.Next() {
		var p domain.Personnel
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.RoleName); err != nil {
			return nil, s.pgError("scanning personnel row", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, s.pgError("iterating personnel rows", err)
	}
	return people, nil
}

func (s *Postgres) UpdatePersonnel(ctx context.Context, p *domain.Personnel) error {
	result, err := s.db.Exec(ctx, `
		UPDATE personal
		SET nombre = $2, email = $3, contrasena_hash = $4, personal_rol = $5
		WHERE id = $1`,
		p.ID, p.Name, p.Email, p.PasswordHash, p.RoleName,
	)
	if err != nil {
		return s.pgError("updating personnel", err)
	}
	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "personal", ID: p.ID}
	}
	return nil
}

func (s *Postgres) DeletePersonnel(ctx context.Context, id int64) error {
	// Assignments referencing this person go with it (ON DELETE CASCADE).
	result, err := s.db.Exec(ctx, `DELETE FROM personal WHERE id = $1`, id)
	if err != nil {
		return s.pgError("deleting personnel", err)
	}
	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "personal", ID: id}
	}
	s.log.WithFields(logrus.Fields{"personnel_id": id}).Info("Personnel deleted")
	return nil
}

// Hospitals

func (s *Postgres) CreateHospital(ctx context.Context, h *domain.Hospital) (*domain.Hospital, error) {
	err := s.db.QueryRow(ctx, `
		INSERT INTO hospitales (nombre, direccion, capacidad_atencion, categoria)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		h.Name, h.Address, h.Capacity, h.Category,
	).Scan(&h.ID)
	if err != nil {
		return nil, s.pgError("creating hospital", err)
	}
	s.log.WithFields(logrus.Fields{"hospital_id": h.ID, "nombre": h.Name}).Info("Hospital created")
	return h, nil
}

func (s *Postgres) GetHospital(ctx context.Context, id int64) (*domain.Hospital, error) {
	var h domain.Hospital
	err := s.db.QueryRow(ctx, `
		SELECT id, nombre, direccion, capacidad_atencion, categoria
		FROM hospitales WHERE id = $1`, id,
	).Scan(&h.ID, &h.Name, &h.Address, &h.Capacity, &h.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "hospitales", ID: id}
		}
		return nil, s.pgError("getting hospital", err)
	}
	return &h, nil
}

func (s *Postgres) ListHospitals(ctx context.Context) ([]domain.Hospital, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, nombre, direccion, capacidad_atencion, categoria
		FROM hospitales ORDER BY id`)
	if err != nil {
		return nil, s.pgError("listing hospitals", err)
	}
	defer rows.Close()

	var hospitals []domain.Hospital
	for rows.Next() {
		var h domain.Hospital
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.Capacity, &h.Category); err != nil {
			return nil, s.pgError("scanning hospital row", err)
		}
		hospitals = append(hospitals, h)
	}
	if err := rows.Err(); err != nil {
		return nil, s.pgError("iterating hospital rows", err)
	}
	return hospitals, nil
}

func (s *Postgres) UpdateHospital(ctx context.Context, h *domain.Hospital) error {
	result, err := s.db.Exec(ctx, `
		UPDATE hospitales
		SET nombre = $2, direccion = $3, capacidad_atencion = $4, categoria = $5
		WHERE id = $1`,
		h.ID, h.Name, h.Address, h.Capacity, h.Category,
	)
	if err != nil {
		return s.pgError("updating hospital", err)
	}
	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "hospitales", ID: h.ID}
	}
	return nil
}

func (s *Postgres) DeleteHospital(ctx context.Context, id int64) error {
	// Ambulances pointing here are orphaned, not deleted (ON DELETE SET NULL).
	result, err := s.db.Exec(ctx, `DELETE FROM hospitales WHERE id = $1`, id)
	if err != nil {
		return s.pgError("deleting hospital", err)
	}
	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "hospitales", ID: id}
	}
	s.log.WithFields(logrus.Fields{"hospital_id": id}).Info("Hospital deleted")
	return nil
}

// Ambulances

func (s *Postgres) CreateAmbulance(ctx context.Context, a *domain.Ambulance) (*domain.Ambulance, error) {
	err := s.db.QueryRow(ctx, `
		INSERT INTO ambulancia (placa, categoria_ambulancia, hospital_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		a.Plate, a.Category, a.HospitalID,
	).Scan(&a.ID)
	if err != nil {
		return nil, s.pgError("creating ambulance", err)
	}
	s.log.WithFields(logrus.Fields{"ambulance_id": a.ID, "placa": a.Plate}).Info("Ambulance created")
	return a, nil
}

func (s *Postgres) GetAmbulance(ctx context.Context, id int64) (*domain.Ambulance, error) {
	var a domain.Ambulance
	err := s.db.QueryRow(ctx, `
		SELECT id, placa, categoria_ambulancia, hospital_id
		FROM ambulancia WHERE id = $1`, id,
	).Scan(&a.ID, &a.Plate, &a.Category, &a.HospitalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "ambulancia", ID: id}
		}
		return nil, s.pgError("getting ambulance", err)
	}
	return &a, nil
}

func (s *Postgres) ListAmbulances(ctx context.Context) ([]domain.Ambulance, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, placa, categoria_ambulancia, hospital_id
		FROM ambulancia ORDER BY id`)
	if err != nil {
		return nil, s.pgError("listing ambulances", err)
	}
	defer rows.Close()

	var ambulances []domain.Ambulance
	for rows.Next() {
		var a domain.Ambulance
		if err := rows.Scan(&a.ID, &a.Plate, &a.Category, &a.HospitalID); err != nil {
			return nil, s.pgError("scanning ambulance row", err)
		}
		ambulances = append(ambulances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, s.pgError("iterating ambulance rows", err)
	}
	return ambulances, nil
}

func (s *Postgres) UpdateAmbulance(ctx context.Context, a *domain.Ambulance) error {
	result, err := s.db.Exec(ctx, `
		UPDATE ambulancia
		SET placa = $2, categoria_ambulancia = $3, hospital_id = $4
		WHERE id = $1`,
		a.ID, a.Plate, a.Category, a.HospitalID,
	)
	if err != nil {
		return s.pgError("updating ambulance", err)
	}
	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "ambulancia", ID: a.ID}
	}
	return nil
}

func (s *Postgres) DeleteAmbulance(ctx context.Context, id int64) error {
	// Assignments cascade; accident reports keep their row with a nulled
	// ambulancia_id.
	result, err := s.db.Exec(ctx, `DELETE FROM ambulancia WHERE id = $1`, id)
	if err != nil {
		return s.pgError("deleting ambulance", err)
	}
	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "ambulancia", ID: id}
	}
	s.log.WithFields(logrus.Fields{"ambulance_id": id}).Info("Ambulance deleted")
	return nil
}

// Assignments

func (s *Postgres) CreateAssignment(ctx context.Context, personnelID, ambulanceID int64) (*domain.Assignment, error) {
	a := &domain.Assignment{PersonnelID: personnelID, AmbulanceID: ambulanceID}
	err := s.db.QueryRow(ctx, `
		INSERT INTO asignacion_ambulancia (personal_id, ambulancia_id)
		VALUES ($1, $2)
		RETURNING id, fecha_asignacion`,
		personnelID, ambulanceID,
	).Scan(&a.ID, &a.AssignedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch {
			case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == "unique_ambulancia_personal":
				return nil, &domain.DuplicateAssignmentError{PersonnelID: personnelID, AmbulanceID: ambulanceID}
			case pgErr.Code == pgFKViolation && pgErr.ConstraintName == "asignacion_ambulancia_personal_id_fkey":
				return nil, &domain.NotFoundError{Entity: "personal", ID: personnelID}
			case pgErr.Code == pgFKViolation && pgErr.ConstraintName == "asignacion_ambulancia_ambulancia_id_fkey":
				return nil, &domain.NotFoundError{Entity: "ambulancia", ID: ambulanceID}
			}
		}
		return nil, s.pgError("creating assignment", err)
	}
	s.log.WithFields(logrus.Fields{
		"assignment_id": a.ID,
		"personal_id":   personnelID,
		"ambulancia_id": ambulanceID,
	}).Info("Assignment created")
	return a, nil
}

func (s *Postgres) GetAssignment(ctx context.Context, id int64) (*domain.Assignment, error) {
	var a domain.Assignment
	err := s.db.QueryRow(ctx, `
		SELECT id, personal_id, ambulancia_id, fecha_asignacion
		FROM asignacion_ambulancia WHERE id = $1`, id,
	).Scan(&a.ID, &a.PersonnelID, &a.AmbulanceID, &a.AssignedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "asignacion_ambulancia", ID: id}
		}
		return nil, s.pgError("getting assignment", err)
	}
	return &a, nil
}

func (s *Postgres) ListAssignments(ctx context.Context) ([]domain.Assignment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, personal_id, ambulancia_id, fecha_asignacion
		FROM asignacion_ambulancia ORDER BY id`)
	if err != nil {
		return nil, s.pgError("listing assignments", err)
	}
	defer rows.Close()

	var assignments []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.ID, &a.PersonnelID, &a.AmbulanceID, &a.AssignedAt); err != nil {
			return nil, s.pgError("scanning assignment row", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, s.pgError("iterating assignment rows", err)
	}
	return assignments, nil
}

func (s *Postgres) DeleteAssignment(ctx context.Context, id int64) error {
	result, err := s.db.Exec(ctx, `DELETE FROM asignacion_ambulancia WHERE id = $1`, id)
	if err != nil {
		return s.pgError("deleting assignment", err)
	}
	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "asignacion_ambulancia", ID: id}
	}
	s.log.WithFields(logrus.Fields{"assignment_id": id}).Info("Assignment deleted")
	return nil
}

// Accident reports

func (s *Postgres) CreateAccident(ctx context.Context, a *domain.AccidentReport) (*domain.AccidentReport, error) {
	err := s.db.QueryRow(ctx, `
		INSERT INTO formularioaccidente (
			nombre, apellido, numero_documento, genero, seguro_medico,
			reporte_accidente, fecha_reporte, ubicacion, eps, estado, ambulancia_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		a.FirstName, a.LastName, a.DocumentNumber, a.Gender, a.Insurance,
		a.Narrative, a.ReportDate, a.Location, a.InsurerCode, a.Severity, a.AmbulanceID,
	).Scan(&a.ID)
	if err != nil {
		return nil, s.pgError("creating accident report", err)
	}
	s.log.WithFields(logrus.Fields{"accident_id": a.ID, "estado": a.Severity}).Info("Accident report created")
	return a, nil
}

func (s *Postgres) GetAccident(ctx context.Context, id int64) (*domain.AccidentReport, error) {
	var a domain.AccidentReport
	err := s.db.QueryRow(ctx, `
		SELECT id, nombre, apellido, numero_documento, genero, seguro_medico,
			   reporte_accidente, fecha_reporte, ubicacion, eps, estado, ambulancia_id
		FROM formularioaccidente WHERE id = $1`, id,
	).Scan(&a.ID, &a.FirstName, &a.LastName, &a.DocumentNumber, &a.Gender, &a.Insurance,
		&a.Narrative, &a.ReportDate, &a.Location, &a.InsurerCode, &a.Severity, &a.AmbulanceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "formularioaccidente", ID: id}
		}
		return nil, s.pgError("getting accident report", err)
	}
	return &a, nil
}

func (s *Postgres) ListAccidents(ctx context.Context) ([]domain.AccidentReport, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, nombre, apellido, numero_documento, genero, seguro_medico,
			   reporte_accidente, fecha_reporte, ubicacion, eps, estado, ambulancia_id
		FROM formularioaccidente ORDER BY id`)
	if err != nil {
		return nil, s.pgError("listing accident reports", err)
	}
	defer rows.Close()

	var reports []domain.AccidentReport
	for rows.Next() {
		var a domain.AccidentReport
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.DocumentNumber, &a.Gender,
			&a.Insurance, &a.Narrative, &a.ReportDate, &a.Location, &a.InsurerCode,
			&a.Severity, &a.AmbulanceID); err != nil {
			return nil, s.pgError("scanning accident row", err)
		}
		reports = append(reports, a)
	}
	if err := rows.Err(); err != nil {
		return nil, s.pgError("iterating accident rows", err)
	}
	return reports, nil
}

func (s *Postgres) UpdateAccident(ctx context.Context, a *domain.AccidentReport) error {
	result, err := s.db.Exec(ctx, `
		UPDATE formularioaccidente
		SET nombre = $2, apellido = $3, numero_documento = $4, genero = $5,
			seguro_medico = $6, reporte_accidente = $7, ubicacion = $8,
			eps = $9, estado = $10, ambulancia_id = $11
		WHERE id = $1`,
		a.ID, a.FirstName, a.LastName, a.DocumentNumber, a.Gender, a.Insurance,
		a.Narrative, a.Location, a.InsurerCode, a.Severity, a.AmbulanceID,
	)
	if err != nil {
		return s.pgError("updating accident report", err)
	}
	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "formularioaccidente", ID: a.ID}
	}
	return nil
}

func (s *Postgres) DeleteAccident(ctx context.Context, id int64) error {
	// Trips referencing this report are orphaned (ON DELETE SET NULL), kept
	// for audit.
	result, err := s.db.Exec(ctx, `DELETE FROM formularioaccidente WHERE id = $1`, id)
	if err != nil {
		return s.pgError("deleting accident report", err)
	}
	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "formularioaccidente", ID: id}
	}
	s.log.WithFields(logrus.Fields{"accident_id": id}).Info("Accident report deleted")
	return nil
}

// Trips

func (s *Postgres) CreateTrip(ctx context.Context, t *domain.Trip) (*domain.Trip, error) {
	err := s.db.QueryRow(ctx, `
		INSERT INTO reporte_viajes (tiempo, punto_i, punto_f, accidente_id)
		VALUES ($1::time, $2, $3, $4)
		RETURNING id`,
		t.Duration, t.Origin, t.Destination, t.AccidentID,
	).Scan(&t.ID)
	if err != nil {
		return nil, s.pgError("creating trip", err)
	}
	s.log.WithFields(logrus.Fields{"trip_id": t.ID}).Info("Trip created")
	return t, nil
}

func (s *Postgres) GetTrip(ctx context.Context, id int64) (*domain.Trip, error) {
	var t domain.Trip
	err := s.db.QueryRow(ctx, `
		SELECT id, tiempo::text, punto_i, punto_f, accidente_id
		FROM reporte_viajes WHERE id = $1`, id,
	).Scan(&t.ID, &t.Duration, &t.Origin, &t.Destination, &t.AccidentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "reporte_viajes", ID: id}
		}
		return nil, s.pgError("getting trip", err)
	}
	return &t, nil
}

func (s *Postgres) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	return s.queryTrips(ctx, `
		SELECT id, tiempo::text, punto_i, punto_f, accidente_id
		FROM reporte_viajes ORDER BY id`)
}

func (s *Postgres) TripsByAccident(ctx context.Context, accidentID int64) ([]domain.Trip, error) {
	return s.queryTrips(ctx, `
		SELECT id, tiempo::text, punto_i, punto_f, accidente_id
		FROM reporte_viajes WHERE accidente_id = $1 ORDER BY id`, accidentID)
}

func (s *Postgres) queryTrips(ctx context.Context, query string, args ...any) ([]domain.Trip, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, s.pgError("listing trips", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		var t domain.Trip
		if err := rows.Scan(&t.ID, &t.Duration, &t.Origin, &t.Destination, &t.AccidentID); err != nil {
			return nil, s.pgError("scanning trip row", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, s.pgError("iterating trip rows", err)
	}
	return trips, nil
}

func (s *Postgres) DeleteTrip(ctx context.Context, id int64) error {
	result, err := s.db.Exec(ctx, `DELETE FROM reporte_viajes WHERE id = $1`, id)
	if err != nil {
		return s.pgError("deleting trip", err)
	}
	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "reporte_viajes", ID: id}
	}
	return nil
}

// Ping reports pool health.
func (s *Postgres) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return domain.NewStoreError("pinging postgres", err)
	}
	return nil
}

// Close releases the pool.
func (s *Postgres) Close() error {
	s.db.Close()
	return nil
}
