// Package store persists the dispatch entities in a transactional relational
// database. Two implementations share the Store interface: Postgres (pgx) for
// production and embedded SQLite for single-node deployments and tests.
//
// Every method is one implicit transaction. Constraint violations surface as
// the typed errors in the domain package, never as raw driver errors:
// uniqueness as UniqueConstraintError (or DuplicateAssignmentError for the
// assignment pair), missing foreign rows as NotFoundError, blocked deletes as
// ConflictError, and infrastructure failures wrap ErrStoreUnavailable.
package store

import (
	"context"

	"github.com/ambusos/ambusos-api/internal/domain"
)

// Store is the persistence surface the services operate against.
type Store interface {
	// Roles
	CreateRole(ctx context.Context, name string) (*domain.Role, error)
	GetRole(ctx context.Context, id int64) (*domain.Role, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
	DeleteRole(ctx context.Context, id int64) error

	// Personnel
	CreatePersonnel(ctx context.Context, p *domain.Personnel) (*domain.Personnel, error)
	GetPersonnel(ctx context.Context, id int64) (*domain.Personnel, error)
	GetPersonnelByEmail(ctx context.Context, email string) (*domain.Personnel, error)
	ListPersonnel(ctx context.Context) ([]domain.Personnel, error)
	UpdatePersonnel(ctx context.Context, p *domain.Personnel) error
	DeletePersonnel(ctx context.Context, id int64) error

	// Hospitals
	CreateHospital(ctx context.Context, h *domain.Hospital) (*domain.Hospital, error)
	GetHospital(ctx context.Context, id int64) (*domain.Hospital, error)
	ListHospitals(ctx context.Context) ([]domain.Hospital, error)
	UpdateHospital(ctx context.Context, h *domain.Hospital) error
	DeleteHospital(ctx context.Context, id int64) error

	// Ambulances
	CreateAmbulance(ctx context.Context, a *domain.Ambulance) (*domain.Ambulance, error)
	GetAmbulance(ctx context.Context, id int64) (*domain.Ambulance, error)
	ListAmbulances(ctx context.Context) ([]domain.Ambulance, error)
	UpdateAmbulance(ctx context.Context, a *domain.Ambulance) error
	DeleteAmbulance(ctx context.Context, id int64) error

	// Assignments. CreateAssignment relies on the unique
	// (ambulancia_id, personal_id) index so the duplicate check and the
	// insert are one atomic unit under concurrency.
	CreateAssignment(ctx context.Context, personnelID, ambulanceID int64) (*domain.Assignment, error)
	GetAssignment(ctx context.Context, id int64) (*domain.Assignment, error)
	ListAssignments(ctx context.Context) ([]domain.Assignment, error)
	DeleteAssignment(ctx context.Context, id int64) error

	// Accident reports
	CreateAccident(ctx context.Context, a *domain.AccidentReport) (*domain.AccidentReport, error)
	GetAccident(ctx context.Context, id int64) (*domain.AccidentReport, error)
	ListAccidents(ctx context.Context) ([]domain.AccidentReport, error)
	UpdateAccident(ctx context.Context, a *domain.AccidentReport) error
	DeleteAccident(ctx context.Context, id int64) error

	// Trips
	CreateTrip(ctx context.Context, t *domain.Trip) (*domain.Trip, error)
	GetTrip(ctx context.Context, id int64) (*domain.Trip, error)
	ListTrips(ctx context.Context) ([]domain.Trip, error)
	TripsByAccident(ctx context.Context, accidentID int64) ([]domain.Trip, error)
	DeleteTrip(ctx context.Context, id int64) error

	// Ping reports store reachability.
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*Postgres)(nil)
	_ Store = (*SQLite)(nil)
)
