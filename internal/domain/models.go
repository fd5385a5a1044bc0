package domain

import "time"

// Core Entities
//
// Field names follow the wire vocabulary of the dispatch operation (Spanish
// table and column names); the structs themselves are transient projections
// of relational rows.

// Role is a seeded personnel role row. Name is unique and constrained to
// RolesEnum.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

// Personnel is a staff member. PasswordHash is write-only: it is derived from
// a plaintext credential at registration and never serialized back out.
type Personnel struct {
	ID           int64   `json:"id"`
	Name         string  `json:"nombre"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	RoleName     *string `json:"rol,omitempty"`
}

// Hospital is a care facility ambulances can be attached to.
type Hospital struct {
	ID       int64  `json:"id"`
	Name     string `json:"nombre"`
	Address  string `json:"direccion"`
	Capacity int    `json:"capacidad_atencion"`
	Category string `json:"categoria"`
}

// Ambulance is a fleet vehicle. HospitalID is a weak reference: deleting the
// hospital nulls it without touching the ambulance.
type Ambulance struct {
	ID         int64  `json:"id"`
	Plate      string `json:"placa"`
	Category   string `json:"categoria_ambulancia"`
	HospitalID *int64 `json:"hospital_id"`
}

// Assignment binds one person to one ambulance at a point in time. The
// (AmbulanceID, PersonnelID) pair is unique; both references are hard, so the
// row is deleted when either side is deleted.
type Assignment struct {
	ID          int64     `json:"id"`
	PersonnelID int64     `json:"personal_id"`
	AmbulanceID int64     `json:"ambulancia_id"`
	AssignedAt  time.Time `json:"fecha_asignacion"`
}

// AccidentReport is an intake record for a single accident/patient.
// AmbulanceID is a weak reference nulled when the ambulance is deleted.
type AccidentReport struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"nombre"`
	LastName       string    `json:"apellido"`
	DocumentNumber *string   `json:"numero_documento"`
	Gender         string    `json:"genero"`
	Insurance      *string   `json:"seguro_medico"`
	Narrative      string    `json:"reporte_accidente"`
	ReportDate     time.Time `json:"-"`
	Location       *string   `json:"ubicacion"`
	InsurerCode    string    `json:"EPS"`
	Severity       string    `json:"estado"`
	AmbulanceID    *int64    `json:"ambulancia_id"`
}

// Trip is one dispatch leg, optionally tied to an accident report. Duration
// is an HH:MM:SS clock value.
type Trip struct {
	ID          int64   `json:"id"`
	Duration    string  `json:"tiempo"`
	Origin      *string `json:"punto_i"`
	Destination *string `json:"punto_f"`
	AccidentID  *int64  `json:"accidente_id"`
}

// HospitalRef is the shallow hospital embed used by nested views.
type HospitalRef struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

// AssignmentDetail is an assignment row joined with the entities it
// references, loaded explicitly for projection.
type AssignmentDetail struct {
	Assignment Assignment
	Personnel  Personnel
	Ambulance  Ambulance
	Hospital   *Hospital
}

// Mutation inputs
//
// Pointer fields on the update inputs mean "leave unchanged".

// PersonnelInput carries a registration request. Password is the write-only
// plaintext credential.
type PersonnelInput struct {
	Name     string  `json:"nombre" binding:"required"`
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"contrasena" binding:"required"`
	RoleName *string `json:"rol"`
}

// PersonnelUpdate carries a partial profile/role update.
type PersonnelUpdate struct {
	Name     *string `json:"nombre"`
	Email    *string `json:"email"`
	Password *string `json:"contrasena"`
	RoleName *string `json:"rol"`
}

// HospitalInput carries hospital creation fields.
type HospitalInput struct {
	Name     string `json:"nombre" binding:"required"`
	Address  string `json:"direccion" binding:"required"`
	Capacity int    `json:"capacidad_atencion" binding:"required"`
	Category string `json:"categoria" binding:"required"`
}

// HospitalUpdate carries a partial hospital update.
type HospitalUpdate struct {
	Name     *string `json:"nombre"`
	Address  *string `json:"direccion"`
	Capacity *int    `json:"capacidad_atencion"`
	Category *string `json:"categoria"`
}

// AmbulanceInput carries ambulance creation fields.
type AmbulanceInput struct {
	Plate      string `json:"placa" binding:"required"`
	Category   string `json:"categoria_ambulancia" binding:"required"`
	HospitalID *int64 `json:"hospital_id"`
}

// AmbulanceUpdate carries a partial ambulance update. SetHospital
// distinguishes "null out the hospital" from "leave it unchanged".
type AmbulanceUpdate struct {
	Plate       *string `json:"placa"`
	Category    *string `json:"categoria_ambulancia"`
	HospitalID  *int64  `json:"hospital_id"`
	SetHospital bool    `json:"-"`
}

// AccidentInput carries an accident intake request. ReportDate defaults to
// the current date when empty; the wire format is YYYY-MM-DD.
type AccidentInput struct {
	FirstName      string  `json:"nombre" binding:"required"`
	LastName       string  `json:"apellido" binding:"required"`
	DocumentNumber *string `json:"numero_documento"`
	Gender         string  `json:"genero" binding:"required"`
	Insurance      *string `json:"seguro_medico"`
	Narrative      string  `json:"reporte_accidente" binding:"required"`
	ReportDate     string  `json:"fecha_reporte"`
	Location       *string `json:"ubicacion"`
	InsurerCode    string  `json:"EPS" binding:"required"`
	Severity       string  `json:"estado" binding:"required"`
	AmbulanceID    *int64  `json:"ambulancia_id"`
}

// AccidentUpdate carries a partial accident update; unspecified fields are
// left unchanged.
type AccidentUpdate struct {
	FirstName      *string `json:"nombre"`
	LastName       *string `json:"apellido"`
	DocumentNumber *string `json:"numero_documento"`
	Gender         *string `json:"genero"`
	Insurance      *string `json:"seguro_medico"`
	Narrative      *string `json:"reporte_accidente"`
	Location       *string `json:"ubicacion"`
	InsurerCode    *string `json:"EPS"`
	Severity       *string `json:"estado"`
	AmbulanceID    *int64  `json:"ambulancia_id"`
}

// TripInput carries a dispatch-leg creation request.
type TripInput struct {
	Duration    string  `json:"tiempo" binding:"required"`
	Origin      *string `json:"punto_i"`
	Destination *string `json:"punto_f"`
	AccidentID  *int64  `json:"accidente_id"`
}
