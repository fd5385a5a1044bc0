// Package projection builds the nested read views served over the wire.
// Views embed referenced entities one level deep and by value, never by
// back-reference, so any serialized view is a finite tree.
package projection

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ambusos/ambusos-api/internal/cache"
	"github.com/ambusos/ambusos-api/internal/domain"
	"github.com/ambusos/ambusos-api/internal/store"
)

const viewDateLayout = "2006-01-02"

// PersonnelView is the wire shape of a staff record. The credential hash is
// never projected.
type PersonnelView struct {
	ID    int64   `json:"id"`
	Name  string  `json:"nombre"`
	Email string  `json:"email"`
	Role  *string `json:"rol"`
}

// AmbulanceView is an ambulance with its hospital embedded as a shallow ref,
// or null when unattached.
type AmbulanceView struct {
	ID       int64               `json:"id"`
	Plate    string              `json:"placa"`
	Category string              `json:"categoria_ambulancia"`
	Hospital *domain.HospitalRef `json:"hospital"`
}

// AssignmentView joins the assignment with both sides of the binding. The
// person's role rides along for roster displays.
type AssignmentView struct {
	ID         int64         `json:"id"`
	Person     PersonnelView `json:"persona"`
	Ambulance  AmbulanceView `json:"ambulancia"`
	PersonRole *string       `json:"rol_persona"`
	AssignedAt string        `json:"fecha_asignacion"`
}

// AccidentView is the wire shape of an accident report. Trips are served from
// their own listing, not embedded, so the report side stays flat.
type AccidentView struct {
	ID             int64   `json:"id"`
	FirstName      string  `json:"nombre"`
	LastName       string  `json:"apellido"`
	DocumentNumber *string `json:"numero_documento"`
	Gender         string  `json:"genero"`
	Insurance      *string `json:"seguro_medico"`
	Narrative      string  `json:"reporte_accidente"`
	ReportDate     string  `json:"fecha_reporte"`
	Location       *string `json:"ubicacion"`
	InsurerCode    string  `json:"EPS"`
	Severity       string  `json:"estado"`
	AmbulanceID    *int64  `json:"ambulancia_id"`
}

// TripView is the wire shape of a dispatch leg. Only the accident id is
// carried; embedding the report here would let a client walk report -> trips
// -> report forever.
type TripView struct {
	ID          int64   `json:"id"`
	Duration    string  `json:"tiempo"`
	Origin      *string `json:"punto_i"`
	Destination *string `json:"punto_f"`
	AccidentID  *int64  `json:"accidente_id"`
}

// Projector resolves entity references into embedded view fragments. Hospital
// refs go through the two-tier cache since they repeat across ambulance rows.
type Projector struct {
	store store.Store
	refs  *cache.HospitalRefs
	log   *logrus.Logger
}

// New creates a projector. refs may be nil when caching is disabled.
func New(st store.Store, refs *cache.HospitalRefs, logger *logrus.Logger) *Projector {
	return &Projector{store: st, refs: refs, log: logger}
}

// Person projects a staff record.
func (p *Projector) Person(person domain.Personnel) PersonnelView {
	return PersonnelView{ID: person.ID, Name: person.Name, Email: person.Email, Role: person.RoleName}
}

// People projects a staff listing.
func (p *Projector) People(people []domain.Personnel) []PersonnelView {
	views := make([]PersonnelView, 0, len(people))
	for _, person := range people {
		views = append(views, p.Person(person))
	}
	return views
}

// Ambulance projects an ambulance, resolving its hospital to a shallow ref.
func (p *Projector) Ambulance(ctx context.Context, a domain.Ambulance) (AmbulanceView, error) {
	view := AmbulanceView{ID: a.ID, Plate: a.Plate, Category: a.Category}
	if a.HospitalID == nil {
		return view, nil
	}
	ref, err := p.hospitalRef(ctx, *a.HospitalID)
	if err != nil {
		return AmbulanceView{}, err
	}
	view.Hospital = ref
	return view, nil
}

// Ambulances projects a fleet listing. Hospital lookups hit the cache, so a
// hospital shared by many ambulances is resolved once.
func (p *Projector) Ambulances(ctx context.Context, ambulances []domain.Ambulance) ([]AmbulanceView, error) {
	views := make([]AmbulanceView, 0, len(ambulances))
	for _, a := range ambulances {
		view, err := p.Ambulance(ctx, a)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Assignment projects a joined assignment row.
func (p *Projector) Assignment(d domain.AssignmentDetail) AssignmentView {
	view := AssignmentView{
		ID:         d.Assignment.ID,
		Person:     p.Person(d.Personnel),
		PersonRole: d.Personnel.RoleName,
		AssignedAt: d.Assignment.AssignedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	view.Ambulance = AmbulanceView{ID: d.Ambulance.ID, Plate: d.Ambulance.Plate, Category: d.Ambulance.Category}
	if d.Hospital != nil {
		view.Ambulance.Hospital = &domain.HospitalRef{ID: d.Hospital.ID, Name: d.Hospital.Name}
	}
	return view
}

// Assignments projects a joined assignment listing.
func (p *Projector) Assignments(details []domain.AssignmentDetail) []AssignmentView {
	views := make([]AssignmentView, 0, len(details))
	for _, d := range details {
		views = append(views, p.Assignment(d))
	}
	return views
}

// Accident projects an accident report.
func (p *Projector) Accident(r domain.AccidentReport) AccidentView {
	return AccidentView{
		ID:             r.ID,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		DocumentNumber: r.DocumentNumber,
		Gender:         r.Gender,
		Insurance:      r.Insurance,
		Narrative:      r.Narrative,
		ReportDate:     r.ReportDate.Format(viewDateLayout),
		Location:       r.Location,
		InsurerCode:    r.InsurerCode,
		Severity:       r.Severity,
		AmbulanceID:    r.AmbulanceID,
	}
}

// Accidents projects a report listing.
func (p *Projector) Accidents(reports []domain.AccidentReport) []AccidentView {
	views := make([]AccidentView, 0, len(reports))
	for _, r := range reports {
		views = append(views, p.Accident(r))
	}
	return views
}

// Trip projects a dispatch leg.
func (p *Projector) Trip(t domain.Trip) TripView {
	return TripView{ID: t.ID, Duration: t.Duration, Origin: t.Origin, Destination: t.Destination, AccidentID: t.AccidentID}
}

// Trips projects a dispatch-leg listing.
func (p *Projector) Trips(trips []domain.Trip) []TripView {
	views := make([]TripView, 0, len(trips))
	for _, t := range trips {
		views = append(views, p.Trip(t))
	}
	return views
}

// hospitalRef resolves a hospital id to its shallow embed, consulting the
// cache before the store and filling it on a miss.
func (p *Projector) hospitalRef(ctx context.Context, id int64) (*domain.HospitalRef, error) {
	if ref, ok := p.refs.Get(ctx, id); ok {
		return &ref, nil
	}
	h, err := p.store.GetHospital(ctx, id)
	if err != nil {
		return nil, err
	}
	ref := domain.HospitalRef{ID: h.ID, Name: h.Name}
	p.refs.Set(ctx, ref)
	return &ref, nil
}
