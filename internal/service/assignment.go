package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ambusos/ambusos-api/internal/domain"
	"github.com/ambusos/ambusos-api/internal/store"
)

// AssignmentService binds personnel to ambulances. The one-row-per-pair rule
// is enforced by the store's unique index, so two concurrent Assign calls for
// the same pair cannot both succeed.
type AssignmentService struct {
	store store.Store
	guard *StoreGuard
	log   *logrus.Logger
}

// NewAssignmentService creates the assignment service.
func NewAssignmentService(st store.Store, guard *StoreGuard, logger *logrus.Logger) *AssignmentService {
	return &AssignmentService{store: st, guard: guard, log: logger}
}

// Assign dispatches a person to an ambulance. Both ids must reference
// existing rows; an existing binding for the pair fails with
// DuplicateAssignmentError. The assignment timestamp is set by the store at
// creation and never changes.
func (s *AssignmentService) Assign(ctx context.Context, personnelID, ambulanceID int64) (*domain.Assignment, error) {
	err := s.guard.Do("getting personnel", func() error {
		_, err := s.store.GetPersonnel(ctx, personnelID)
		return err
	})
	if err != nil {
		return nil, err
	}
	err = s.guard.Do("getting ambulance", func() error {
		_, err := s.store.GetAmbulance(ctx, ambulanceID)
		return err
	})
	if err != nil {
		return nil, err
	}

	// The existence checks above give precise errors; the insert itself
	// still races against concurrent assigns and deletes, and the store's
	// constraints decide those.
	var a *domain.Assignment
	err = s.guard.Do("creating assignment", func() error {
		var err error
		a, err = s.store.CreateAssignment(ctx, personnelID, ambulanceID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Unassign deletes the binding. Repeating the call fails with NotFound.
func (s *AssignmentService) Unassign(ctx context.Context, id int64) error {
	return s.guard.Do("deleting assignment", func() error {
		return s.store.DeleteAssignment(ctx, id)
	})
}

// Get returns one assignment with its referenced entities loaded.
func (s *AssignmentService) Get(ctx context.Context, id int64) (*domain.AssignmentDetail, error) {
	var a *domain.Assignment
	err := s.guard.Do("getting assignment", func() error {
		var err error
		a, err = s.store.GetAssignment(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, *a, map[int64]*domain.Personnel{}, map[int64]*domain.Ambulance{}, map[int64]*domain.Hospital{})
}

// List returns all assignments with their referenced entities loaded. Lookups
// are memoized per call so a person or ambulance appearing in many rows is
// fetched once.
func (s *AssignmentService) List(ctx context.Context) ([]domain.AssignmentDetail, error) {
	var assignments []domain.Assignment
	err := s.guard.Do("listing assignments", func() error {
		var err error
		assignments, err = s.store.ListAssignments(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	people := map[int64]*domain.Personnel{}
	ambulances := map[int64]*domain.Ambulance{}
	hospitals := map[int64]*domain.Hospital{}

	details := make([]domain.AssignmentDetail, 0, len(assignments))
	for _, a := range assignments {
		d, err := s.detail(ctx, a, people, ambulances, hospitals)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}

func (s *AssignmentService) detail(
	ctx context.Context,
	a domain.Assignment,
	people map[int64]*domain.Personnel,
	ambulances map[int64]*domain.Ambulance,
	hospitals map[int64]*domain.Hospital,
) (*domain.AssignmentDetail, error) {
	p, ok := people[a.PersonnelID]
	if !ok {
		err := s.guard.Do("getting personnel", func() error {
			var err error
			p, err = s.store.GetPersonnel(ctx, a.PersonnelID)
			return err
		})
		if err != nil {
			return nil, err
		}
		people[a.PersonnelID] = p
	}

	amb, ok := ambulances[a.AmbulanceID]
	if !ok {
		err := s.guard.Do("getting ambulance", func() error {
			var err error
			amb, err = s.store.GetAmbulance(ctx, a.AmbulanceID)
			return err
		})
		if err != nil {
			return nil, err
		}
		ambulances[a.AmbulanceID] = amb
	}

	var h *domain.Hospital
	if amb.HospitalID != nil {
		h, ok = hospitals[*amb.HospitalID]
		if !ok {
			err := s.guard.Do("getting hospital", func() error {
				var err error
				h, err = s.store.GetHospital(ctx, *amb.HospitalID)
				return err
			})
			if err != nil {
				return nil, err
			}
			hospitals[*amb.HospitalID] = h
		}
	}

	return &domain.AssignmentDetail{Assignment: a, Personnel: *p, Ambulance: *amb, Hospital: h}, nil
}
