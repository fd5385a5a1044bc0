package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ambusos/ambusos-api/internal/cache"
	"github.com/ambusos/ambusos-api/internal/domain"
	"github.com/ambusos/ambusos-api/internal/store"
)

// FleetService manages hospitals and ambulances, including the
// nullify-on-delete relationship between them.
type FleetService struct {
	store store.Store
	refs  *cache.HospitalRefs
	guard *StoreGuard
	log   *logrus.Logger
}

// NewFleetService creates the fleet service. refs may be nil when caching is
// disabled.
func NewFleetService(st store.Store, refs *cache.HospitalRefs, guard *StoreGuard, logger *logrus.Logger) *FleetService {
	return &FleetService{store: st, refs: refs, guard: guard, log: logger}
}

// Hospitals

// CreateHospital validates category and capacity, then persists the row.
func (s *FleetService) CreateHospital(ctx context.Context, in domain.HospitalInput) (*domain.Hospital, error) {
	if err := domain.ValidateEnum(domain.HospitalCategoryEnum, in.Category); err != nil {
		return nil, err
	}
	if in.Capacity <= 0 {
		return nil, &domain.ValidationError{Field: "capacidad_atencion", Message: "must be positive"}
	}

	h := &domain.Hospital{Name: in.Name, Address: in.Address, Capacity: in.Capacity, Category: in.Category}
	err := s.guard.Do("creating hospital", func() error {
		var err error
		h, err = s.store.CreateHospital(ctx, h)
		return err
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// GetHospital fetches one hospital.
func (s *FleetService) GetHospital(ctx context.Context, id int64) (*domain.Hospital, error) {
	var h *domain.Hospital
	err := s.guard.Do("getting hospital", func() error {
		var err error
		h, err = s.store.GetHospital(ctx, id)
		return err
	})
	return h, err
}

// ListHospitals lists all hospitals.
func (s *FleetService) ListHospitals(ctx context.Context) ([]domain.Hospital, error) {
	var hospitals []domain.Hospital
	err := s.guard.Do("listing hospitals", func() error {
		var err error
		hospitals, err = s.store.ListHospitals(ctx)
		return err
	})
	return hospitals, err
}

// UpdateHospital applies a partial update and drops any cached ref so views
// never embed a stale name.
func (s *FleetService) UpdateHospital(ctx context.Context, id int64, in domain.HospitalUpdate) (*domain.Hospital, error) {
	if in.Category != nil {
		if err := domain.ValidateEnum(domain.HospitalCategoryEnum, *in.Category); err != nil {
			return nil, err
		}
	}
	if in.Capacity != nil && *in.Capacity <= 0 {
		return nil, &domain.ValidationError{Field: "capacidad_atencion", Message: "must be positive"}
	}

	var h *domain.Hospital
	err := s.guard.Do("getting hospital", func() error {
		var err error
		h, err = s.store.GetHospital(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		h.Name = *in.Name
	}
	if in.Address != nil {
		h.Address = *in.Address
	}
	if in.Capacity != nil {
		h.Capacity = *in.Capacity
	}
	if in.Category != nil {
		h.Category = *in.Category
	}

	err = s.guard.Do("updating hospital", func() error {
		return s.store.UpdateHospital(ctx, h)
	})
	if err != nil {
		return nil, err
	}
	s.refs.Invalidate(ctx, id)
	return h, nil
}

// DeleteHospital removes the hospital. Ambulances that referenced it stay,
// with their hospital reference nulled by the store.
func (s *FleetService) DeleteHospital(ctx context.Context, id int64) error {
	err := s.guard.Do("deleting hospital", func() error {
		return s.store.DeleteHospital(ctx, id)
	})
	if err != nil {
		return err
	}
	s.refs.Invalidate(ctx, id)
	return nil
}

// Ambulances

// CreateAmbulance validates category and, when attached, the hospital.
func (s *FleetService) CreateAmbulance(ctx context.Context, in domain.AmbulanceInput) (*domain.Ambulance, error) {
	if err := domain.ValidateEnum(domain.AmbulanceCategoryEnum, in.Category); err != nil {
		return nil, err
	}
	if in.HospitalID != nil {
		if _, err := s.GetHospital(ctx, *in.HospitalID); err != nil {
			return nil, err
		}
	}

	a := &domain.Ambulance{Plate: in.Plate, Category: in.Category, HospitalID: in.HospitalID}
	err := s.guard.Do("creating ambulance", func() error {
		var err error
		a, err = s.store.CreateAmbulance(ctx, a)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetAmbulance fetches one ambulance.
func (s *FleetService) GetAmbulance(ctx context.Context, id int64) (*domain.Ambulance, error) {
	var a *domain.Ambulance
	err := s.guard.Do("getting ambulance", func() error {
		var err error
		a, err = s.store.GetAmbulance(ctx, id)
		return err
	})
	return a, err
}

// ListAmbulances lists all ambulances.
func (s *FleetService) ListAmbulances(ctx context.Context) ([]domain.Ambulance, error) {
	var ambulances []domain.Ambulance
	err := s.guard.Do("listing ambulances", func() error {
		var err error
		ambulances, err = s.store.ListAmbulances(ctx)
		return err
	})
	return ambulances, err
}

// UpdateAmbulance applies a partial update. SetHospital with a nil HospitalID
// detaches the ambulance from its hospital.
func (s *FleetService) UpdateAmbulance(ctx context.Context, id int64, in domain.AmbulanceUpdate) (*domain.Ambulance, error) {
	if in.Category != nil {
		if err := domain.ValidateEnum(domain.AmbulanceCategoryEnum, *in.Category); err != nil {
			return nil, err
		}
	}
	if in.HospitalID != nil {
		if _, err := s.GetHospital(ctx, *in.HospitalID); err != nil {
			return nil, err
		}
	}

	var a *domain.Ambulance
	err := s.guard.Do("getting ambulance", func() error {
		var err error
		a, err = s.store.GetAmbulance(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if in.Plate != nil {
		a.Plate = *in.Plate
	}
	if in.Category != nil {
		a.Category = *in.Category
	}
	if in.HospitalID != nil || in.SetHospital {
		a.HospitalID = in.HospitalID
	}

	err = s.guard.Do("updating ambulance", func() error {
		return s.store.UpdateAmbulance(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAmbulance retires the ambulance. Its assignments are deleted with it;
// accident reports that referenced it keep their rows with a nulled
// reference.
func (s *FleetService) DeleteAmbulance(ctx context.Context, id int64) error {
	return s.guard.Do("deleting ambulance", func() error {
		return s.store.DeleteAmbulance(ctx, id)
	})
}
