package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ambusos/ambusos-api/internal/domain"
	"github.com/ambusos/ambusos-api/internal/store"
)

const (
	dateLayout     = "2006-01-02"
	durationLayout = "15:04:05"
)

// AccidentService handles accident intake, triage updates and dispatch-leg
// (trip) tracking.
type AccidentService struct {
	store store.Store
	guard *StoreGuard
	log   *logrus.Logger
}

// NewAccidentService creates the accident service.
func NewAccidentService(st store.Store, guard *StoreGuard, logger *logrus.Logger) *AccidentService {
	return &AccidentService{store: st, guard: guard, log: logger}
}

// Report validates an intake request and persists the report. The report
// date defaults to today when omitted; an attached ambulance must exist.
func (s *AccidentService) Report(ctx context.Context, in domain.AccidentInput) (*domain.AccidentReport, error) {
	if err := domain.ValidateEnum(domain.GenderEnum, in.Gender); err != nil {
		return nil, err
	}
	if err := domain.ValidateEnum(domain.SeverityEnum, in.Severity); err != nil {
		return nil, err
	}

	reportDate := time.Now().UTC().Truncate(24 * time.Hour)
	if in.ReportDate != "" {
		parsed, err := time.Parse(dateLayout, in.ReportDate)
		if err != nil {
			return nil, &domain.ValidationError{Field: "fecha_reporte", Message: "must be YYYY-MM-DD"}
		}
		reportDate = parsed
	}

	if in.AmbulanceID != nil {
		err := s.guard.Do("getting ambulance", func() error {
			_, err := s.store.GetAmbulance(ctx, *in.AmbulanceID)
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	report := &domain.AccidentReport{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		DocumentNumber: in.DocumentNumber,
		Gender:         in.Gender,
		Insurance:      in.Insurance,
		Narrative:      in.Narrative,
		ReportDate:     reportDate,
		Location:       in.Location,
		InsurerCode:    in.InsurerCode,
		Severity:       in.Severity,
		AmbulanceID:    in.AmbulanceID,
	}
	err := s.guard.Do("creating accident report", func() error {
		var err error
		report, err = s.store.CreateAccident(ctx, report)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Get fetches one report.
func (s *AccidentService) Get(ctx context.Context, id int64) (*domain.AccidentReport, error) {
	var report *domain.AccidentReport
	err := s.guard.Do("getting accident report", func() error {
		var err error
		report, err = s.store.GetAccident(ctx, id)
		return err
	})
	return report, err
}

// List lists all reports.
func (s *AccidentService) List(ctx context.Context) ([]domain.AccidentReport, error) {
	var reports []domain.AccidentReport
	err := s.guard.Do("listing accident reports", func() error {
		var err error
		reports, err = s.store.ListAccidents(ctx)
		return err
	})
	return reports, err
}

// Update applies a partial update as triage proceeds. Changed enum fields are
// re-validated; an ambulance being attached must exist. The report date is
// immutable after intake.
func (s *AccidentService) Update(ctx context.Context, id int64, in domain.AccidentUpdate) (*domain.AccidentReport, error) {
	if in.Gender != nil {
		if err := domain.ValidateEnum(domain.GenderEnum, *in.Gender); err != nil {
			return nil, err
		}
	}
	if in.Severity != nil {
		if err := domain.ValidateEnum(domain.SeverityEnum, *in.Severity); err != nil {
			return nil, err
		}
	}
	if in.AmbulanceID != nil {
		err := s.guard.Do("getting ambulance", func() error {
			_, err := s.store.GetAmbulance(ctx, *in.AmbulanceID)
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	var report *domain.AccidentReport
	err := s.guard.Do("getting accident report", func() error {
		var err error
		report, err = s.store.GetAccident(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		report.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		report.LastName = *in.LastName
	}
	if in.DocumentNumber != nil {
		report.DocumentNumber = in.DocumentNumber
	}
	if in.Gender != nil {
		report.Gender = *in.Gender
	}
	if in.Insurance != nil {
		report.Insurance = in.Insurance
	}
	if in.Narrative != nil {
		report.Narrative = *in.Narrative
	}
	if in.Location != nil {
		report.Location = in.Location
	}
	if in.InsurerCode != nil {
		report.InsurerCode = *in.InsurerCode
	}
	if in.Severity != nil {
		report.Severity = *in.Severity
	}
	if in.AmbulanceID != nil {
		report.AmbulanceID = in.AmbulanceID
	}

	err = s.guard.Do("updating accident report", func() error {
		return s.store.UpdateAccident(ctx, report)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Delete removes a report. Its trips are kept with a nulled reference.
func (s *AccidentService) Delete(ctx context.Context, id int64) error {
	return s.guard.Do("deleting accident report", func() error {
		return s.store.DeleteAccident(ctx, id)
	})
}

// AddTrip records one dispatch leg. The duration must be an HH:MM:SS clock
// value; an attached accident must exist.
func (s *AccidentService) AddTrip(ctx context.Context, in domain.TripInput) (*domain.Trip, error) {
	if _, err := time.Parse(durationLayout, in.Duration); err != nil {
		return nil, &domain.ValidationError{Field: "tiempo", Message: "must be HH:MM:SS"}
	}
	if in.AccidentID != nil {
		err := s.guard.Do("getting accident report", func() error {
			_, err := s.store.GetAccident(ctx, *in.AccidentID)
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	trip := &domain.Trip{
		Duration:    in.Duration,
		Origin:      in.Origin,
		Destination: in.Destination,
		AccidentID:  in.AccidentID,
	}
	err := s.guard.Do("creating trip", func() error {
		var err error
		trip, err = s.store.CreateTrip(ctx, trip)
		return err
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// GetTrip fetches one trip.
func (s *AccidentService) GetTrip(ctx context.Context, id int64) (*domain.Trip, error) {
	var trip *domain.Trip
	err := s.guard.Do("getting trip", func() error {
		var err error
		trip, err = s.store.GetTrip(ctx, id)
		return err
	})
	return trip, err
}

// ListTrips lists all trips.
func (s *AccidentService) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	var trips []domain.Trip
	err := s.guard.Do("listing trips", func() error {
		var err error
		trips, err = s.store.ListTrips(ctx)
		return err
	})
	return trips, err
}

// Trips returns the dispatch legs of one report.
func (s *AccidentService) Trips(ctx context.Context, accidentID int64) ([]domain.Trip, error) {
	err := s.guard.Do("getting accident report", func() error {
		_, err := s.store.GetAccident(ctx, accidentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	var trips []domain.Trip
	err = s.guard.Do("listing trips by accident", func() error {
		var err error
		trips, err = s.store.TripsByAccident(ctx, accidentID)
		return err
	})
	return trips, err
}

// DeleteTrip removes one trip.
func (s *AccidentService) DeleteTrip(ctx context.Context, id int64) error {
	return s.guard.Do("deleting trip", func() error {
		return s.store.DeleteTrip(ctx, id)
	})
}
