package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ambusos/ambusos-api/internal/auth"
	"github.com/ambusos/ambusos-api/internal/domain"
	"github.com/ambusos/ambusos-api/internal/store"
)

// PersonnelService manages staff records and credential verification.
type PersonnelService struct {
	store store.Store
	creds *auth.Credentials
	guard *StoreGuard
	log   *logrus.Logger
}

// NewPersonnelService creates the personnel service.
func NewPersonnelService(st store.Store, creds *auth.Credentials, guard *StoreGuard, logger *logrus.Logger) *PersonnelService {
	return &PersonnelService{store: st, creds: creds, guard: guard, log: logger}
}

// Register creates a staff record. The plaintext credential is hashed before
// anything is persisted and discarded afterwards.
func (s *PersonnelService) Register(ctx context.Context, in domain.PersonnelInput) (*domain.Personnel, error) {
	if in.RoleName != nil {
		if err := domain.ValidateEnum(domain.RolesEnum, *in.RoleName); err != nil {
			return nil, err
		}
	}
	hash, err := s.creds.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmptyCredential) {
			return nil, &domain.ValidationError{Field: "contrasena", Message: "must not be empty"}
		}
		return nil, err
	}

	p := &domain.Personnel{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		RoleName:     in.RoleName,
	}
	err = s.guard.Do("creating personnel", func() error {
		var err error
		p, err = s.store.CreatePersonnel(ctx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Get fetches one staff record.
func (s *PersonnelService) Get(ctx context.Context, id int64) (*domain.Personnel, error) {
	var p *domain.Personnel
	err := s.guard.Do("getting personnel", func() error {
		var err error
		p, err = s.store.GetPersonnel(ctx, id)
		return err
	})
	return p, err
}

// List lists all staff records.
func (s *PersonnelService) List(ctx context.Context) ([]domain.Personnel, error) {
	var people []domain.Personnel
	err := s.guard.Do("listing personnel", func() error {
		var err error
		people, err = s.store.ListPersonnel(ctx)
		return err
	})
	return people, err
}

// Update applies a partial profile/role update. A new plaintext credential,
// if present, is rehashed; all other fields replace only when set.
func (s *PersonnelService) Update(ctx context.Context, id int64, in domain.PersonnelUpdate) (*domain.Personnel, error) {
	if in.RoleName != nil {
		if err := domain.ValidateEnum(domain.RolesEnum, *in.RoleName); err != nil {
			return nil, err
		}
	}

	var p *domain.Personnel
	err := s.guard.Do("getting personnel", func() error {
		var err error
		p, err = s.store.GetPersonnel(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	if in.RoleName != nil {
		p.RoleName = in.RoleName
	}
	if in.Password != nil {
		hash, err := s.creds.Hash(*in.Password)
		if err != nil {
			if errors.Is(err, auth.ErrEmptyCredential) {
				return nil, &domain.ValidationError{Field: "contrasena", Message: "must not be empty"}
			}
			return nil, err
		}
		p.PasswordHash = hash
	}

	err = s.guard.Do("updating personnel", func() error {
		return s.store.UpdatePersonnel(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a staff record; their assignments cascade away with it.
func (s *PersonnelService) Delete(ctx context.Context, id int64) error {
	return s.guard.Do("deleting personnel", func() error {
		return s.store.DeletePersonnel(ctx, id)
	})
}

// VerifyCredentials reports whether plaintext matches the stored hash for the
// staff record with the given email. An unknown email verifies false without
// error; neither the hash nor the plaintext leaves this method.
func (s *PersonnelService) VerifyCredentials(ctx context.Context, email, plaintext string) (*domain.Personnel, bool, error) {
	var p *domain.Personnel
	err := s.guard.Do("getting personnel by email", func() error {
		var err error
		p, err = s.store.GetPersonnelByEmail(ctx, email)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if !s.creds.Verify(plaintext, p.PasswordHash) {
		return nil, false, nil
	}
	return p, true, nil
}
