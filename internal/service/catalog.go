package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ambusos/ambusos-api/internal/domain"
	"github.com/ambusos/ambusos-api/internal/store"
)

// CatalogService exposes the closed vocabularies and manages the seeded role
// rows personnel reference by name.
type CatalogService struct {
	store store.Store
	guard *StoreGuard
	log   *logrus.Logger
}

// NewCatalogService creates the catalog service.
func NewCatalogService(st store.Store, guard *StoreGuard, logger *logrus.Logger) *CatalogService {
	return &CatalogService{store: st, guard: guard, log: logger}
}

// Vocabularies lists every enum for client-side form validation.
func (s *CatalogService) Vocabularies() []domain.Enum {
	return domain.Vocabularies()
}

// SeedRoles inserts any role rows missing from the store. Existing rows are
// left untouched.
func (s *CatalogService) SeedRoles(ctx context.Context) error {
	for _, member := range domain.RolesEnum.Members {
		err := s.guard.Do("seeding role", func() error {
			_, err := s.store.CreateRole(ctx, member.Value)
			return err
		})
		if err != nil {
			var uc *domain.UniqueConstraintError
			if errors.As(err, &uc) {
				continue
			}
			return err
		}
	}
	return nil
}

// CreateRole adds a role row. The name must belong to the roles vocabulary.
func (s *CatalogService) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	if err := domain.ValidateEnum(domain.RolesEnum, name); err != nil {
		return nil, err
	}
	var role *domain.Role
	err := s.guard.Do("creating role", func() error {
		var err error
		role, err = s.store.CreateRole(ctx, name)
		return err
	})
	return role, err
}

// GetRole fetches one role row.
func (s *CatalogService) GetRole(ctx context.Context, id int64) (*domain.Role, error) {
	var role *domain.Role
	err := s.guard.Do("getting role", func() error {
		var err error
		role, err = s.store.GetRole(ctx, id)
		return err
	})
	return role, err
}

// ListRoles lists the role rows.
func (s *CatalogService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	err := s.guard.Do("listing roles", func() error {
		var err error
		roles, err = s.store.ListRoles(ctx)
		return err
	})
	return roles, err
}

// DeleteRole removes a role row. Deletion is blocked while personnel still
// hold the role.
func (s *CatalogService) DeleteRole(ctx context.Context, id int64) error {
	return s.guard.Do("deleting role", func() error {
		return s.store.DeleteRole(ctx, id)
	})
}
