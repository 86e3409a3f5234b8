package memory

import (
	"context"

	"github.com/m04kA/HS-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/HS-BookingService/internal/infra/storage/catalog"
)

// CatalogRepository услуги и пользователи в памяти
type CatalogRepository struct {
	store *Store
}

// GetService получает услугу по ID
func (r *CatalogRepository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	defer r.store.rlock(ctx)()

	svc, ok := r.store.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	c := *svc
	return &c, nil
}

// GetUser получает пользователя по ID
func (r *CatalogRepository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	defer r.store.rlock(ctx)()

	u, ok := r.store.users[id]
	if !ok {
		return nil, catalogRepo.ErrUserNotFound
	}
	c := *u
	return &c, nil
}
