package memory

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/m04kA/HS-BookingService/internal/domain"
)

// ErrInvalidSeed возвращается при ошибках файла начальных данных
var ErrInvalidSeed = errors.New("memory: invalid seed")

// Seed начальные данные хранилища (пользователи и услуги)
type Seed struct {
	Users    []SeedUser    `toml:"users"`
	Services []SeedService `toml:"services"`
}

// SeedUser пользователь в файле начальных данных
type SeedUser struct {
	ID   int64  `toml:"id"`
	Name string `toml:"name"`
	Role string `toml:"role"`
}

// SeedService услуга в файле начальных данных.
// Цена задается строкой, чтобы не терять точность.
type SeedService struct {
	ID              int64  `toml:"id"`
	ProviderID      int64  `toml:"provider_id"`
	Name            string `toml:"name"`
	Price           string `toml:"price"`
	DurationMinutes int    `toml:"duration_minutes"`
	IsAvailable     bool   `toml:"is_available"`
}

// LoadSeedFile читает TOML файл начальных данных и загружает его в хранилище
func (s *Store) LoadSeedFile(path string) error {
	var seed Seed
	if _, err := toml.DecodeFile(path, &seed); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrInvalidSeed, path, err)
	}
	return s.LoadSeed(seed)
}

// LoadSeed загружает начальные данные в хранилище
func (s *Store) LoadSeed(seed Seed) error {
	users := make([]domain.User, 0, len(seed.Users))
	for _, u := range seed.Users {
		role, err := domain.ParseRole(u.Role)
		if err != nil {
			return fmt.Errorf("%w: user %d: %v", ErrInvalidSeed, u.ID, err)
		}
		users = append(users, domain.User{ID: u.ID, Name: u.Name, Role: role})
	}

	services := make([]domain.Service, 0, len(seed.Services))
	for _, svc := range seed.Services {
		price, err := decimal.NewFromString(svc.Price)
		if err != nil {
			return fmt.Errorf("%w: service %d price: %v", ErrInvalidSeed, svc.ID, err)
		}
		services = append(services, domain.Service{
			ID:              svc.ID,
			ProviderID:      svc.ProviderID,
			Name:            svc.Name,
			Price:           price,
			DurationMinutes: svc.DurationMinutes,
			IsAvailable:     svc.IsAvailable,
		})
	}

	for _, u := range users {
		s.AddUser(u)
	}
	for _, svc := range services {
		s.AddService(svc)
	}

	return nil
}
