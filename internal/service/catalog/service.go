package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/podocentro/clinic-api/internal/model"
	"github.com/podocentro/clinic-api/internal/repository"
)

const listKey = "services:list"

// Service manages the treatment catalog. The catalog is tiny and changes
// rarely, so the full list is held in an in-process cache instead of Redis.
type Service struct {
	repo  repository.ServiceRepository
	cache *gocache.Cache
}

func NewService(repo repository.ServiceRepository) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *Service) CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	svc := &model.Service{
		Name:           req.Name,
		Duration:       req.Duration,
		Price:          req.Price,
		AvailableSedes: sedeStrings(req.AvailableSedes),
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	s.cache.Delete(listKey)
	return svc, nil
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return svc, nil
}

func (s *Service) UpdateService(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Duration != nil {
		svc.Duration = *req.Duration
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.AvailableSedes != nil {
		svc.AvailableSedes = sedeStrings(req.AvailableSedes)
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	s.cache.Delete(listKey)
	return svc, nil
}

// DeleteService removes the catalog entry. Existing appointments keep their
// service_id; their resolved service name goes blank on the next read.
func (s *Service) DeleteService(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	s.cache.Delete(listKey)
	return nil
}

func (s *Service) ListServices(ctx context.Context) ([]*model.Service, error) {
	if cached, ok := s.cache.Get(listKey); ok {
		return cached.([]*model.Service), nil
	}

	services, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	s.cache.Set(listKey, services, gocache.DefaultExpiration)
	return services, nil
}

func sedeStrings(sedes []model.Sede) []string {
	out := make([]string, len(sedes))
	for i, sede := range sedes {
		out[i] = string(sede)
	}
	return out
}
