package services

import (
	"context"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/housecheck/inspections-service/internal/constants"
	"github.com/housecheck/inspections-service/internal/models"
	"github.com/housecheck/inspections-service/internal/repositories"
)

// ProfileService fronts the profiles table with a short-lived cache.
// Profiles change rarely but are fanned out onto every subtask row the
// client renders, so the cache takes the read pressure off Postgres.
type ProfileService struct {
	profileRepo repositories.ProfileRepository
	cache       *gocache.Cache
}

func NewProfileService(profileRepo repositories.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		cache:       gocache.New(constants.ProfileCacheTTL, constants.ProfileCacheCleanup),
	}
}

func (s *ProfileService) Upsert(ctx context.Context, p *models.Profile) error {
	if err := s.profileRepo.Upsert(ctx, p); err != nil {
		return err
	}
	s.cache.Set(p.ID.String(), p, gocache.DefaultExpiration)
	return nil
}

func (s *ProfileService) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	if cached, ok := s.cache.Get(id.String()); ok {
		return cached.(*models.Profile), nil
	}
	p, err := s.profileRepo.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	s.cache.Set(id.String(), p, gocache.DefaultExpiration)
	return p, nil
}

// GetByIDs resolves a batch, serving what it can from cache and
// fetching the rest in one query. Unknown ids are silently dropped.
func (s *ProfileService) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Profile, error) {
	var out []*models.Profile
	var missing []uuid.UUID

	for _, id := range ids {
		if cached, ok := s.cache.Get(id.String()); ok {
			out = append(out, cached.(*models.Profile))
		} else {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	fetched, err := s.profileRepo.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, p := range fetched {
		s.cache.Set(p.ID.String(), p, gocache.DefaultExpiration)
		out = append(out, p)
	}
	return out, nil
}

func (s *ProfileService) List(ctx context.Context) ([]*models.Profile, error) {
	return s.profileRepo.List(ctx)
}
