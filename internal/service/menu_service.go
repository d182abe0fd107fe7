package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"sidrabill/internal/dto"
	"sidrabill/internal/model"
	"sidrabill/internal/repository"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

type MenuService interface {
	List(ctx context.Context) []model.MenuItem
	Add(ctx context.Context, req dto.CreateMenuItemRequest) (*model.MenuItem, error)
	Update(ctx context.Context, id string, req dto.UpdateMenuItemRequest) (*model.MenuItem, error)
	Remove(ctx context.Context, id string) error
	// LookupRate resolves an item name to its catalog rate. Names are not
	// unique; the first match in catalog order wins.
	LookupRate(name string) (decimal.Decimal, bool)
}

type menuService struct {
	mu    sync.Mutex
	repo  repository.MenuRepository
	items []model.MenuItem
}

// NewMenuService loads the catalog snapshot; an empty or missing snapshot is
// replaced by the three seed items.
func NewMenuService(ctx context.Context, repo repository.MenuRepository) (MenuService, error) {
	items, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	s := &menuService{repo: repo, items: items}
	if len(items) == 0 {
		s.items = seedMenu()
		if err := repo.Save(ctx, s.items); err != nil {
			return nil, err
		}
		log.Info().Int("items", len(s.items)).Msg("menu seeded with defaults")
	}
	return s, nil
}

func seedMenu() []model.MenuItem {
	return []model.MenuItem{
		{ID: uuid.NewString(), Name: "Chicken Burger", Rate: decimal.NewFromInt(120)},
		{ID: uuid.NewString(), Name: "French Fries", Rate: decimal.NewFromInt(60)},
		{ID: uuid.NewString(), Name: "Cold Drink", Rate: decimal.NewFromInt(40)},
	}
}

func (s *menuService) List(_ context.Context) []model.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.MenuItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *menuService) Add(ctx context.Context, req dto.CreateMenuItemRequest) (*model.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := model.MenuItem{ID: uuid.NewString(), Name: req.Name, Rate: req.Rate}
	s.items = append(s.items, item)
	if err := s.repo.Save(ctx, s.items); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *menuService) Update(ctx context.Context, id string, req dto.UpdateMenuItemRequest) (*model.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if req.Name != nil {
			s.items[i].Name = *req.Name
		}
		if req.Rate != nil {
			s.items[i].Rate = *req.Rate
		}
		if err := s.repo.Save(ctx, s.items); err != nil {
			return nil, err
		}
		item := s.items[i]
		return &item, nil
	}
	return nil, ErrMenuItemNotFound
}

func (s *menuService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.repo.Save(ctx, s.items)
		}
	}
	return ErrMenuItemNotFound
}

func (s *menuService) LookupRate(name string) (decimal.Decimal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.Name == name {
			return item.Rate, true
		}
	}
	return decimal.Zero, false
}
