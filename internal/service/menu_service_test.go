package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidrabill/internal/dto"
	"sidrabill/internal/model"
	"sidrabill/internal/repository"
)

func TestMenu_SeedsDefaultsWhenEmpty(t *testing.T) {
	repo := repository.NewMemoryMenuRepository()
	svc, err := NewMenuService(context.Background(), repo)
	require.NoError(t, err)

	items := svc.List(context.Background())
	require.Len(t, items, 3)
	assert.Equal(t, "Chicken Burger", items[0].Name)
	assert.Equal(t, "120", items[0].Rate.String())

	// The seed is persisted, not just in memory.
	stored, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestMenu_KeepsExistingSnapshot(t *testing.T) {
	repo := repository.NewMemoryMenuRepository()
	require.NoError(t, repo.Save(context.Background(), []model.MenuItem{
		{ID: "m1", Name: "Shawarma", Rate: decimal.NewFromInt(90)},
	}))

	svc, err := NewMenuService(context.Background(), repo)
	require.NoError(t, err)
	items := svc.List(context.Background())
	require.Len(t, items, 1)
	assert.Equal(t, "Shawarma", items[0].Name)
}

func TestMenu_CRUD(t *testing.T) {
	repo := repository.NewMemoryMenuRepository()
	svc, err := NewMenuService(context.Background(), repo)
	require.NoError(t, err)
	ctx := context.Background()

	added, err := svc.Add(ctx, dto.CreateMenuItemRequest{Name: "Paneer Roll", Rate: decimal.NewFromInt(80)})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.Len(t, svc.List(ctx), 4)

	newRate := decimal.NewFromInt(95)
	updated, err := svc.Update(ctx, added.ID, dto.UpdateMenuItemRequest{Rate: &newRate})
	require.NoError(t, err)
	assert.Equal(t, "95", updated.Rate.String())
	assert.Equal(t, "Paneer Roll", updated.Name)

	require.NoError(t, svc.Remove(ctx, added.ID))
	assert.Len(t, svc.List(ctx), 3)

	_, err = svc.Update(ctx, added.ID, dto.UpdateMenuItemRequest{Rate: &newRate})
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
	assert.ErrorIs(t, svc.Remove(ctx, added.ID), ErrMenuItemNotFound)
}

func TestMenu_LookupRate(t *testing.T) {
	svc, err := NewMenuService(context.Background(), repository.NewMemoryMenuRepository())
	require.NoError(t, err)
	ctx := context.Background()

	rate, ok := svc.LookupRate("French Fries")
	require.True(t, ok)
	assert.Equal(t, "60", rate.String())

	_, ok = svc.LookupRate("french fries") // names match exactly
	assert.False(t, ok)

	// Duplicate names: the first catalog entry wins.
	_, err = svc.Add(ctx, dto.CreateMenuItemRequest{Name: "French Fries", Rate: decimal.NewFromInt(75)})
	require.NoError(t, err)
	rate, ok = svc.LookupRate("French Fries")
	require.True(t, ok)
	assert.Equal(t, "60", rate.String())
}
