// cmd/seedmenu/main.go — resets the menu snapshot to the default catalog.
// Usage: go run cmd/seedmenu/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sidrabill/internal/infra"
	"sidrabill/internal/model"
	"sidrabill/internal/repository"
)

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	rdb, err := infra.NewRedis(redisURL)
	if err != nil {
		log.Fatalf("redis connect error: %v", err)
	}

	items := []model.MenuItem{
		{ID: uuid.NewString(), Name: "Chicken Burger", Rate: decimal.NewFromInt(120)},
		{ID: uuid.NewString(), Name: "French Fries", Rate: decimal.NewFromInt(60)},
		{ID: uuid.NewString(), Name: "Cold Drink", Rate: decimal.NewFromInt(40)},
	}

	repo := repository.NewMenuRepository(rdb)
	if err := repo.Save(context.Background(), items); err != nil {
		log.Fatalf("menu save error: %v", err)
	}
	fmt.Printf("menu reset with %d default items\n", len(items))
}
