package main

import (
	"context"
	"fmt"
	"os"

	market "bid-marketplace/internal/marketService"
	model "bid-marketplace/internal/models"
	"bid-marketplace/internal/repository"
	"bid-marketplace/internal/server"
	"bid-marketplace/utils"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	repo, err := setupRepository(ctx)
	if err != nil {
		utils.Fatal("Failed to set up storage", map[string]any{"error": err.Error()})
	}

	marketplaceSvc := market.NewMarketplaceService(repo)

	router := server.SetupRouter(marketplaceSvc)

	port := getPort()
	utils.Info("Starting marketplace server", map[string]any{"addr": port})
	if err := router.Run(port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// setupRepository selects the Postgres store when DATABASE_URL is configured,
// otherwise falls back to the in-memory store seeded with sample users
func setupRepository(ctx context.Context) (repository.MarketplaceDB, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		repo := repository.NewPostgresRepo(repository.OpenBunDB(dsn))
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		utils.Info("Using Postgres store", nil)
		return repo, nil
	}

	repo := repository.NewMemoryRepo()
	if err := prepopulateUsers(ctx, repo); err != nil {
		return nil, err
	}
	utils.Info("Using in-memory store", nil)
	return repo, nil
}

// prepopulateUsers adds sample users to the in-memory repo so collections and
// bids can be created against known identities
func prepopulateUsers(ctx context.Context, repo *repository.MemoryRepo) error {
	users := []model.User{
		{ID: "u1", Name: "Alice Carter", Email: "alice@example.com"},
		{ID: "u2", Name: "Ben Osei", Email: "ben@example.com"},
		{ID: "u3", Name: "Carla Reyes", Email: "carla@example.com"},
	}

	for _, user := range users {
		if err := repo.CreateUser(ctx, user); err != nil {
			return err
		}
	}
	return nil
}

// getPort returns the server port from env or defaults to ":8080"
func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return fmt.Sprintf(":%s", p)
	}
	return ":8080"
}
