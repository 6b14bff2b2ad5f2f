// Command seed loads the demo users, grounds and pricing rules into the
// database named by the usual DB_* variables.  Apply migrations/ first.
package main

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/turf-booking/internal/config"
	"github.com/iliyamo/turf-booking/internal/database"
	"github.com/iliyamo/turf-booking/internal/repository"
	"github.com/iliyamo/turf-booking/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.Open(ctx, cfg.DSN(), database.DefaultPool)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	grounds := repository.NewGroundRepo(db)
	if err := seed.Run(ctx, repository.NewUserRepo(db), grounds, repository.NewPricingRepo(db), cfg.BcryptCost); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("seed: done")
}
