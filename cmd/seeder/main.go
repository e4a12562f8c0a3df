package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"wearapp_hotels/internal/adapters/observability"
	"wearapp_hotels/internal/domain"
	"wearapp_hotels/internal/shared"
	mysqlrepo "wearapp_hotels/internal/storage/mysql"
)

type seedRecord struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Price       float64 `json:"price"`
}

// Bulk-loads hotels from a JSON array file into MySQL through the regular
// command service. Usage: seeder <file.json>
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: seeder <file.json>")
	}
	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Str("file", os.Args[1]).Msg("read seed file failed")
	}
	var records []seedRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Fatal().Err(err).Msg("seed file is not a JSON array of hotels")
	}

	log.Info().
		Int("records", len(records)).
		Int("workers", cfg.SeedWorkers).
		Int("rate", cfg.SeedRate).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	defer db.Close()
	log.Info().Msg("db ping ok")

	var repo domain.HotelRepository = mysqlrepo.New(db)

	limiter := rate.NewLimiter(rate.Limit(cfg.SeedRate), 1)
	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)

	for i, rec := range records {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(n int, rec seedRecord) {
			defer wg.Done()
			defer sem.Release(1)

			if err := limiter.Wait(ctx); err != nil {
				log.Warn().Int("record", n).Err(err).Msg("rate wait failed")
				return
			}
			h, err := repo.Insert(ctx, domain.Hotel{
				Title:       rec.Title,
				Description: rec.Description,
				Latitude:    rec.Latitude,
				Longitude:   rec.Longitude,
				Price:       rec.Price,
			})
			if err != nil {
				log.Warn().Int("record", n).Str("title", rec.Title).Err(err).Msg("insert failed")
				return
			}
			mu.Lock()
			ok++
			mu.Unlock()
			log.Info().Int64("id", h.ID).Str("title", h.Title).Msg("insert ok")
		}(i, rec)
	}

	wg.Wait()
	log.Info().Int("inserted", ok).Int("total", len(records)).Msg("seeding completed")
}
