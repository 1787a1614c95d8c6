package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"twse_codes/internal/app/router"
	"twse_codes/internal/feature/codes/adapters/csvstore"
	"twse_codes/internal/feature/codes/adapters/sqlstore"
	"twse_codes/internal/feature/codes/adapters/twse"
	codeshandler "twse_codes/internal/feature/codes/transport/handler"
	"twse_codes/internal/feature/codes/usecase"
	"twse_codes/internal/platform/cache"
	"twse_codes/internal/platform/db"
	platformhttp "twse_codes/internal/platform/http"
	platformredis "twse_codes/internal/platform/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	// db
	gdb, err := db.Open(db.LoadConfigFromEnv())
	if err != nil {
		log.Fatal(err)
	}

	// Redis (optional; the service runs uncached without it)
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(platformredis.LoadConfigFromEnv()); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	codeRepo := sqlstore.NewCodeRepository(gdb)
	cachedRepo := cache.NewCachingCodeRepository(rdb, cache.TimeUntilNextRefresh(), codeRepo, "codes")

	csvPath := os.Getenv("CSV_PATH")
	if csvPath == "" {
		csvPath = "codes.csv"
	}
	csvStore := csvstore.NewStore(csvPath)

	twseCfg := twse.LoadConfig()
	fetcher := twse.NewClient(twseCfg, platformhttp.NewHTTPClient(twseCfg.Timeout))

	// Usecase
	codesUC := usecase.NewCodesUsecase(cachedRepo)
	downloadUC := usecase.NewDownloadUsecase(fetcher, csvStore, cachedRepo)

	// Handler
	codesH := codeshandler.NewCodesHandler(codesUC)
	downloadH := codeshandler.NewDownloadHandler(downloadUC)

	r := router.NewRouter(codesH, downloadH)
	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
