package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"twse_codes/internal/feature/codes/adapters/csvstore"
	"twse_codes/internal/feature/codes/adapters/sqlstore"
	"twse_codes/internal/feature/codes/adapters/twse"
	"twse_codes/internal/feature/codes/usecase"
	"twse_codes/internal/platform/db"
	platformhttp "twse_codes/internal/platform/http"
)

func main() {
	toCSV := flag.Bool("csv", true, "write the snapshot to a CSV file")
	toSQL := flag.Bool("sql", false, "write the snapshot to the database table")
	csvPath := flag.String("path", "codes.csv", "CSV snapshot file path")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	var sqlWriter usecase.SnapshotWriter
	if *toSQL {
		cfg := db.LoadConfigFromEnv()
		cfg.AutoMigrate = true // the table must exist before the first replace
		gdb, err := db.Open(cfg)
		if err != nil {
			log.Fatal(err)
		}
		sqlWriter = sqlstore.NewCodeRepository(gdb)
	}

	twseCfg := twse.LoadConfig()
	fetcher := twse.NewClient(twseCfg, platformhttp.NewHTTPClient(twseCfg.Timeout))
	uc := usecase.NewDownloadUsecase(fetcher, csvstore.NewStore(*csvPath), sqlWriter)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := uc.DownloadCodes(ctx, usecase.DownloadOptions{ToCSV: *toCSV, ToSQL: *toSQL}); err != nil {
		log.Fatal(err)
	}
	log.Println("download ok")
}
