package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"gearguard/internal/repositories"
	"gearguard/pkg/config"
	"gearguard/pkg/database/postgresql"
	"gearguard/pkg/logger"
	"gearguard/seeders"

	"go.uber.org/zap"
)

func main() {
	runAdmin := flag.Bool("admin", false, "create the demo admin account")
	runSample := flag.Bool("sample", false, "fill an empty inventory with sample teams, equipment and requests")
	runAll := flag.Bool("all", false, "run every seeder (same as -admin -sample)")
	migrate := flag.Bool("migrate", true, "apply schema migrations first")
	flag.Parse()

	if !*runAdmin && !*runSample && !*runAll {
		log.Println("no seeder selected, available flags:")
		flag.PrintDefaults()
		log.Println("example: go run ./seeders/cmd/seed -all")
		return
	}

	cfg := config.New()
	appLogger, err := logger.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()
	seedLogger := appLogger.Named("seed")

	ctx := context.Background()
	if *migrate {
		if err := postgresql.Migrate(ctx, cfg.Postgres.DSN, seedLogger); err != nil {
			seedLogger.Fatal("apply migrations", zap.Error(err))
		}
	}

	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, seedLogger)
	if err != nil {
		seedLogger.Fatal("connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	userRepo := repositories.NewUserRepository(dbPool, seedLogger)

	if *runAll || *runAdmin {
		seedCfg := cfg.Seed
		seedCfg.InitDemoData = true
		seeders.SeedDemoAdmin(ctx, userRepo, seedCfg, seedLogger)
	}

	if *runAll || *runSample {
		admin, err := userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(cfg.Seed.AdminEmail)))
		if err != nil {
			seedLogger.Fatal("sample data needs the demo admin; run with -admin first", zap.Error(err))
		}
		err = seeders.SeedSampleData(ctx, seeders.SampleRepositories{
			Teams:     repositories.NewTeamRepository(dbPool, seedLogger),
			Equipment: repositories.NewEquipmentRepository(dbPool, seedLogger),
			Requests:  repositories.NewRequestRepository(dbPool, seedLogger),
		}, admin.ID, seedLogger)
		if err != nil {
			seedLogger.Fatal("seed sample data", zap.Error(err))
		}
	}

	seedLogger.Info("seeding finished")
}
