package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lucaruboni/restaurant-advisor/internal/catalog"
	"github.com/lucaruboni/restaurant-advisor/internal/config"
	"github.com/lucaruboni/restaurant-advisor/internal/db"
	"github.com/lucaruboni/restaurant-advisor/internal/gateway"
	httpSrv "github.com/lucaruboni/restaurant-advisor/internal/http"
	"github.com/lucaruboni/restaurant-advisor/internal/logger"
	"github.com/lucaruboni/restaurant-advisor/internal/repository"
	"github.com/lucaruboni/restaurant-advisor/internal/scheduler"
	"github.com/lucaruboni/restaurant-advisor/internal/service"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the feedback form server and campaign scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger.Init(cfg.Log.Level)

		cat, err := catalog.Load(cfg.Catalog.RestaurantsFile, cfg.Catalog.CountriesFile)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		mysqlDB, err := db.NewMySQLConnection(cfg.MySQL)
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer mysqlDB.Close()

		// Redis only backs rate limiting; missing Redis is a warning, not a failure.
		redisClient, err := db.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("redis unavailable, rate limiting disabled: %v", err)
			redisClient = nil
		} else {
			defer func() { _ = redisClient.Close() }()
		}

		gw := gateway.NewHTTPGateway(cfg.Gateway)

		sched := scheduler.New(cfg.Campaign.Tick, gw)
		sched.Start()
		defer sched.Stop()

		repo := repository.NewSubmissionsRepository(mysqlDB)
		campaign := scheduler.NewCampaign(sched, cfg.Campaign)
		submitSvc := service.NewSubmission(cat, repo, gw, campaign, cfg.Campaign.FirstDelay)
		validateSvc := service.NewValidation(cat, repo)

		server := httpSrv.NewServer(cfg, cat, submitSvc, validateSvc, redisClient)

		errCh := make(chan error, 1)
		go func() {
			log.Printf("starting http on %s", cfg.HTTP.Addr)
			errCh <- server.Start(cfg.HTTP.Addr)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			log.Printf("signal received: %s, shutting down...", sig)
		case err := <-errCh:
			if err != nil {
				log.Printf("http server exited: %v", err)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)

		return nil
	},
}
