package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lucaruboni/restaurant-advisor/internal/config"
	"github.com/lucaruboni/restaurant-advisor/internal/db"
	"github.com/lucaruboni/restaurant-advisor/internal/model"
	"github.com/lucaruboni/restaurant-advisor/internal/repository"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		sqlDB, err := db.NewMySQLConnection(cfg.MySQL)
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer sqlDB.Close()

		log.Println(">> Seeding demo submissions...")

		repo := repository.NewSubmissionsRepository(sqlDB)
		now := time.Now().UTC()

		demo := []model.Submission{
			{
				TenantID:  "trattoria-roma",
				Name:      "Ana",
				Email:     "ana@example.com",
				Phone:     600111222,
				Country:   "+34",
				Code:      "DEMO01",
				Validated: false,
				CreatedAt: now,
			},
			{
				TenantID:  "trattoria-roma",
				Name:      "Marco",
				Email:     "marco@example.com",
				Phone:     333000111,
				Country:   "+39",
				Code:      "DEMO02",
				Validated: true,
				CreatedAt: now.Add(-24 * time.Hour),
			},
			{
				TenantID:  "casa-pepe",
				Name:      "Lucia",
				Email:     "lucia@example.com",
				Phone:     600333444,
				Country:   "+34",
				Code:      "DEMO03",
				Validated: false,
				CreatedAt: now.Add(-time.Hour),
			},
		}

		ctx := context.Background()
		for _, s := range demo {
			// dedup the way the submission service does, so reruns stay clean
			existing, err := repo.QueryByField(ctx, s.TenantID, "phone", s.Phone)
			if err != nil {
				return fmt.Errorf("query %s/%d: %w", s.TenantID, s.Phone, err)
			}
			if len(existing) > 0 {
				continue
			}
			if _, err := repo.Insert(ctx, s.TenantID, s); err != nil {
				return fmt.Errorf("insert %s/%d: %w", s.TenantID, s.Phone, err)
			}
		}

		log.Println(">> Seed completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
