package cmd

import (
	"database/sql"
	"errors"
	"fmt"

	"atmlocator/atms"
	"atmlocator/mapview"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var file, field string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert ATM locations from a static JSON asset into MySQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireDatabase(); err != nil {
				return err
			}
			if field == "" {
				field = cfg.AtmSourceField
			}

			ctx := cmd.Context()
			records, err := (&mapview.FileSource{Path: file, Field: field}).List(ctx)
			if err != nil {
				return err
			}

			db, err := sql.Open("mysql", cfg.DatabaseDSN)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			if err := atms.EnsureSchema(ctx, db); err != nil {
				return err
			}

			inserted := 0
			for _, atm := range records {
				if atm.Id == "" {
					atm.Id = uuid.NewString()
				}
				err := atms.InsertAtm(ctx, db, atm)
				if errors.Is(err, atms.ErrDuplicateAtm) {
					log.Warn("skipping existing atm", "id", atm.Id, "name", atm.Name)
					continue
				}
				if err != nil {
					return err
				}
				inserted++
			}

			redisClient := redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			})
			defer redisClient.Close()
			if err := atms.InvalidateListCache(ctx, redisClient); err != nil {
				log.CacheError("invalidate", "atms:list", err)
			}

			log.Info("seed finished", "read", len(records), "inserted", inserted)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "atms.json", "JSON asset holding an array or an object with the array field")
	cmd.Flags().StringVar(&field, "field", "", "array field for object-shaped files (default $ATM_SOURCE_FIELD)")
	return cmd
}
