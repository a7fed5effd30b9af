package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/KAMASDM/naishad/internal/admin"
	"github.com/KAMASDM/naishad/internal/config"
	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/listing"
	"github.com/KAMASDM/naishad/internal/media"
	"github.com/KAMASDM/naishad/internal/models"
	"github.com/KAMASDM/naishad/internal/seed"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// connect loads the configuration, opens the database and brings the schema up to date.
func connect() (*config.Config, *gorm.DB, error) {
	cfg, err := config.LoadFrom(os.Getenv)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("migration failed: %w", err)
	}
	database.DB = db
	return cfg, db, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := connect()
			if err != nil {
				return err
			}
			fmt.Printf("Schema is up to date (%s).\n", cfg.DatabaseDriver)
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin panel user",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			role, _ := cmd.Flags().GetString("role")

			if _, _, err := connect(); err != nil {
				return err
			}

			user, err := admin.CreateUser(name, email, password, models.UserRole(role))
			if err != nil {
				return err
			}
			fmt.Printf("Created %s %s (id %d).\n", user.Role, user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().String("name", "", "display name")
	cmd.Flags().String("email", "", "login e-mail")
	cmd.Flags().String("password", "", "initial password")
	cmd.Flags().String("role", string(models.RoleSuperAdmin), "super_admin or editor")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load cities, areas, services and testimonials from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")

			fh, err := os.Open(path)
			if err != nil {
				return err
			}
			defer fh.Close()

			data, err := seed.Parse(fh)
			if err != nil {
				return err
			}

			_, db, err := connect()
			if err != nil {
				return err
			}
			res, err := seed.Apply(db, data)
			if err != nil {
				return err
			}
			fmt.Printf("Seeded %s.\n", res)
			return nil
		},
	}

	cmd.Flags().String("file", "seed.yaml", "seed file")
	return cmd
}

func importPropertiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-properties",
		Short: "Bulk import properties from an .xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")
			timeout, _ := cmd.Flags().GetDuration("timeout")

			fh, err := os.Open(path)
			if err != nil {
				return err
			}
			defer fh.Close()

			cfg, db, err := connect()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			store := media.NewStore(cfg.MediaPath, cfg.MediaURLPrefix)
			res, err := listing.Import(ctx, db, store, fh, nil)
			if err != nil {
				return err
			}

			fmt.Printf("Created %d, updated %d, skipped %d.\n", res.Created, res.Updated, res.Skipped)
			for _, rowErr := range res.Errors {
				fmt.Printf("  row %d: %s\n", rowErr.Row, rowErr.Message)
			}
			return nil
		},
	}

	cmd.Flags().String("file", "", "workbook to import")
	cmd.Flags().Duration("timeout", 30*time.Minute, "give up after this long")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
