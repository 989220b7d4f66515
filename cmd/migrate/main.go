package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/database"
)

var steps int

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations against the configured postgres database",
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := databaseURL()
		if err != nil {
			return err
		}
		if err := database.MigrateUp(url); err != nil {
			return err
		}
		return printVersion(cmd, url)
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := databaseURL()
		if err != nil {
			return err
		}
		if err := database.MigrateDown(url, steps); err != nil {
			return err
		}
		return printVersion(cmd, url)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := databaseURL()
		if err != nil {
			return err
		}
		return printVersion(cmd, url)
	},
}

func init() {
	downCmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back, 0 for all")
	rootCmd.AddCommand(upCmd, downCmd, versionCmd)
}

// databaseURL prefers DATABASE_URL and otherwise builds one from the config
func databaseURL() (string, error) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return "", err
	}
	if cfg.DBDriver != config.DriverPostgres {
		return "", fmt.Errorf("migrations target postgres, DB_DRIVER is %q", cfg.DBDriver)
	}
	return cfg.PostgresURL(), nil
}

func printVersion(cmd *cobra.Command, url string) error {
	version, dirty, err := database.MigrationVersion(url)
	if err != nil {
		return err
	}
	cmd.Printf("schema version %d (dirty: %t)\n", version, dirty)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
