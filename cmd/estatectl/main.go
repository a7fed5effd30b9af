package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "estatectl",
		Short:        "Maintenance tasks for the real estate site",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		migrateCmd(),
		createAdminCmd(),
		seedCmd(),
		importPropertiesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
