package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Dan9191/finance-tracker/internal/config"
	"github.com/Dan9191/finance-tracker/internal/middleware"
	"github.com/spf13/cobra"
)

var (
	flagSubject string
	flagTTL     time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue API bearer tokens",
	Long:  "Sign a bearer token for the finance tracker API using JWT_SECRET from the environment.",
	RunE:  runIssue,
}

func init() {
	rootCmd.Flags().StringVarP(&flagSubject, "subject", "s", "owner", "Token subject")
	rootCmd.Flags().DurationVarP(&flagTTL, "ttl", "t", 24*time.Hour, "Token lifetime")
}

func runIssue(cmd *cobra.Command, args []string) error {
	if flagTTL <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", flagTTL)
	}
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	token, err := middleware.IssueToken(cfg.JWTSecret, flagSubject, flagTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
