package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-tangra/go-tangra-mainboard/cmd/boardd/assets"
	"github.com/go-tangra/go-tangra-mainboard/internal/config"
	"github.com/go-tangra/go-tangra-mainboard/internal/probe"
	"github.com/go-tangra/go-tangra-mainboard/internal/server"
	"github.com/go-tangra/go-tangra-mainboard/internal/store"
)

var (
	version    = "dev"
	commitHash = "unknown"
	buildDate  = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "boardd",
	Short: "Mainboard Registry - HTTP daemon serving the board component topology",
	Long: `boardd serves a fixed, typed description of a desktop mainboard's
components over a read-only HTTP API, and stores board registration
snapshots in a local SQLite database.

Run without a subcommand to start the daemon (equivalent to 'serve').`,
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the registry HTTP daemon",
	RunE:  runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("boardd %s (commit: %s, built: %s)\n", version, commitHash, buildDate)
	},
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Purge board registrations older than the specified number of days",
	RunE:  runPurge,
}

var purgeDays int

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Read the local host's SMBIOS tables and print its baseboard identity",
	RunE:  runDetect,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/boardd.yaml)")
	rootCmd.PersistentFlags().String("listen", "", "HTTP listen address (default :9560)")
	rootCmd.PersistentFlags().String("database", "", "SQLite database path (default boards.db)")
	rootCmd.PersistentFlags().String("api-secret", "", "secret for REST API clients (empty = no auth)")
	rootCmd.PersistentFlags().String("form-factor", "", "reference board form factor (default ATX)")

	purgeCmd.Flags().IntVar(&purgeDays, "days", 90, "purge registrations older than this many days")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(detectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// CLI flag overrides.
	if v, _ := cmd.Flags().GetString("listen"); v != "" {
		cfg.Listen = v
	}
	if v, _ := cmd.Flags().GetString("database"); v != "" {
		cfg.DatabasePath = v
	}
	if v, _ := cmd.Flags().GetString("api-secret"); v != "" {
		cfg.ApiSecret = v
	}
	if v, _ := cmd.Flags().GetString("form-factor"); v != "" {
		cfg.FormFactor = v
	}

	// Shut down on SIGINT / SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, cfg, version, assets.OpenApiData)
}

func runPurge(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if v, _ := cmd.Flags().GetString("database"); v != "" {
		cfg.DatabasePath = v
	}

	db, err := store.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	n, err := db.Purge(context.Background(), time.Duration(purgeDays)*24*time.Hour)
	if err != nil {
		return fmt.Errorf("purge: %w", err)
	}

	fmt.Printf("Purged %d registrations older than %d days\n", n, purgeDays)
	return nil
}

func runDetect(cmd *cobra.Command, args []string) error {
	info, err := probe.Baseboard()
	if err != nil {
		return fmt.Errorf("detect baseboard: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}
