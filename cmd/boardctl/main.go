package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-tangra/go-tangra-mainboard/internal/client"
)

var (
	addr       string
	apiKey     string
	formFactor string
)

var rootCmd = &cobra.Command{
	Use:           "boardctl",
	Short:         "Query a running boardd instance",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "List every component of the reference board",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := newClient().Components(cmd.Context(), formFactor)
		if err != nil {
			return err
		}
		return printJSON(list)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the kind-to-status map of the reference board",
	RunE: func(cmd *cobra.Command, args []string) error {
		sm, err := newClient().Status(cmd.Context(), formFactor)
		if err != nil {
			return err
		}
		return printJSON(sm)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a board and store its snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newClient().RegisterBoard(cmd.Context(), formFactor)
		if err != nil {
			return err
		}
		return printJSON(reg)
	},
}

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "Manage board registrations",
}

var boardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List board registrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")
		list, err := newClient().ListBoards(cmd.Context(), formFactor, page, pageSize)
		if err != nil {
			return err
		}
		return printJSON(list)
	},
}

var boardsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a board registration with its full snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, err := newClient().GetBoard(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if detail == nil {
			return fmt.Errorf("board %q not found", args[0])
		}
		return printJSON(detail)
	},
}

var boardsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a board registration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().DeleteBoard(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted board %s\n", args[0])
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check daemon health",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newClient().GetHealth(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(h)
	},
}

func newClient() *client.Client {
	return client.New(addr, apiKey)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "http://localhost:9560", "boardd base URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key (X-API-Key header)")
	rootCmd.PersistentFlags().StringVarP(&formFactor, "form-factor", "f", "", "board form factor (empty = daemon default)")

	boardsListCmd.Flags().Int("page", 0, "page number")
	boardsListCmd.Flags().Int("page-size", 0, "page size")

	boardsCmd.AddCommand(boardsListCmd)
	boardsCmd.AddCommand(boardsGetCmd)
	boardsCmd.AddCommand(boardsDeleteCmd)

	rootCmd.AddCommand(componentsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(boardsCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
