package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "floodctl",
	Short: "Floodgate CLI",
	Long:  "A CLI for the Floodgate torrent-manager API.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadConfig()
		// Env var overrides are applied in newClient()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format: table, json, raw")
	rootCmd.PersistentFlags().StringVar(&outputField, "field", "", "Print only this field (use with -format=raw)")

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(dirlistCmd())
	rootCmd.AddCommand(settingsCmd())
	rootCmd.AddCommand(notificationsCmd())
	rootCmd.AddCommand(historyCmd())
}

// --- auth ---

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [username]",
		Short: "Authenticate and store the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(os.Stderr, "Password: ")
			reader := bufio.NewReader(os.Stdin)
			password, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			password = strings.TrimRight(password, "\r\n")

			client := newClient()
			session, result, err := client.login(args[0], password)
			if err != nil {
				printError(err.Error())
				return err
			}

			cfg.Session = session
			if err := saveConfig(); err != nil {
				return err
			}
			printResult(result)
			printSuccess("Session stored.")
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Session = ""
			if err := saveConfig(); err != nil {
				return err
			}
			printSuccess("Session discarded.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity of the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newClient().get("/api/auth/verify")
			if err != nil {
				printError(err.Error())
				return err
			}
			printResult(result)
			return nil
		},
	}
}

// --- filesystem ---

func dirlistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dirlist <path>",
		Short: "List a directory on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newClient().get("/api/directory-list?path=" + queryEscape(args[0]))
			if err != nil {
				printError(err.Error())
				return err
			}
			printResult(result)
			return nil
		},
	}
}

// --- settings ---

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "settings", Short: "Read and write client settings"}

	getCmd := &cobra.Command{
		Use:   "get [property]",
		Short: "Read settings, optionally one property",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/settings"
			if len(args) == 1 {
				path += "?property=" + queryEscape(args[0])
			}
			result, err := newClient().get(path)
			if err != nil {
				printError(err.Error())
				return err
			}
			printResult(result)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <json>",
		Short: "Merge a JSON object into the settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newClient().patchRaw("/api/settings", []byte(args[0]))
			if err != nil {
				printError(err.Error())
				return err
			}
			printResult(result)
			return nil
		},
	}

	cmd.AddCommand(getCmd, setCmd)
	return cmd
}

// --- notifications ---

func notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "notifications", Short: "Notification feed"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			start, _ := cmd.Flags().GetInt("start")
			path := fmt.Sprintf("/api/notifications?limit=%d&start=%d", limit, start)
			result, err := newClient().get(path)
			if err != nil {
				printError(err.Error())
				return err
			}
			printResult(result)
			return nil
		},
	}
	listCmd.Flags().Int("limit", 10, "Page size")
	listCmd.Flags().Int("start", 0, "Page offset")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().delete("/api/notifications"); err != nil {
				printError(err.Error())
				return err
			}
			printSuccess("Notifications cleared.")
			return nil
		},
	}

	cmd.AddCommand(listCmd, clearCmd)
	return cmd
}

// --- history ---

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show transfer-rate history",
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, _ := cmd.Flags().GetString("snapshot")
			limit, _ := cmd.Flags().GetInt("limit")
			path := fmt.Sprintf("/api/history?snapshot=%s&limit=%d", snapshot, limit)
			result, err := newClient().get(path)
			if err != nil {
				printError(err.Error())
				return err
			}
			printResult(result)
			return nil
		},
	}
	cmd.Flags().String("snapshot", "fiveMin", "Period: fiveMin, thirtyMin, hour, day, week, month")
	cmd.Flags().Int("limit", 0, "Maximum number of samples")
	return cmd
}
