package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"dbsnap/internal/app"
	"dbsnap/internal/config"
	"dbsnap/internal/snap"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer app.Close().
// assumeYes replaces the interactive confirmation prompt with auto-approval.
func newApp(assumeYes bool) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	confirm := snap.Confirmer(stdinConfirmer{})
	if assumeYes {
		confirm = snap.AutoConfirm
	}

	a, err := app.New(cfg, confirm)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// stdinConfirmer asks for confirmation on the terminal.
type stdinConfirmer struct{}

func (stdinConfirmer) Confirm(summary string) (bool, error) {
	fmt.Print(summary)
	fmt.Print("Proceed? [y/N] ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// readPassphrase prompts for a passphrase without echoing it.
func readPassphrase(prompt string) (string, error) {
	fmt.Print(prompt)
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(data), nil
}

// unlockIfNeeded prompts for the passphrase when archives are encrypted.
func unlockIfNeeded(a *app.App) error {
	if !a.NeedsUnlock() {
		return nil
	}
	passphrase, err := readPassphrase("Passphrase: ")
	if err != nil {
		return err
	}
	return a.UnlockCodec(passphrase)
}

func printItemResults(results []snap.ItemResult, verb string) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("FAIL  %s: %v\n", r.Entity, r.Err)
			failed++
			continue
		}
		fmt.Printf("ok    %s (%d rows %s)\n", r.Entity, r.Rows, verb)
	}
	return failed
}

var rootCmd = &cobra.Command{
	Use:   "dbsnap",
	Short: "Database snapshot backup manager",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:  %s\n", cfg.LogDir)
		fmt.Printf("Storage:  %s\n", cfg.Storage.Type)
		fmt.Printf("Codec:    %s\n", cfg.Codec.Type)
		fmt.Printf("Database: %s (%s)\n", cfg.Database.Type, cfg.Database.Path)
		return nil
	},
}

// codec command
var codecCmd = &cobra.Command{
	Use:   "codec",
	Short: "Manage archive encryption",
}

var codecSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Generate the encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		passphrase, err := readPassphrase("New passphrase: ")
		if err != nil {
			return err
		}
		repeat, err := readPassphrase("Repeat passphrase: ")
		if err != nil {
			return err
		}
		if passphrase != repeat {
			return fmt.Errorf("passphrases do not match")
		}

		if err := a.SetupCodec(passphrase); err != nil {
			return fmt.Errorf("setting up codec: %w", err)
		}

		fmt.Println("Key pair generated.")
		return nil
	},
}

// create command
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new snapshot set",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.Create()
		if err != nil {
			return fmt.Errorf("create failed: %w", err)
		}

		fmt.Printf("Snapshot set %s\n", report.SnapshotID)
		if failed := printItemResults(report.Results, "dumped"); failed > 0 {
			return fmt.Errorf("%d of %d entities failed", failed, len(report.Results))
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List snapshot sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.History()
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No snapshot sets found.")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("%s  %s\n", e.ID, e.Humanized)
			for _, f := range e.Files {
				fmt.Printf("    %s\n", f)
			}
		}
		return nil
	},
}

// restore command
var restoreCmd = &cobra.Command{
	Use:   "restore ID",
	Short: "Restore a snapshot set into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := unlockIfNeeded(a); err != nil {
			return err
		}

		report, err := a.Restore(args[0])
		if err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}

		fmt.Printf("Restored snapshot set %s\n", report.SnapshotID)
		if failed := printItemResults(report.Results, "restored"); failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(report.Results))
		}
		return nil
	},
}

// remove command
var removeCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Delete a snapshot set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assumeYes, _ := cmd.Flags().GetBool("yes")

		a, err := newApp(assumeYes)
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.Remove(args[0])
		if err != nil {
			return fmt.Errorf("remove failed: %w", err)
		}
		if report.Aborted {
			fmt.Println("Aborted.")
			return nil
		}

		failed := 0
		for _, r := range report.Results {
			if r.Err != nil {
				fmt.Printf("FAIL  %s: %v\n", r.StorageName, r.Err)
				failed++
			} else {
				fmt.Printf("ok    %s deleted\n", r.StorageName)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(report.Results))
		}
		return nil
	},
}

// autoclean command
var autocleanCmd = &cobra.Command{
	Use:   "autoclean",
	Short: "Prune snapshot sets under the tiered retention policy",
	RunE: func(cmd *cobra.Command, args []string) error {
		assumeYes, _ := cmd.Flags().GetBool("yes")

		a, err := newApp(assumeYes)
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.Autoclean()
		if err != nil {
			return fmt.Errorf("autoclean failed: %w", err)
		}
		if report.Aborted {
			fmt.Println("Aborted.")
			return nil
		}
		if len(report.Delete) == 0 {
			fmt.Printf("Nothing to delete (%d snapshot set(s) kept).\n", len(report.Keep))
			return nil
		}

		failed := 0
		for _, r := range report.Results {
			if r.Err != nil {
				fmt.Printf("FAIL  %s: %v\n", r.StorageName, r.Err)
				failed++
			}
		}
		fmt.Printf("Kept %d snapshot set(s), deleted %d.\n", len(report.Keep), len(report.Delete))
		if failed > 0 {
			return fmt.Errorf("%d file deletion(s) failed", failed)
		}
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// codec subcommands
	codecCmd.AddCommand(codecSetupCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(codecCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(autocleanCmd)
	autocleanCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
