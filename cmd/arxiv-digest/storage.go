// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/storage"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Manage the persistent arxiv-digest storage root",
	Long: `Storage initializes, inspects, backs up, restores, and resets the
directory of JSON documents arxiv-digest keeps between runs: the
researcher profile, preferences, read state, user record, and history.`,
}

func resolvedPaths(cmd *cobra.Command) storage.Paths {
	storageDir, _ := cmd.Flags().GetString("storage-dir")
	return storage.ResolvePaths(storageDir, os.Getenv)
}

var storageInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the storage directory structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := resolvedPaths(cmd)
		if err := storage.Init(paths, time.Now()); err != nil {
			return err
		}
		fmt.Printf("Storage initialized at: %s\n", paths.Root)
		fmt.Printf("  Profile:     %s\n", paths.Profile)
		fmt.Printf("  Preferences: %s\n", paths.Prefs)
		fmt.Printf("  Record:      %s\n", paths.Record)
		fmt.Printf("  History:     %s\n", paths.History)
		return nil
	},
}

var storageStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check which stored documents exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := resolvedPaths(cmd)
		status, err := storage.CheckStatus(paths, time.Now())
		if err != nil {
			return err
		}

		mark := func(ok bool) string {
			if ok {
				return "yes"
			}
			return "no "
		}
		fmt.Println("Storage status:")
		fmt.Printf("  Storage directory:  %s %s\n", mark(status.StorageExists), paths.Root)
		fmt.Printf("  Researcher profile: %s %s\n", mark(status.ProfileExists), paths.Profile)
		fmt.Printf("  Preferences:        %s %s\n", mark(status.PrefsExists), paths.Prefs)
		fmt.Printf("  User record:        %s %s\n", mark(status.RecordExists), paths.Record)
		fmt.Printf("  History:            %s %s\n", mark(status.HistoryExists), paths.History)
		return nil
	},
}

var storagePathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show resolved storage paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := resolvedPaths(cmd)
		fmt.Println("Storage paths:")
		fmt.Printf("  Root:        %s\n", paths.Root)
		fmt.Printf("  Profile:     %s\n", paths.Profile)
		fmt.Printf("  Preferences: %s\n", paths.Prefs)
		fmt.Printf("  Record:      %s\n", paths.Record)
		fmt.Printf("  Read state:  %s\n", paths.ReadState)
		fmt.Printf("  History:     %s\n", paths.History)
		return nil
	},
}

var storageBackupCmd = &cobra.Command{
	Use:   "backup [dest]",
	Short: "Back up all stored data to a tar.gz archive",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := resolvedPaths(cmd)
		dest := storage.DefaultBackupName(time.Now())
		if len(args) == 1 {
			dest = args[0]
		}
		if err := storage.Backup(paths, dest); err != nil {
			return err
		}
		fmt.Printf("Backup created: %s\n", dest)
		fmt.Printf("  To restore: arxiv-digest storage restore %s\n", dest)
		return nil
	},
}

var storageRestoreCmd = &cobra.Command{
	Use:   "restore <src>",
	Short: "Restore stored data from a backup archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := resolvedPaths(cmd)
		if err := storage.Restore(paths, args[0], time.Now()); err != nil {
			return err
		}
		fmt.Printf("Restored from: %s\n", args[0])
		return nil
	},
}

var storageResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored data",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := resolvedPaths(cmd)
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Printf("This will DELETE all data in: %s\n", paths.Root)
			fmt.Print("Are you sure? Type 'yes' to confirm: ")
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}
		if err := storage.Reset(paths); err != nil {
			return err
		}
		fmt.Printf("Storage deleted: %s\n", paths.Root)
		return nil
	},
}

var storageCreatePrefsCmd = &cobra.Command{
	Use:   "create-prefs",
	Short: "Create a default preferences document",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := resolvedPaths(cmd)
		categories, _ := cmd.Flags().GetStringSlice("categories")
		interests, _ := cmd.Flags().GetStringSlice("interests")
		if err := storage.CreateDefaultPreferences(paths, categories, interests, time.Now()); err != nil {
			return err
		}
		fmt.Printf("Created default preferences at: %s\n", paths.Prefs)
		return nil
	},
}

func init() {
	storageResetCmd.Flags().Bool("yes", false, "skip the confirmation prompt")
	storageCreatePrefsCmd.Flags().StringSliceP("categories", "c", nil, "arXiv categories")
	storageCreatePrefsCmd.Flags().StringSliceP("interests", "i", nil, "research interests")

	storageCmd.AddCommand(storageInitCmd, storageStatusCmd, storagePathsCmd,
		storageBackupCmd, storageRestoreCmd, storageResetCmd, storageCreatePrefsCmd)
	rootCmd.AddCommand(storageCmd)
}
