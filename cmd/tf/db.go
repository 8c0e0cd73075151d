package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gorm.io/gorm"

	"github.com/zulandar/talentflow/internal/config"
	"github.com/zulandar/talentflow/internal/db"
	"github.com/zulandar/talentflow/internal/seed"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBInitCmd())
	cmd.AddCommand(newDBSeedCmd())
	cmd.AddCommand(newDBResetCmd())
	return cmd
}

// openFromConfig loads the config file and opens the migrated store.
func openFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	driver, dsn := cfg.DBTarget()
	gdb, err := db.Open(driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := db.AutoMigrate(gdb); err != nil {
		return nil, nil, err
	}
	return cfg, gdb, nil
}

func newDBInitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the TalentFlow database",
		Long:  "Opens the configured database, migrates all tables, and seeds sample data.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "talentflow.yaml", "path to TalentFlow config file")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, gdb, err := openFromConfig(configPath)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	driver, dsn := cfg.DBTarget()
	fmt.Fprintf(out, "Connected to %s database at %s\n", driver, dsn)
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	result, err := seed.Seed(gdb, seed.Opts{
		Candidates:  cfg.Seed.Candidates,
		Assessments: cfg.Seed.Assessments,
		Seed:        cfg.Seed.Seed,
	})
	if err != nil {
		return err
	}
	printSeedResult(cmd, result)

	fmt.Fprintln(out, "\nTalentFlow database initialized successfully.")
	return nil
}

func newDBSeedCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with sample data",
		Long:  "Writes the sample job catalog, candidates, and assessments. Does nothing when data already exists.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			result, err := seed.Seed(gdb, seed.Opts{
				Candidates:  cfg.Seed.Candidates,
				Assessments: cfg.Seed.Assessments,
				Seed:        cfg.Seed.Seed,
			})
			if err != nil {
				return err
			}
			printSeedResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "talentflow.yaml", "path to TalentFlow config file")
	return cmd
}

func newDBResetCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe and reseed the TalentFlow database",
		Long: `Deletes every row from every table, then reseeds from the sample catalog.

Prompts for confirmation when run interactively; use --yes to skip.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBReset(cmd, configPath, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "talentflow.yaml", "path to TalentFlow config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runDBReset(cmd *cobra.Command, configPath string, skipConfirm bool) error {
	out := cmd.OutOrStdout()

	cfg, gdb, err := openFromConfig(configPath)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	driver, dsn := cfg.DBTarget()
	if !skipConfirm {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("refusing to reset %s without a terminal; pass --yes to confirm", dsn)
		}
		if !confirmReset(cmd, dsn) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	result, err := seed.Reset(gdb, seed.Opts{
		Candidates:  cfg.Seed.Candidates,
		Assessments: cfg.Seed.Assessments,
		Seed:        cfg.Seed.Seed,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Reset %s database at %s\n", driver, dsn)
	printSeedResult(cmd, result)
	return nil
}

func confirmReset(cmd *cobra.Command, target string) bool {
	out := cmd.OutOrStdout()
	in := cmd.InOrStdin()

	fmt.Fprintf(out, "WARNING: This will permanently delete all data in %q.\n", target)
	fmt.Fprintln(out, "This action cannot be undone.")
	fmt.Fprintln(out)
	fmt.Fprint(out, "Type \"yes\" to confirm: ")

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()) == "yes"
	}
	return false
}

func printSeedResult(cmd *cobra.Command, result *seed.Result) {
	out := cmd.OutOrStdout()
	if result.Skipped {
		fmt.Fprintln(out, "Store already has data; seed skipped.")
		return
	}
	fmt.Fprintf(out, "Seeded %d jobs, %d candidates, %d assessments\n",
		result.Jobs, result.Candidates, result.Assessments)
}
