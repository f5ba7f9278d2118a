package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/calross/medic-roster/internal/config"
	"github.com/calross/medic-roster/pkg/clients/gmailclient"
	"github.com/calross/medic-roster/pkg/clients/sheetsclient"
	"github.com/calross/medic-roster/pkg/core/model"
	"github.com/calross/medic-roster/pkg/core/rotation"
	"github.com/calross/medic-roster/pkg/core/services"
	"github.com/calross/medic-roster/pkg/postgres"
	"github.com/calross/medic-roster/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg          *config.Config
	oauthCfg     *config.OAuthClientConfig
	sheetsClient *sheetsclient.Client
	gmailClient  *gmailclient.Client
	database     *postgres.DB
	logger       *zap.Logger
	ctx          context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Medic Roster CLI - Personnel rotation and compliance tracking",
		Long:  `A CLI tool for tracking rotation attendance, training compliance and cost estimates for provisioned medical staff.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.database != nil {
					app.database.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(onBoardCmd())
	rootCmd.AddCommand(matrixCmd())
	rootCmd.AddCommand(costsCmd())
	rootCmd.AddCommand(listPersonnelCmd())
	rootCmd.AddCommand(addCycleCmd())
	rootCmd.AddCommand(importPersonnelCmd())
	rootCmd.AddCommand(publishRosterCmd())
	rootCmd.AddCommand(notifyDeparturesCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(interactiveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and database. The Google clients are
// created on first use so database-only commands never trigger an OAuth
// flow.
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.logger.Info("Loading configuration")
	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.logger.Info("Connecting to database")
	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.logger.Info("Database connected successfully")

	return nil
}

// ensureSheetsClient lazily initializes the sheets client (and the OAuth
// token shared with gmail)
func ensureSheetsClient() error {
	if app.sheetsClient != nil {
		return nil
	}

	var err error
	app.logger.Info("Loading OAuth client configuration")
	app.oauthCfg, err = config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	app.logger.Info("Initializing sheets client")
	app.sheetsClient, err = sheetsclient.NewClient(app.ctx, app.oauthCfg, env)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.logger.Debug("Sheets client initialized successfully")

	return nil
}

// ensureGmailClient lazily initializes the gmail client, reusing the sheets
// client's token
func ensureGmailClient() error {
	if app.gmailClient != nil {
		return nil
	}

	if err := ensureSheetsClient(); err != nil {
		return err
	}

	app.logger.Info("Initializing gmail client")
	gmailClient, err := gmailclient.NewClient(app.ctx, app.oauthCfg, app.sheetsClient.Token(), app.cfg.GmailUserID)
	if err != nil {
		return fmt.Errorf("failed to create gmail client: %w", err)
	}
	app.gmailClient = gmailClient
	app.logger.Debug("Gmail client initialized successfully")

	return nil
}

// parseArgDate parses a date argument; unlike roster data, a bad CLI
// argument is an error
func parseArgDate(arg string) (time.Time, error) {
	d, ok := rotation.ParseDate(arg)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or YYYY-Mon-DD)", arg)
	}
	return d, nil
}

// Command definitions

func onBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "onboard [date]",
		Short: "Show who is on board on a date (defaults to today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now()
			if len(args) > 0 {
				var err error
				if date, err = parseArgDate(args[0]); err != nil {
					return err
				}
			}

			report, err := services.OnBoard(app.ctx, app.database, app.logger, date, app.cfg.LongSwingDays)
			if err != nil {
				return err
			}

			fmt.Printf("\nOn board on %s: %d\n\n", rotation.FormatDate(report.Date), len(report.OnBoard))
			for _, p := range report.OnBoard {
				marker := ""
				if p.DepartureImminent {
					marker = "  [departing]"
				}
				if p.LongSwing {
					marker += fmt.Sprintf("  [%d+ days]", app.cfg.LongSwingDays)
				}
				if p.HasRange {
					fmt.Printf("  %-24s %-22s day %2d  (%s to %s)%s\n",
						p.Entry.Name, model.DisplayRole(p.Entry.Post), p.DaysOnBoard,
						rotation.FormatDate(p.RangeStart), rotation.FormatDate(p.RangeEnd), marker)
				} else {
					fmt.Printf("  %-24s %-22s office%s\n", p.Entry.Name, model.DisplayRole(p.Entry.Post), marker)
				}
			}

			if len(report.ByClient) > 0 {
				fmt.Printf("\nBy client:\n")
				for client, count := range report.ByClient {
					fmt.Printf("  %-12s %d\n", client, count)
				}
			}

			return nil
		},
	}
}

func matrixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matrix [date]",
		Short: "Show the training/certification compliance matrix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now()
			if len(args) > 0 {
				var err error
				if date, err = parseArgDate(args[0]); err != nil {
					return err
				}
			}

			matrix, err := services.Matrix(app.ctx, app.database, app.logger, date, app.cfg.CertWarningDays)
			if err != nil {
				return err
			}

			fmt.Printf("\nTraining matrix as of %s (%d people, %d courses)\n\n",
				rotation.FormatDate(matrix.Date), len(matrix.People), len(matrix.Courses))

			for _, person := range matrix.People {
				fmt.Printf("%s (%s)\n", person.Name, model.DisplayRole(person.Post))
				for _, course := range matrix.Courses {
					cell := matrix.Cell(person.PersonID, course)
					expiry := "-"
					if cell.Expiry.Valid {
						expiry = rotation.FormatDate(cell.Expiry.Time)
					}
					fmt.Printf("  %-20s %-14s %s\n", course, cell.Status, expiry)
				}
			}

			return nil
		},
	}
}

func costsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "costs [from] [to]",
		Short: "Estimate roster costs, optionally clipped to a window",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var from, to time.Time
			var err error
			if len(args) > 0 {
				if from, err = parseArgDate(args[0]); err != nil {
					return err
				}
			}
			if len(args) > 1 {
				if to, err = parseArgDate(args[1]); err != nil {
					return err
				}
			}

			estimate, err := services.EstimateCosts(app.ctx, app.database, app.logger, from, to)
			if err != nil {
				return err
			}

			fmt.Printf("\nCost estimate (%d lines):\n\n", len(estimate.Lines))
			for _, line := range estimate.Lines {
				fmt.Printf("  %-24s cycle %d  %-16s %3d days  %10.2f\n",
					line.Entry.Name, line.Cycle.Number, line.BillingRole, line.BillableDays, line.Total)
			}
			fmt.Printf("\nTotal: %.2f\n", estimate.Total)

			return nil
		},
	}
}

func listPersonnelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listPersonnel",
		Short: "List all personnel on the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := services.LoadRoster(app.ctx, app.database, app.logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d people:\n\n", len(entries))
			for _, entry := range entries {
				fmt.Printf("- %s (%s) - %s - %s - %s [%d cycles]\n",
					entry.Name,
					entry.PersonID,
					model.DisplayRole(entry.Post),
					entry.Client,
					entry.Location,
					len(entry.Cycles),
				)
			}

			return nil
		},
	}
}

func addCycleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "addCycle <person_id> <cycle_number> <sign_on> <sign_off>",
		Short: "Record a new rotation cycle for a person",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			cycleNumber, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("cycle_number must be a number: %w", err)
			}

			cycle, err := services.AddCycle(app.ctx, app.database, app.logger, args[0], cycleNumber, args[2], args[3])
			if err != nil {
				return err
			}

			fmt.Printf("\nCycle recorded: %s (person %s, cycle %d, %s to %s)\n",
				cycle.ID, cycle.PersonID, cycle.CycleNumber, cycle.SignOn, cycle.SignOff)

			return nil
		},
	}
}

func importPersonnelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "importPersonnel",
		Short: "Import new people from the staff directory sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureSheetsClient(); err != nil {
				return err
			}

			inserted, err := services.ImportPersonnel(app.ctx, app.database, app.sheetsClient, app.cfg, app.logger)
			if err != nil {
				return err
			}

			if len(inserted) == 0 {
				fmt.Println("\nStaff directory is already in sync.")
				return nil
			}

			fmt.Printf("\nImported %d people:\n", len(inserted))
			for _, p := range inserted {
				fmt.Printf("  + %s (%s)\n", p.Name, p.ID)
			}

			return nil
		},
	}
}

func publishRosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publishRoster <from> <to>",
		Short: "Publish the on-board matrix for a date window to the roster sheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseArgDate(args[0])
			if err != nil {
				return err
			}
			to, err := parseArgDate(args[1])
			if err != nil {
				return err
			}

			if err := ensureSheetsClient(); err != nil {
				return err
			}

			rows, err := services.PublishRoster(app.ctx, app.database, app.sheetsClient, app.cfg, app.logger, from, to)
			if err != nil {
				return err
			}

			fmt.Printf("\nRoster published: %d rows written to sheet %s\n", rows, app.cfg.RosterSheetID)
			return nil
		},
	}
}

func notifyDeparturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notifyDepartures [date]",
		Short: "Email departure notices to people signing off within 3 days",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now()
			if len(args) > 0 {
				var err error
				if date, err = parseArgDate(args[0]); err != nil {
					return err
				}
			}

			if err := ensureGmailClient(); err != nil {
				return err
			}

			sent, failed, err := services.NotifyDepartures(app.ctx, app.database, app.gmailClient, app.cfg, app.logger, date)
			if err != nil {
				return err
			}

			if len(sent) > 0 {
				fmt.Printf("\nNotices sent to %d people:\n", len(sent))
				for _, s := range sent {
					fmt.Printf("  %s (%s), signing off %s\n", s.Name, s.Email, rotation.FormatDate(s.SignOff))
				}
			}

			if len(failed) > 0 {
				fmt.Printf("\nFailed to notify %d people:\n", len(failed))
				for _, f := range failed {
					fmt.Printf("  %s: %s\n", f.Name, f.Error)
				}
			}

			if len(sent) == 0 && len(failed) == 0 {
				fmt.Println("\nNo departures within the next 3 days.")
			}

			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.logger.Info("Running database migrations")
			if err := app.database.RunMigrations(app.ctx); err != nil {
				return err
			}
			fmt.Println("\nMigrations applied.")
			return nil
		},
	}
}

func interactiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (connect once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands without
reconnecting. The session keeps running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("\nStarting interactive session...")
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			// Get all sibling commands (excluding interactive itself)
			rootCmd := cmd.Parent()
			commands := make(map[string]*cobra.Command)
			for _, subCmd := range rootCmd.Commands() {
				if subCmd.Name() != "interactive" && subCmd.Name() != "completion" && subCmd.Name() != "help" {
					commands[subCmd.Name()] = subCmd
				}
			}

			scanner := bufio.NewScanner(os.Stdin)

			for {
				fmt.Print("> ")

				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				parts := strings.Fields(line)
				cmdName := parts[0]
				cmdArgs := parts[1:]

				if cmdName == "exit" || cmdName == "quit" {
					fmt.Println("Goodbye!")
					return nil
				}

				if cmdName == "help" {
					printInteractiveHelp(commands)
					continue
				}

				targetCmd, exists := commands[cmdName]
				if !exists {
					fmt.Printf("Unknown command: %s (type 'help' for available commands)\n\n", cmdName)
					continue
				}

				// Reset command flags and args
				targetCmd.Flags().VisitAll(func(flag *pflag.Flag) {
					flag.Changed = false
					flag.Value.Set(flag.DefValue)
				})

				// Execute the command's RunE directly, bypassing the full
				// Execute() flow so PersistentPreRunE doesn't reinitialize
				// the app.
				if err := targetCmd.ParseFlags(cmdArgs); err != nil {
					fmt.Printf("Error parsing flags: %v\n\n", err)
					continue
				}

				cmdArgs = targetCmd.Flags().Args()

				if err := targetCmd.Args(targetCmd, cmdArgs); err != nil {
					fmt.Printf("Error: %v\n\n", err)
					continue
				}

				if targetCmd.RunE != nil {
					if err := targetCmd.RunE(targetCmd, cmdArgs); err != nil {
						fmt.Printf("Error: %v\n\n", err)
					}
				} else if targetCmd.Run != nil {
					targetCmd.Run(targetCmd, cmdArgs)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			return nil
		},
	}

	return cmd
}

func printInteractiveHelp(commands map[string]*cobra.Command) {
	fmt.Println("\nAvailable commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}

	for _, name := range names {
		cmd := commands[name]
		fmt.Printf("  %-44s %s\n", cmd.Use, cmd.Short)
	}

	fmt.Println("\n  help                                         Show this help message")
	fmt.Println("  exit, quit                                   Exit the interactive session")
}
