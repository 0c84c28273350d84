package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/HunterSystem_Go/internal/config"
	"github.com/osse101/HunterSystem_Go/internal/database/sqlite"
	"github.com/osse101/HunterSystem_Go/internal/hunter"
	"github.com/osse101/HunterSystem_Go/internal/ledger"
	"github.com/osse101/HunterSystem_Go/internal/logger"
)

const (
	defaultUserID   = "local"
	defaultTimezone = "Local"
	cliServiceName  = "hunterctl"
)

// options are the persistent flags shared by every subcommand
type options struct {
	dbPath   string
	seedPath string
	userID   string
	timezone string
	policy   string
	logLevel string

	now func() time.Time
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithClock(time.Now)
}

func newRootCmdWithClock(now func() time.Time) *cobra.Command {
	opts := &options{now: now}

	rootCmd := &cobra.Command{
		Use:           "hunterctl",
		Short:         "Level up, claim quests and collect daily login rewards",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			lc := logger.NewConfig(opts.logLevel, logger.LogFormatText, cliServiceName, "", "", false)
			logger.InitLoggerWithWriter(lc, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", config.DefaultSQLitePath, "path to the SQLite snapshot file")
	rootCmd.PersistentFlags().StringVar(&opts.seedPath, "seed", config.ConfigPathHunterSeed, "path to the hunter seed JSON")
	rootCmd.PersistentFlags().StringVar(&opts.userID, "user", defaultUserID, "hunter to act on")
	rootCmd.PersistentFlags().StringVar(&opts.timezone, "tz", defaultTimezone, "IANA zone used for daily and weekly resets")
	rootCmd.PersistentFlags().StringVar(&opts.policy, "reset-policy", string(ledger.ResetPolicyCalendar), "reset policy: calendar or none")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", logger.LogLevelWarn, "log level written to stderr")

	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newXPCmd(opts))
	rootCmd.AddCommand(newClaimCmd(opts))
	rootCmd.AddCommand(newContributeCmd(opts))
	rootCmd.AddCommand(newDailyCmd(opts))
	rootCmd.AddCommand(newSkillCmd(opts))
	rootCmd.AddCommand(newTitleCmd(opts))

	return rootCmd
}

// withService opens the store, runs fn against a fresh service and tears both down
func withService(ctx context.Context, opts *options, fn func(hunter.Service) error) error {
	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return fmt.Errorf("invalid --tz %q: %w", opts.timezone, err)
	}
	policy, err := ledger.ParseResetPolicy(opts.policy)
	if err != nil {
		return err
	}

	seed, err := hunter.LoadSeed(opts.seedPath)
	if errors.Is(err, fs.ErrNotExist) {
		seed = hunter.DefaultSeed()
	} else if err != nil {
		return err
	}

	store, err := sqlite.Open(ctx, opts.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	svc, err := hunter.NewService(store, nil, seed, hunter.Options{
		Location:    loc,
		ResetPolicy: policy,
		Now:         opts.now,
	})
	if err != nil {
		return err
	}
	defer svc.Shutdown(ctx) //nolint:errcheck

	return fn(svc)
}
