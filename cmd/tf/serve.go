package main

import (
	"fmt"
	"math/rand"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zulandar/talentflow/internal/api"
	"github.com/zulandar/talentflow/internal/db"
	"github.com/zulandar/talentflow/internal/digest"
	"github.com/zulandar/talentflow/internal/logging"
	"github.com/zulandar/talentflow/internal/notify"
	"github.com/zulandar/talentflow/internal/simnet"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the TalentFlow API server",
		Long:  "Serves the hiring data layer over HTTP, with simulated latency and failure injection on writes, plus the scheduled pipeline digest.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "talentflow.yaml", "path to TalentFlow config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	out := cmd.OutOrStdout()

	cfg, gdb, err := openFromConfig(configPath)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	log := logging.New(cfg.Server.LogLevel)
	defer log.Sync()

	netOpts := simnet.Options{
		MinLatency:     cfg.Simulate.MinLatency(),
		MaxLatency:     cfg.Simulate.MaxLatency(),
		MinFailureRate: cfg.Simulate.MinFailureRate,
		MaxFailureRate: cfg.Simulate.MaxFailureRate,
	}
	if cfg.Simulate.Seed != 0 {
		netOpts.Rand = rand.New(rand.NewSource(cfg.Simulate.Seed))
	}
	net, err := simnet.New(netOpts)
	if err != nil {
		return err
	}

	notifiers := []notify.Notifier{notify.NewLogNotifier(log)}
	if cfg.Notify.SlackWebhook != "" {
		slack, err := notify.NewSlackNotifier(cfg.Notify.SlackWebhook)
		if err != nil {
			return err
		}
		notifiers = append(notifiers, slack)
	}

	if port == 0 {
		port = cfg.Server.Port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronJobs, err := digest.Start(gdb, log, cfg.Digest.Schedule)
	if err != nil {
		return fmt.Errorf("start digest: %w", err)
	}
	defer cronJobs.Stop()

	fmt.Fprintf(out, "TalentFlow listening on :%d (latency %s-%s, failure %.0f%%-%.0f%%)\n",
		port, cfg.Simulate.MinLatency(), cfg.Simulate.MaxLatency(),
		cfg.Simulate.MinFailureRate*100, cfg.Simulate.MaxFailureRate*100)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Start(ctx, api.Opts{
			DB:       gdb,
			Net:      net,
			Log:      log,
			Notifier: notify.NewMulti(log, notifiers...),
			Port:     port,
		})
	})
	return g.Wait()
}
