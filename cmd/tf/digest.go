package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zulandar/talentflow/internal/db"
	"github.com/zulandar/talentflow/internal/digest"
	"github.com/zulandar/talentflow/internal/models"
)

func newDigestCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Print a one-shot pipeline digest",
		Long:  "Computes the digest the serve command logs on its schedule: job counts and candidates per stage.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			stats, err := digest.Snapshot(gdb)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Jobs: %d active, %d archived\n", stats.ActiveJobs, stats.ArchivedJobs)
			fmt.Fprintf(out, "Candidates: %d\n\n", stats.Candidates)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STAGE\tCANDIDATES")
			for _, stage := range models.Stages {
				fmt.Fprintf(w, "%s\t%d\n", stage, stats.ByStage[stage])
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "talentflow.yaml", "path to TalentFlow config file")
	return cmd
}
