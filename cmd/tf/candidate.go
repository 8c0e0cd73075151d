package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zulandar/talentflow/internal/candidate"
	"github.com/zulandar/talentflow/internal/db"
	"github.com/zulandar/talentflow/internal/simnet"
)

func newCandidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "candidate",
		Short: "Candidate management commands",
	}

	cmd.AddCommand(newCandidateListCmd())
	cmd.AddCommand(newCandidateTimelineCmd())
	return cmd
}

func newCandidateListCmd() *cobra.Command {
	var (
		configPath string
		search     string
		stage      string
		jobID      string
		page       int
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			svc, err := candidate.NewService(gdb, simnet.Disabled())
			if err != nil {
				return err
			}
			result, err := svc.List(cmd.Context(), candidate.ListFilters{
				Search:   search,
				Stage:    stage,
				JobID:    jobID,
				Page:     page,
				PageSize: pageSize,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSTAGE\tJOB")
			for _, c := range result.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, c.Stage, c.JobID)
			}
			w.Flush()
			fmt.Fprintf(out, "\nPage %d/%d (%d candidates total)\n", result.Page, result.TotalPages, result.Total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "talentflow.yaml", "path to TalentFlow config file")
	cmd.Flags().StringVar(&search, "search", "", "match against name and email")
	cmd.Flags().StringVar(&stage, "stage", "", "filter by pipeline stage")
	cmd.Flags().StringVar(&jobID, "job", "", "filter by job id")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 25, "rows per page")
	return cmd
}

func newCandidateTimelineCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "timeline <candidate-id>",
		Short: "Show a candidate's stage history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			svc, err := candidate.NewService(gdb, simnet.Disabled())
			if err != nil {
				return err
			}
			events, err := svc.Timeline(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIMESTAMP\tSTAGE\tNOTES")
			for _, e := range events {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Stage, e.Notes)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "talentflow.yaml", "path to TalentFlow config file")
	return cmd
}
