package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zulandar/talentflow/internal/db"
	"github.com/zulandar/talentflow/internal/job"
	"github.com/zulandar/talentflow/internal/simnet"
)

func newJobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Job management commands",
	}

	cmd.AddCommand(newJobListCmd())
	return cmd
}

func newJobListCmd() *cobra.Command {
	var (
		configPath string
		search     string
		status     string
		sort       string
		order      string
		page       int
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			svc, err := job.NewService(gdb, simnet.Disabled())
			if err != nil {
				return err
			}
			result, err := svc.List(cmd.Context(), job.ListFilters{
				Search:   search,
				Status:   status,
				Sort:     sort,
				Order:    order,
				Page:     page,
				PageSize: pageSize,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tORDER\tTAGS")
			for _, j := range result.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					j.ID, j.Title, j.Status, j.SortOrder, strings.Join(j.Tags, ","))
			}
			w.Flush()
			fmt.Fprintf(out, "\nPage %d/%d (%d jobs total)\n", result.Page, result.TotalPages, result.Total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "talentflow.yaml", "path to TalentFlow config file")
	cmd.Flags().StringVar(&search, "search", "", "match against title and description")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (active, archived)")
	cmd.Flags().StringVar(&sort, "sort", "", "sort key (title, createdAt, order)")
	cmd.Flags().StringVar(&order, "order", "", "sort direction (asc, desc)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 25, "rows per page")
	return cmd
}
