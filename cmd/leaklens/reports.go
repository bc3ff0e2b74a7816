package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leaklens/leaklens/internal/cli"
	"github.com/leaklens/leaklens/internal/config"
	"github.com/leaklens/leaklens/internal/storage"
)

func reportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Manage stored analysis reports",
	}

	cmd.AddCommand(reportsListCmd())
	cmd.AddCommand(reportsShowCmd())
	cmd.AddCommand(reportsExportCmd())
	cmd.AddCommand(reportsDeleteCmd())

	return cmd
}

func openStore(cmd *cobra.Command) (*storage.SQLiteStorage, error) {
	dbPath, err := config.DatabasePath()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(cmd.Context()); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func reportsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			summaries, err := store.ListReports(cmd.Context())
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Fprintln(os.Stdout, "No stored reports. Run 'leaklens analyze --save' first.")
				return nil
			}

			fmt.Fprintf(os.Stdout, "%-36s  %-19s  %-10s  %-10s  %6s  %10s\n",
				"ID", "CREATED", "FROM", "TO", "TXNS", "SAVINGS")
			for _, s := range summaries {
				fmt.Fprintf(os.Stdout, "%-36s  %-19s  %-10s  %-10s  %6d  %10s\n",
					s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"),
					s.StartDate, s.EndDate, s.TransactionCount, s.AnnualSavings)
			}
			return nil
		},
	}
}

func reportsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Render a stored report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			result, err := store.GetReport(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprint(os.Stdout, cli.RenderReport(result))
			return nil
		},
	}
}

func reportsExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a stored report's serialized form to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}

			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			blob, err := store.GetReportBlob(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				fmt.Fprintln(os.Stdout, string(blob))
				return nil
			}
			if err := os.WriteFile(out, blob, 0600); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintln(os.Stdout, cli.FormatSuccess("exported to "+out))
			return nil
		},
	}

	cmd.Flags().String("out", "", "Output file (default: stdout)")
	return cmd
}

func reportsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteReport(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, cli.FormatSuccess("deleted report "+args[0]))
			return nil
		},
	}
}
