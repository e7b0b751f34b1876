package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"prism/internal/core"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the persisted snapshot as JSON",
		Long:  "Export writes the collection in its persisted form, a JSON array of records, to stdout or --out.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			payload, err := core.EncodeSnapshot(a.store.Snapshot())
			if err != nil {
				return err
			}
			payload = append(payload, '\n')
			path, _ := cmd.Flags().GetString("out")
			if path == "" {
				_, err = cmd.OutOrStdout().Write(payload)
				return err
			}
			if err := os.WriteFile(path, payload, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			a.logger.Info("exported", "path", path, "startups", a.store.Len())
			return nil
		},
	}
	cmd.Flags().String("out", "", "output file (default stdout)")
	return cmd
}
