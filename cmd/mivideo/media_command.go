package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mivideo/internal/mediaapi"
)

func newMediaCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var pageIndex int
	var pageSize int

	cmd := &cobra.Command{
		Use:   "media",
		Short: "List media entries in the course gallery",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			api, err := ctx.newAPIClient(cmd.Context())
			if err != nil {
				return err
			}

			courseID, userID := courseIdentity(cfg)
			entries, err := api.GetMediaList(cmd.Context(), courseID, userID, mediaapi.Page{
				Index: pageIndex,
				Size:  pageSize,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, entries)
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{entry.ID, entry.Name})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "NAME"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	cmd.Flags().IntVar(&pageIndex, "page", 0, "Page index (defaults to the first page)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Page size (defaults to 500)")

	return cmd
}
