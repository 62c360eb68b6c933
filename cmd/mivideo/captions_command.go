package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCaptionsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var showText string

	cmd := &cobra.Command{
		Use:   "captions <media-id>",
		Short: "List caption assets for a media entry",
		Args:  cobra.ExactArgs(1),
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

			if showText != "" {
				text, err := api.GetCaptionText(cmd.Context(), courseID, userID, showText)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}

			assets, err := api.GetCaptionList(cmd.Context(), courseID, userID, args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, assets)
			}

			rows := make([][]string, 0, len(assets))
			for _, asset := range assets {
				rows = append(rows, []string{asset.ID, asset.LanguageCode, asset.Format.String()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "LANGUAGE", "FORMAT"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	cmd.Flags().StringVar(&showText, "text", "", "Print the raw caption text for the given caption asset id")

	return cmd
}
