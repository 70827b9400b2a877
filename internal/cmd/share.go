package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/newsletter/internal/config"
	"github.com/stateful/newsletter/internal/config/autoconfig"
	"github.com/stateful/newsletter/internal/export"
	"github.com/stateful/newsletter/internal/store"
)

func shareCmd() *cobra.Command {
	var copyOut bool

	cmd := cobra.Command{
		Use:   "share",
		Short: "Print a read-only preview link carrying the newsletter.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return autoconfig.InvokeForCommand(
				func(cfg *config.Config, s *store.Store, logger *zap.Logger) error {
					defer logger.Sync()

					link, err := export.ShareLink(cfg.Export.Origin, s.Document())
					if err != nil {
						return err
					}

					if copyOut {
						if err := export.Copy(link, logger); err != nil {
							warnf(cmd, "%v", err)
						}
					}

					_, err = fmt.Fprintln(cmd.OutOrStdout(), link)
					return errors.WithStack(err)
				},
				cmd,
			)
		},
	}

	cmd.Flags().String("origin", "", "Origin of the preview site.")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Also copy the link to the clipboard.")

	return &cmd
}
