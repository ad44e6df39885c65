package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/slatesocial/site/internal/app"
	"github.com/slatesocial/site/internal/service"
	"github.com/slatesocial/site/internal/storage"
	"github.com/spf13/cobra"
)

func PublishCmd() *cobra.Command {
	var skipBuild bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the built site to S3-compatible object storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := loadConfig()
			if err := cfg.RequirePublish(); err != nil {
				return err
			}

			if !skipBuild {
				if _, err := app.NewBuilder(cfg).Build(ctx); err != nil {
					return err
				}
			}

			store, err := storage.New(ctx, cfg)
			if err != nil {
				return err
			}

			res, err := service.NewPublishService(store, cfg.OutputDir).Publish(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("published %d files (%s) to %s\n", res.Files, humanize.Bytes(uint64(res.Bytes)), store.URL(""))
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipBuild, "skip-build", false, "upload the existing output directory as is")
	return cmd
}
