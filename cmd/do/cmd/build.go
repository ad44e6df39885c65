package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/slatesocial/site/internal/app"
	"github.com/slatesocial/site/internal/config"
	"github.com/slatesocial/site/internal/logger"
	"github.com/spf13/cobra"
)

func BuildCmd() *cobra.Command {
	var (
		out    string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Validate content and build the static site",
		Long: `Validates every blog entry, renders all pages into a staging
directory, checks internal links and swaps the result into the output
directory. Nothing is written if any step fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if out != "" {
				cfg.OutputDir = out
			}
			if cmd.Flags().Changed("strict") {
				cfg.StrictLinks = strict
			}

			res, err := app.NewBuilder(cfg).Build(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("built %d pages (%d posts, %d images) into %s: %s in %s\n",
				res.Pages, res.Posts, res.Images.Files, res.Dir,
				humanize.Bytes(uint64(res.Bytes)), res.Duration.Round(time.Millisecond))
			if n := len(res.Issues); n > 0 {
				fmt.Printf("%d link issue(s) reported as warnings\n", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (default OUTPUT_DIR)")
	cmd.Flags().BoolVar(&strict, "strict", true, "fail the build on broken links")
	return cmd
}

// loadConfig reads the environment and sets up logging for a command.
func loadConfig() *config.Config {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), cfg.LogLevel, cfg.SentryDSN)
	return cfg
}
