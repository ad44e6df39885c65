package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slatesocial/site/internal/content"
	"github.com/slatesocial/site/internal/service"
	"github.com/spf13/cobra"
)

func CheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate blog frontmatter and content pages without building",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			posts, err := service.NewBlogService(cfg.ContentPath).Posts()
			var verrs *content.ValidationErrors
			if errors.As(err, &verrs) {
				printIssues(verrs)
				return fmt.Errorf("%d invalid entry file(s)", len(verrs.Entries))
			}
			if err != nil {
				return err
			}

			pages, err := service.NewPageService(cfg.ContentPath).Pages()
			if err != nil {
				return err
			}

			fmt.Printf("ok: %d posts, %d pages\n", len(posts), len(pages))
			return nil
		},
	}
}

func printIssues(verrs *content.ValidationErrors) {
	cwd, _ := os.Getwd()
	for _, entry := range verrs.Entries {
		file := entry.File
		if rel, err := filepath.Rel(cwd, file); err == nil {
			file = rel
		}
		for _, issue := range entry.Issues {
			fmt.Fprintf(os.Stderr, "%s: %s: %s\n", file, issue.Field, issue.Message)
		}
	}
}
