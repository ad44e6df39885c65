package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	cssInput  = "assets/css/input.css"
	cssOutput = "assets/css/output.css"
)

func GenCmd() *cobra.Command {
	var force, watch bool

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate assets/css/output.css with tailwindcss",
		Long: `Runs the tailwindcss standalone CLI over the templates and scripts.
Skipped when output.css is newer than every input unless --force is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd.Context(), force, watch)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "regenerate even if output.css is up to date")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep tailwindcss running and rebuild on change")
	return cmd
}

func runGen(ctx context.Context, force, watch bool) error {
	bin, err := exec.LookPath("tailwindcss")
	if err != nil {
		fmt.Println("Missing binary: tailwindcss")
		fmt.Println("Install the standalone CLI: https://tailwindcss.com/blog/standalone-cli")
		return fmt.Errorf("missing required binary: tailwindcss")
	}

	if !force && !watch && isUpToDate(cssOutput, tailwindInputs()) {
		fmt.Println("[tailwindcss] skipped, up to date")
		return nil
	}

	args := []string{"-i", cssInput, "-o", cssOutput}
	if watch {
		args = append(args, "--watch")
	} else {
		args = append(args, "--minify")
	}

	start := time.Now()
	tw := exec.CommandContext(ctx, bin, args...)
	tw.Stdout = os.Stdout
	tw.Stderr = os.Stderr
	if err := tw.Run(); err != nil {
		if watch && errors.Is(ctx.Err(), context.Canceled) {
			return nil
		}
		return fmt.Errorf("tailwindcss: %w", err)
	}

	fmt.Printf("[tailwindcss] done (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// tailwindInputs are the files whose class names end up in output.css.
func tailwindInputs() []string {
	inputs := []string{cssInput}
	_ = filepath.WalkDir("internal/ui", func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".html") || strings.HasSuffix(path, ".go") {
			inputs = append(inputs, path)
		}
		return nil
	})
	jsFiles, _ := filepath.Glob("assets/js/*.js")
	return append(inputs, jsFiles...)
}

func isUpToDate(output string, inputs []string) bool {
	outInfo, err := os.Stat(output)
	if err != nil {
		return false
	}
	outMod := outInfo.ModTime()

	for _, input := range inputs {
		inInfo, err := os.Stat(input)
		if err != nil {
			continue
		}
		if inInfo.ModTime().After(outMod) {
			return false
		}
	}
	return true
}
