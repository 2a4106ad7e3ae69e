package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/addisoncox/addisoncox.github.io/internal/config"
	"github.com/addisoncox/addisoncox.github.io/internal/index"
	"github.com/addisoncox/addisoncox.github.io/internal/site"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Converts every post and rebuilds the index page's post list",
	Long: `The build command converts each Markdown post in the input directory
into an HTML page in the output directory, highlights its code blocks, and
replaces the children of <ul class="post-list"> in the index page with links
to all posts, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuildProcess(cmd.Context(), appConfig)
	},
}

// runBuildProcess reports a missing input directory or post list as a
// diagnostic and returns nil; every other failure is returned.
func runBuildProcess(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	builder, err := site.NewBuilder(cfg, slog.Default())
	if err != nil {
		return err
	}

	res, err := builder.Build(ctx)
	switch {
	case errors.Is(err, site.ErrInputDirNotFound):
		fmt.Printf("Error: Directory '%s' does not exist.\n", cfg.InputDir)
		return nil
	case errors.Is(err, index.ErrPostListNotFound):
		fmt.Println("Error: Could not find the existing post list in the HTML file.")
		return nil
	case err != nil:
		return err
	}

	for _, name := range res.Drafts {
		fmt.Printf("Skipped draft: %s\n", name)
	}
	fmt.Printf("Conversion and syntax highlighting complete for files in '%s' directory.\n", cfg.InputDir)
	return nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
	// A bare invocation builds, as the original script did.
	rootCmd.RunE = buildCmd.RunE
}
