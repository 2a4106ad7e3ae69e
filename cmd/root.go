package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/addisoncox/addisoncox.github.io/internal/config"
)

var cfgFile string
var verbose bool
var appConfig config.Config

var rootCmd = &cobra.Command{
	Use:   "postgen",
	Short: "postgen - converts dated Markdown posts into site pages",
	Long: `postgen converts every dated Markdown post in the input directory into
an HTML page, colors the code blocks in each page, and rewrites the post list
of the existing index page, newest post first.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./postgen.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every converted post")
	rootCmd.PersistentFlags().String("input", "", "directory holding the Markdown posts")
	rootCmd.PersistentFlags().String("output", "", "directory the post pages are written to")
	rootCmd.PersistentFlags().String("index", "", "index page holding the post list")
}

// flagKeys maps persistent flags onto config keys.
var flagKeys = map[string]string{
	"input":  "inputDir",
	"output": "outputDir",
	"index":  "indexPage",
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	def := config.Default()
	v.SetDefault("inputDir", def.InputDir)
	v.SetDefault("outputDir", def.OutputDir)
	v.SetDefault("indexPage", def.IndexPage)
	v.SetDefault("stylesheetHref", def.StylesheetHref)
	v.SetDefault("siteTitle", def.SiteTitle)
	v.SetDefault("postURLPrefix", def.PostURLPrefix)
	v.SetDefault("markupExt", def.MarkupExt)
	v.SetDefault("headerTemplate", def.HeaderTemplate)
	v.SetDefault("footerTemplate", def.FooterTemplate)
	v.SetDefault("highlightStyle", def.HighlightStyle)
	v.SetDefault("highlightCSS", def.HighlightCSS)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("postgen")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("POSTGEN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFile != "" {
				return fmt.Errorf("config file %s not found: %w", cfgFile, err)
			}
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else if verbose {
		fmt.Println("Using config file:", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}
