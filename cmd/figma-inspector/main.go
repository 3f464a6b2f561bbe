package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	figmainspector "github.com/kataras/figma-inspector"
	"github.com/kataras/figma-inspector/pkg/config"
	"github.com/kataras/figma-inspector/pkg/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        *config.Config

	red  = color.New(color.FgRed)
	cyan = color.New(color.FgCyan)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "figma-inspector",
		Short: "Extract Figma node trees and keep a display surface in sync with the selection",
		Long: "A tool to extract a Figma selection into a plain JSON tree (geometry, auto-layout, paints, strokes, hierarchy), " +
			"serve it to display surfaces over a websocket and estimate its token cost",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			return err
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default "+config.DefaultFile+" when present)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("figma-inspector version %s\n", figmainspector.Version)
		},
	}

	rootCmd.AddCommand(newExtractCmd(), newHostCmd(), newSurfaceCmd(), newSelectCmd(), versionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// sourceFlags are the flags shared by commands that read a scene graph.
type sourceFlags struct {
	sceneFile string
	fileURL   string
	token     string
	nodeIDs   string
	maxDepth  int
	cacheSize int
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.sceneFile, "scene", "s", "", "JSON export of plugin nodes to read instead of the Figma API")
	cmd.Flags().StringVarP(&f.fileURL, "url", "u", "", "Figma file URL")
	cmd.Flags().StringVarP(&f.token, "token", "t", "", "Figma Personal Access Token")
	cmd.Flags().StringVarP(&f.nodeIDs, "node-ids", "n", "", "Comma-separated node IDs to select (default: IDs in the URL, or the document root)")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "Maximum number of expanded levels, 0 = unbounded")
	cmd.Flags().IntVar(&f.cacheSize, "cache-size", 0, "Number of fetched nodes kept in memory")
}

// options merges the loaded configuration with the flags set on the command line.
func (f *sourceFlags) options(cmd *cobra.Command) (figmainspector.Options, error) {
	if cmd.Flags().Changed("scene") {
		cfg.Host.SceneFile = f.sceneFile
	}
	if cmd.Flags().Changed("url") {
		cfg.Figma.FileURL = f.fileURL
	}
	if cmd.Flags().Changed("token") {
		cfg.Figma.Token = f.token
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.Host.MaxDepth = f.maxDepth
	}
	if cmd.Flags().Changed("cache-size") {
		cfg.Figma.CacheSize = f.cacheSize
	}
	if cmd.Flags().Changed("node-ids") {
		cfg.Host.Selection = figmainspector.ParseNodeIDs(f.nodeIDs)
	}

	if err := cfg.Validate(); err != nil {
		return figmainspector.Options{}, err
	}

	return figmainspector.Options{
		SceneFile:   cfg.Host.SceneFile,
		AccessToken: cfg.Figma.Token,
		FileURL:     cfg.Figma.FileURL,
		NodeIDs:     cfg.Host.Selection,
		MaxDepth:    cfg.Host.MaxDepth,
		CacheSize:   cfg.Figma.CacheSize,
		APIBaseURL:  cfg.Figma.APIURL,
		Logger:      logger.NewTerminal(),
	}, nil
}

func printBanner(w io.Writer) {
	cyan.Fprintln(w, "\n🎨 Figma Inspector")
	cyan.Fprintln(w, "==================")
	cyan.Fprintln(w)
}
