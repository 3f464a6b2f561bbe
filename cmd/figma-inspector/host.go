package main

import (
	"fmt"
	"os"

	figmainspector "github.com/kataras/figma-inspector"
	"github.com/kataras/figma-inspector/pkg/extractor"
	"github.com/kataras/figma-inspector/pkg/host"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newHostCmd() *cobra.Command {
	var (
		src     sourceFlags
		addr    string
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "host",
		Short: "Serve the selection to display surfaces over a websocket",
		Long: "Serve the selection to display surfaces over a websocket at /ws. " +
			"POST {\"ids\":[...]} to /selection to change the selection; connected surfaces receive the new extraction.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := src.options(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Host.Addr = addr
			}
			if cmd.Flags().Changed("allow-origin") {
				cfg.Host.AllowedOrigins = origins
			}

			printBanner(os.Stdout)
			selection, err := figmainspector.OpenSelection(opts)
			if err != nil {
				return err
			}

			notice := color.New(color.FgHiWhite, color.BgBlue)
			h := host.New(selection, host.Options{
				Extractor:      extractor.Extractor{MaxDepth: opts.MaxDepth},
				Logger:         opts.Logger,
				AllowedOrigins: cfg.Host.AllowedOrigins,
				OnNotify: func(message string) {
					notice.Printf(" %s ", message)
					fmt.Println()
				},
			})

			color.New(color.FgGreen).Printf("Listening on %s (websocket at /ws)\n", cfg.Host.Addr)
			return h.ListenAndServe(cmd.Context(), cfg.Host.Addr)
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&addr, "addr", "a", "localhost:8790", "Listen address")
	cmd.Flags().StringSliceVar(&origins, "allow-origin", nil, "Browser origin allowed to open the websocket (repeatable, * for any)")

	return cmd
}
