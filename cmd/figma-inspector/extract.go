package main

import (
	"fmt"
	"os"

	figmainspector "github.com/kataras/figma-inspector"
	"github.com/kataras/figma-inspector/pkg/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var (
		src        sourceFlags
		expand     bool
		format     string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the selected nodes once and print or save the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := src.options(cmd)
			if err != nil {
				return err
			}
			opts.Expand = expand

			// progress goes to stderr when stdout carries the payload.
			info := os.Stdout
			if outputFile == "" {
				info = os.Stderr
			}
			opts.Logger = &logger.Terminal{Out: info}

			printBanner(info)

			result, err := figmainspector.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			var out string
			switch format {
			case "pretty", "json":
				out = result.Pretty
			case "minified", "min":
				out = result.Minified
			case "markdown", "md":
				out = result.Markdown
			case "tree":
				out = result.Tree
			default:
				return fmt.Errorf("invalid format %q (must be pretty, minified, markdown or tree)", format)
			}

			green := color.New(color.FgGreen)
			cyan.Fprintln(info, "\n📊 Extraction Summary:")
			fmt.Fprintf(info, "  • Nodes: %d\n", len(result.Nodes()))
			fmt.Fprintf(info, "  • Size: %d bytes pretty, %d bytes minified\n", len(result.Pretty), len(result.Minified))
			fmt.Fprintf(info, "  • Estimated tokens: ~%d\n", result.Tokens)

			if outputFile == "" {
				fmt.Println(out)
				return nil
			}

			green.Printf("\n💾 Writing to %s... ", outputFile)
			if err := os.WriteFile(outputFile, []byte(out), 0644); err != nil {
				red.Printf("✗\n")
				return err
			}
			green.Println("✓")
			green.Printf("\n✨ Successfully extracted %s to %s\n\n", result.Title, outputFile)
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().BoolVarP(&expand, "expand", "e", true, "Inline every descendant instead of child counts")
	cmd.Flags().StringVarP(&format, "format", "f", "pretty", "Output format: pretty, minified, markdown, tree")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")

	return cmd
}
