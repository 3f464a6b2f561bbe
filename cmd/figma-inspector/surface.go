package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kataras/figma-inspector/pkg/logger"
	"github.com/kataras/figma-inspector/pkg/surface"
	"github.com/kataras/figma-inspector/pkg/transport"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const surfaceHelp = `Commands:
  expand on|off          re-extract with or without descendants
  tab pretty|minified    switch the displayed serialization
  copy                   copy the displayed text to the clipboard file
  show                   print the displayed text again
  quit                   disconnect`

func newSurfaceCmd() *cobra.Command {
	var (
		url           string
		clipboardFile string
		tab           string
	)

	cmd := &cobra.Command{
		Use:   "surface",
		Short: "Connect to a host and display the extracted selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("url") {
				cfg.Surface.URL = url
			}
			if cmd.Flags().Changed("clipboard") {
				cfg.Surface.ClipboardFile = clipboardFile
			}
			if cmd.Flags().Changed("tab") {
				cfg.Surface.Tab = tab
			}
			activeTab, err := surface.ParseTab(cfg.Surface.Tab)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			printBanner(os.Stdout)
			conn, err := transport.Dial(ctx, cfg.Surface.URL)
			if err != nil {
				return err
			}
			defer conn.Close()

			s := surface.New(conn, surface.Options{
				Clipboard: surface.FileClipboard{Path: cfg.Surface.ClipboardFile},
				Logger:    logger.NewTerminal(),
				OnUpdate:  printView,
			})
			s.SetTab(activeTab)

			listenErr := make(chan error, 1)
			go func() {
				listenErr <- s.Listen(ctx)
				cancel()
			}()

			if err := s.Start(ctx); err != nil {
				return err
			}
			fmt.Println(surfaceHelp)

			if err := runSurfacePrompt(ctx, s); err != nil {
				return err
			}
			cancel()
			return <-listenErr
		},
	}

	cmd.Flags().StringVarP(&url, "url", "u", "ws://localhost:8790/ws", "Host websocket URL")
	cmd.Flags().StringVar(&clipboardFile, "clipboard", "figma-selection.json", "File that receives copied text")
	cmd.Flags().StringVar(&tab, "tab", "pretty", "Initial tab: pretty or minified")

	return cmd
}

// runSurfacePrompt reads commands from stdin until quit, EOF or ctx is done.
func runSurfacePrompt(ctx context.Context, s *surface.Surface) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := runSurfaceCommand(ctx, s, strings.Fields(line))
			if err != nil {
				red.Printf("✗ %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

func runSurfaceCommand(ctx context.Context, s *surface.Surface, fields []string) (quit bool, err error) {
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "expand":
		if len(fields) != 2 || (fields[1] != "on" && fields[1] != "off") {
			return false, errors.New("usage: expand on|off")
		}
		return false, s.SetExpand(ctx, fields[1] == "on")
	case "tab":
		if len(fields) != 2 {
			return false, errors.New("usage: tab pretty|minified")
		}
		t, err := surface.ParseTab(fields[1])
		if err != nil {
			return false, err
		}
		s.SetTab(t)
	case "copy":
		if err := s.Copy(ctx); err != nil {
			return false, err
		}
		color.New(color.FgGreen).Println("✓ Copied")
	case "show":
		printView(s.View())
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q\n%s", fields[0], surfaceHelp)
	}
	return false, nil
}

func printView(v surface.View) {
	cyan.Printf("\n── %s · %s · expand=%t · ~%d tokens ──\n", v.State, v.Tab, v.Expand, v.Tokens)
	if v.Notice != "" {
		color.New(color.FgYellow).Printf("⚠ %s\n", v.Notice)
	}
	switch {
	case v.State != surface.Displaying:
		fmt.Println("Waiting for the host...")
	case v.Empty:
		fmt.Println("Nothing selected.")
	default:
		fmt.Println(v.Text)
	}
}
