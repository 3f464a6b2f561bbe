package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	figmainspector "github.com/kataras/figma-inspector"
	"github.com/kataras/figma-inspector/pkg/host"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newSelectCmd() *cobra.Command {
	var hostURL string

	cmd := &cobra.Command{
		Use:   "select [node-ids...]",
		Short: "Change the selection of a running host",
		Long: "Change the selection of a running host. Node IDs may be given as separate arguments " +
			"or comma-separated; no arguments clears the selection.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := figmainspector.ParseNodeIDs(strings.Join(args, ","))

			body, err := json.Marshal(host.SelectionRequest{IDs: ids})
			if err != nil {
				return err
			}

			endpoint := strings.TrimSuffix(hostURL, "/") + "/selection"
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, endpoint, bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")

			client := &http.Client{Timeout: 10 * time.Second}
			resp, err := client.Do(req)
			if err != nil {
				return fmt.Errorf("post selection: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
				return fmt.Errorf("host returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
			}

			var echoed host.SelectionRequest
			if err := json.NewDecoder(resp.Body).Decode(&echoed); err != nil {
				return fmt.Errorf("decode reply: %w", err)
			}

			color.New(color.FgGreen).Printf("✓ Selection set to %d node(s)", len(echoed.IDs))
			if len(echoed.IDs) > 0 {
				fmt.Printf(": %s", strings.Join(echoed.IDs, ", "))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&hostURL, "host", "http://localhost:8790", "Base URL of the running host")

	return cmd
}
