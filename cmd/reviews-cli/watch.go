package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *options) *cobra.Command {
	var (
		pretty bool
		count  int
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream review change events from a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			url := wsURL(opts.baseURL)

			seen := 0
			for {
				n, err := watchOnce(ctx, url, pretty, count-seen, cmd.OutOrStdout())
				seen += n
				if count > 0 && seen >= count {
					return nil
				}
				if ctx.Err() != nil {
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "[watch] disconnected: %v\n", err)

				// reconnect
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(time.Second):
				}
			}
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", true, "pretty print JSON events")
	cmd.Flags().IntVar(&count, "count", 0, "exit after this many events (0 = run until interrupted)")
	return cmd
}

// watchOnce reads events until the connection drops or limit events have
// been printed. A non-positive limit means no limit.
func watchOnce(ctx context.Context, url string, pretty bool, limit int, out io.Writer) (int, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return 0, fmt.Errorf("dial %s: %w", url, err)
	}
	defer ws.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = ws.Close()
		case <-stop:
		}
	}()

	n := 0
	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			return n, err
		}

		var ev map[string]any
		if err := json.Unmarshal(msg, &ev); err != nil {
			fmt.Fprintln(out, string(msg))
			continue
		}
		if ev["type"] == "welcome" {
			continue
		}

		if pretty {
			b, _ := json.MarshalIndent(ev, "", "  ")
			fmt.Fprintln(out, string(b))
		} else {
			fmt.Fprintln(out, string(msg))
		}

		n++
		if limit > 0 && n >= limit {
			return n, nil
		}
	}
}

func wsURL(baseURL string) string {
	u := strings.TrimRight(baseURL, "/")
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + "/ws"
}
