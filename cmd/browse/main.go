// Package main is a terminal front end for the article list.
// Usage: sports-browse [--endpoint URL] [--limit N]
//
// Enter loads the next page, "d <id>" deletes an article, "r" reloads from
// the first page, "q" quits.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"sports-articles/internal/client/api"
	"sports-articles/internal/client/listing"
	"sports-articles/internal/observability/logging"
	envconfig "sports-articles/pkg/config"
)

func main() {
	def := api.DefaultConfig()
	var (
		endpoint string
		limit    int
	)
	flag.StringVar(&endpoint, "endpoint", envconfig.GetEnvString("API_ENDPOINT", def.Endpoint), "GraphQL endpoint URL")
	flag.IntVar(&limit, "limit", 10, "Articles per page")
	flag.Parse()

	// ログは LOG_FILE 指定時のみ書き出す（画面出力と混ざらないように）
	logger := logging.New(io.Discard, logging.OptionsFromEnv())

	def.Endpoint = endpoint
	client, err := api.New(def, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctrl := listing.NewController(client, client, limit, logger)
	if err := run(ctx, ctrl, os.Stdin, os.Stdout); err != nil {
		logger.Error("browse failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run loads the first page and then executes one command per input line.
func run(ctx context.Context, ctrl *listing.Controller, in io.Reader, out io.Writer) error {
	if _, err := ctrl.Proximity(ctx); err != nil {
		render(out, ctrl.Snapshot())
		return fmt.Errorf("load first page: %w", err)
	}
	render(out, ctrl.Snapshot())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			merged, _ := ctrl.Proximity(ctx)
			if !merged && !ctrl.Snapshot().HasNextPage {
				fmt.Fprintln(out, "(end of list)")
				continue
			}
		case line == "q" || line == "quit":
			return nil
		case line == "r":
			_ = ctrl.Refresh(ctx)
		case strings.HasPrefix(line, "d "):
			id := strings.TrimSpace(strings.TrimPrefix(line, "d "))
			if err := ctrl.Delete(ctx, id); err == nil {
				fmt.Fprintf(out, "deleted %s\n", id)
			}
		default:
			fmt.Fprintln(out, "commands: <enter> more, d <id> delete, r reload, q quit")
			continue
		}

		snap := ctrl.Snapshot()
		render(out, snap)
		if snap.Notice != "" {
			ctrl.DismissNotice()
		}
	}
}

// render prints the accumulated list followed by its footer.
func render(out io.Writer, s listing.Snapshot) {
	for i, a := range s.Items {
		fmt.Fprintf(out, "%3d. %s  %s\n", i+1, a.ID, a.Title)
		if a.CreatedAt != nil {
			fmt.Fprintf(out, "     %s\n", *a.CreatedAt)
		}
		if a.ImageURL != nil {
			fmt.Fprintf(out, "     image: %s\n", *a.ImageURL)
		}
	}
	if len(s.Items) == 0 {
		fmt.Fprintln(out, "No articles.")
	}
	fmt.Fprintf(out, "-- %d of %d loaded", len(s.Items), s.TotalCount)
	if s.HasNextPage {
		fmt.Fprint(out, ", press Enter for more")
	}
	if s.Missing > 0 {
		fmt.Fprintf(out, ", %d skipped after deletes, r to reload", s.Missing)
	}
	fmt.Fprintln(out, " --")
	if s.Notice != "" {
		fmt.Fprintf(out, "!! %s\n", s.Notice)
	}
}
