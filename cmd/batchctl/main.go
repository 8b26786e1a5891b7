package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/haonguyen/perfume-catalog/internal/bootstrap"
	"github.com/haonguyen/perfume-catalog/internal/config"
	"github.com/haonguyen/perfume-catalog/internal/core/domain"
	"github.com/haonguyen/perfume-catalog/internal/core/ports"
	"github.com/haonguyen/perfume-catalog/internal/infrastructure/sourcelist"
	"github.com/haonguyen/perfume-catalog/internal/observability/logging"
)

func main() {
	file := flag.String("file", "", "path to a URL list: newline-delimited text or .xlsx (first column)")
	year := flag.Int("year", 0, "release year applied to every item (0 = unset)")
	async := flag.Bool("async", false, "enqueue items to the worker instead of ingesting inline")
	verbose := flag.Bool("verbose", false, "print the full step trace for successful items too")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: batchctl -file urls.txt [-year 2015] [-async] [-verbose]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.NewTextLogger("batchctl", cfg.LogLevel))

	urls, err := sourcelist.Load(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read url list: %v\n", err)
		os.Exit(1)
	}
	if len(urls) == 0 {
		fmt.Fprintf(os.Stderr, "no urls found in %s\n", *file)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{WithQueue: *async})
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap error: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	opts := domain.IngestOptions{}
	if *year > 0 {
		opts.Year = year
	}

	if *async {
		enqueue(ctx, app.Queue, urls, opts)
		return
	}

	outcome := app.BatchUC.IngestBatch(ctx, urls, opts)
	printSummary(outcome, *verbose)
	if outcome.Failed > 0 {
		os.Exit(1)
	}
}

func enqueue(ctx context.Context, queue ports.MessageQueue, urls []string, opts domain.IngestOptions) {
	queued := 0
	for i, url := range urls {
		itemOpts := opts
		itemOpts.BatchIndex = i
		err := queue.PublishIngestRequested(ctx, ports.IngestRequest{
			SourceURL: url,
			Options:   itemOpts,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "enqueue %s: %v\n", url, err)
			continue
		}
		queued++
	}
	fmt.Printf("queued %d/%d items\n", queued, len(urls))
	if queued < len(urls) {
		os.Exit(1)
	}
}

func printSummary(outcome *domain.BatchOutcome, verbose bool) {
	fmt.Printf("total: %d  successful: %d  failed: %d\n",
		outcome.Total, outcome.Successful, outcome.Failed)

	for i, result := range outcome.Results {
		if result.Success {
			name := ""
			if result.Perfume != nil {
				name = fmt.Sprintf("%s %s (id %d)", result.Perfume.Brand, result.Perfume.Name, result.Perfume.ID)
			}
			fmt.Printf("[%d] ok: %s\n", i, name)
			if verbose {
				printTrace(result.Steps)
			}
			continue
		}
		fmt.Printf("[%d] failed: %s\n", i, result.Error)
		printTrace(result.Steps)
	}
}

func printTrace(steps domain.StepTrace) {
	for _, step := range steps {
		fmt.Printf("    step %d [%s] %s\n", step.Step, step.Status, step.Message)
	}
}
