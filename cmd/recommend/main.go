package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/imkonsowa/makansini/catalog"
	"github.com/imkonsowa/makansini/config"
	"github.com/imkonsowa/makansini/logger"
	"github.com/imkonsowa/makansini/prefs"
	"github.com/imkonsowa/makansini/recommender"
	"github.com/spf13/pflag"
)

type options struct {
	configPath string
	today      string
	debug      bool
	batch      string
	workers    int
	format     string
}

func main() {
	flags := pflag.NewFlagSet("recommend", pflag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: recommend [flags] <what you are craving>\n       recommend [flags] --batch queries.txt\n\n")
		flags.PrintDefaults()
	}

	var opts options
	flags.StringVar(&opts.configPath, "config", config.DefaultPath, "config file; empty to use defaults and environment only")
	flags.StringVar(&opts.today, "today", "", "weekday to check opening days against (default: today in the configured timezone)")
	flags.BoolVar(&opts.debug, "debug", false, "include per-aspect sub-scores")
	flags.StringVar(&opts.batch, "batch", "", "file with one query per line, - for stdin")
	flags.IntVar(&opts.workers, "workers", 4, "concurrent queries in batch mode")
	flags.StringVar(&opts.format, "format", "json", "output of a single query: json or text")

	flags.String("catalog.path", "", "catalog file (.csv or .xlsx)")
	flags.Int("recommend.maxCount", 0, "maximum number of recommendations")
	flags.Float64("recommend.threshold", 0, "keep results within this many points of the best; negative disables")
	flags.Bool("recommend.onlyOpenToday", true, "only recommend places open today")
	flags.String("log.level", "", "log level")

	_ = flags.Parse(os.Args[1:])

	if opts.configPath == config.DefaultPath {
		if _, err := os.Stat(opts.configPath); errors.Is(err, fs.ErrNotExist) {
			opts.configPath = ""
		}
	}

	cfg, err := config.Load(opts.configPath, flags)
	if err != nil {
		log.Fatal(err)
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level, Format: "text", Component: "recommend"})

	today := opts.today
	if today == "" {
		loc, err := cfg.Recommend.Location()
		if err != nil {
			log.Fatal(err)
		}
		today = recommender.DayName(time.Now(), loc)
	}

	svc := recommender.NewService(catalog.NewCache(cfg.Catalog.Path), recommender.Options{
		MaxCount:      cfg.Recommend.MaxCount,
		Threshold:     cfg.Recommend.Threshold,
		OnlyOpenToday: cfg.Recommend.OnlyOpenToday,
		Weights:       cfg.Recommend.Weights,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func(ctx context.Context, query string) (any, error) {
		return recommend(ctx, svc, query, today, opts.debug)
	}

	if opts.batch != "" {
		if err := runBatch(ctx, opts, run, os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	query := strings.TrimSpace(strings.Join(flags.Args(), " "))
	if query == "" {
		flags.Usage()
		os.Exit(2)
	}

	res, err := recommend(ctx, svc, query, today, opts.debug)
	if err != nil {
		log.Fatal(err)
	}

	if err := write(os.Stdout, res, opts.format); err != nil {
		log.Fatal(err)
	}
}

func write(w io.Writer, res *recommender.Result, format string) error {
	switch strings.ToLower(format) {
	case "text":
		return writeText(w, res)
	case "json", "":
		out, err := sonic.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// writeText prints the summary and one line per recommendation followed by
// its reasons.
func writeText(w io.Writer, res *recommender.Result) error {
	var b strings.Builder

	for _, line := range res.Summary {
		fmt.Fprintf(&b, "%s\n", line)
	}
	b.WriteString("\n")

	switch res.Status {
	case recommender.StatusEmptyCatalog:
		b.WriteString("The catalog is empty.\n")
	case recommender.StatusClosedToday:
		fmt.Fprintf(&b, "Nothing matching is open on %s. Best picks for another day:\n", res.Today)
	}

	for i, r := range res.Recommendations {
		fmt.Fprintf(&b, "%d. %s [score %s]\n", i+1, r.Stringify(), prefs.FormatNumber(r.Score))
		for _, reason := range r.Reasons {
			fmt.Fprintf(&b, "   - %s\n", reason)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func recommend(ctx context.Context, svc *recommender.Service, query, today string, debug bool) (*recommender.Result, error) {
	parser, err := svc.Parser(ctx)
	if err != nil {
		return nil, err
	}

	p := parser.ParseText(query)
	if !p.HasSignal() {
		slog.Warn("no cuisine, budget, distance or area found; ranking by rating only", "query", query)
	}

	res, err := svc.Recommend(ctx, p, today)
	if err != nil {
		return nil, err
	}

	if !debug {
		for i := range res.Recommendations {
			res.Recommendations[i].Breakdown = nil
		}
	}

	return res, nil
}

// runBatch answers every non-empty line of the batch file and writes one JSON
// object per line, in input order.
func runBatch(ctx context.Context, opts options, run func(context.Context, string) (any, error), w io.Writer) error {
	in := io.Reader(os.Stdin)
	if opts.batch != "-" {
		f, err := os.Open(opts.batch)
		if err != nil {
			return fmt.Errorf("failed to open batch file: %w", err)
		}
		defer f.Close()
		in = f
	}

	pool := NewWorkerPool(ctx, opts.workers, opts.workers*2, run)

	n := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if !pool.Submit(ctx, Job{Index: n, Query: query}) {
			break
		}
		n++
	}
	pool.Close()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}

	slog.Info("batch finished", "queries", n)

	for _, o := range pool.Outcomes(n) {
		line, err := sonic.Marshal(o)
		if err != nil {
			return fmt.Errorf("failed to marshal outcome: %w", err)
		}
		if _, err := fmt.Fprintln(w, string(line)); err != nil {
			return err
		}
	}

	return nil
}
