package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/barback/barback/internal/cache"
	"github.com/barback/barback/internal/config"
	"github.com/barback/barback/internal/domain"
	"github.com/barback/barback/internal/metrics"
	"github.com/barback/barback/internal/notify"
	"github.com/barback/barback/internal/remote"
	"github.com/barback/barback/internal/search"
	"github.com/barback/barback/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

// Version is set at build time via -ldflags
var Version = "dev"

const usage = `Usage: barback <command> [arguments]

Commands:
  get <collection>      print a collection (cocktails, ingredients, glassTypes, categories)
  search <query>        fuzzy-search cocktails by name
  refresh [collection]  force a refresh from the gateway (all collections if omitted)
  invalidate [collection]
                        drop cached data (all collections if omitted)
  stats                 print cache statistics per collection
  clear-cache           remove the local cache directory
`

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if showVersion {
		fmt.Printf("barback %s\n", Version)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := config.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = config.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting barback", "version", Version)

	client := remote.NewClient(cfg.Remote.URL, cfg.Remote.APIKey, remote.Role(cfg.Remote.Role), logger)
	client.SetTimeout(cfg.Remote.Timeout)

	st := store.NewCatalogStore(cfg.Cache.Dir, store.Options{
		FreshnessWindow: cfg.Cache.FreshnessWindow,
		Logger:          logger,
	})
	defer st.Close()

	coord := cache.New(st, client, cache.Options{
		Bus:          notify.NewBus(),
		Scheduler:    cache.NewTimerScheduler(),
		Metrics:      metrics.NewRecorder(prometheus.DefaultRegisterer),
		Logger:       logger,
		RefreshDelay: cfg.Cache.RefreshDelay,
		MemoryTTL:    cfg.Cache.MemoryTTL,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd := args[0]; cmd {
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("get requires a collection name")
		}
		return printCollection(ctx, coord, args[1])
	case "search":
		if len(args) < 2 {
			return fmt.Errorf("search requires a query")
		}
		return searchCocktails(ctx, coord, logger, strings.Join(args[1:], " "))
	case "refresh":
		if len(args) > 1 {
			return coord.ForceRefreshCollection(ctx, args[1])
		}
		return coord.ForceRefreshAll(ctx)
	case "invalidate":
		if len(args) > 1 {
			if err := validCollection(args[1]); err != nil {
				return err
			}
			coord.Invalidate(args[1])
			return nil
		}
		coord.InvalidateAll()
		return nil
	case "stats":
		printStats(coord)
		return nil
	case "clear-cache":
		if err := st.Close(); err != nil {
			logger.Warn("closing store before cache clear", "error", err)
		}
		return config.ClearCache(cfg)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func validCollection(name string) error {
	for _, c := range domain.Collections() {
		if c == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrUnknownCollection, name)
}

func printCollection(ctx context.Context, coord *cache.Coordinator, name string) error {
	var records any
	switch name {
	case domain.CollectionCocktails:
		records = coord.Cocktails(ctx)
	case domain.CollectionIngredients:
		records = coord.Ingredients(ctx)
	case domain.CollectionGlassTypes:
		records = coord.GlassTypes(ctx)
	case domain.CollectionCategories:
		records = coord.Categories(ctx)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownCollection, name)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func searchCocktails(ctx context.Context, coord *cache.Coordinator, logger *slog.Logger, query string) error {
	svc := search.NewService(coord, logger)
	matches := svc.Cocktails(ctx, query)
	if len(matches) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, m := range matches {
		fmt.Printf("%-20s %s\n", m.Cocktail.ID, m.Cocktail.Name)
	}
	return nil
}

func printStats(coord *cache.Coordinator) {
	stats := coord.Stats()

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("%-14s %7s %6s  %s\n", "COLLECTION", "RECORDS", "FRESH", "LAST UPDATED")
	for _, name := range names {
		s := stats[name]
		updated := "never"
		if !s.LastUpdated.IsZero() {
			updated = s.LastUpdated.Format(time.RFC3339)
		}
		fmt.Printf("%-14s %7d %6t  %s\n", name, s.Count, s.Fresh, updated)
	}
}
