// Package main is the ShelfScout CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shelfscout/shelfscout/internal/config"
	"github.com/shelfscout/shelfscout/internal/fixture"
	"github.com/shelfscout/shelfscout/internal/models"
	"github.com/shelfscout/shelfscout/internal/search"
	"github.com/shelfscout/shelfscout/internal/server"
	"github.com/shelfscout/shelfscout/internal/storage"
	"github.com/shelfscout/shelfscout/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/shelfscout/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "seed":
		runSeed()
	case "version", "--version", "-v":
		fmt.Printf("shelfscout version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	st, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer st.Close()

	engine := search.NewEngine(st, &cfg.Scoring, logger)
	srv := server.NewServer(engine, st, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	addr := fs.String("addr", "http://localhost:8080", "server base URL")
	storeID := fs.Int64("store", 0, "store id to search in")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: shelfscout search [flags] <query>\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[2:])

	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if *storeID == 0 {
		fmt.Println("search: -store is required")
		fs.Usage()
		os.Exit(1)
	}

	body, err := json.Marshal(map[string]interface{}{
		"query":   query,
		"storeId": *storeID,
	})
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}

	resp, err := http.Post(*addr+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		fmt.Printf("Search failed (%s): %s\n", resp.Status, strings.TrimSpace(string(data)))
		os.Exit(1)
	}

	var results []models.LocatedProduct
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		fmt.Printf("Failed to decode response: %v\n", err)
		os.Exit(1)
	}

	if len(results) == 0 {
		fmt.Println("No products found.")
		return
	}
	for i, p := range results {
		location := "location unknown"
		if p.Aisle != "" {
			location = fmt.Sprintf("aisle %s", p.Aisle)
			if p.Shelf != "" {
				location += fmt.Sprintf(", shelf %s", p.Shelf)
			}
		}
		fmt.Printf("%2d. %s (%s) - %s, %s, %d in stock\n",
			i+1, p.Name, p.Category, location, p.StockStatus, p.StockLevel)
	}
}

func runSeed() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: shelfscout seed [flags] <fixture.yaml>\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	fixturePath := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	f, err := fixture.Load(fixturePath)
	if err != nil {
		fmt.Printf("Failed to load fixture: %v\n", err)
		os.Exit(1)
	}

	st, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Printf("Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	created, err := f.Apply(ctx, st)
	if err != nil {
		fmt.Printf("Seeding failed after %d products: %v\n", created, err)
		os.Exit(1)
	}
	fmt.Printf("Seeded %d products into %s\n", created, cfg.Storage.DatabasePath)
}

func printUsage() {
	fmt.Println(`ShelfScout - in-store product locator

Usage:
  shelfscout server [-config path] [-debug]       start the HTTP server
  shelfscout search -store <id> [flags] <query>   search a running server
  shelfscout seed [-config path] <fixture.yaml>   load seed data into storage
  shelfscout version                              print version`)
}
