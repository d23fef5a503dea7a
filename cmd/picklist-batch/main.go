package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jccirs09/picklist/internal/batch"
	"github.com/jccirs09/picklist/internal/common"
	"github.com/jccirs09/picklist/internal/export"
	"github.com/jccirs09/picklist/internal/extract"
	"github.com/jccirs09/picklist/internal/picklist"
	"github.com/jccirs09/picklist/internal/pipeline"
	repo "github.com/jccirs09/picklist/internal/repository"
)

func main() {
	var (
		dir     = flag.String("dir", "", "directory to scan for picking-list PDFs (required)")
		out     = flag.String("out", "", "combined XLSX output path (defaults to <dir>/../picking-lists.xlsx)")
		save    = flag.Bool("save", false, "upsert parsed records into Postgres (requires DB_URL)")
		workers = flag.Int("workers", 4, "number of concurrent workers")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if *dir == "" {
		logger.Error("usage", "cmd", "picklist-batch -dir <pdf-dir> [-out report.xlsx] [-save] [-workers n]")
		os.Exit(2)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "picking-lists.xlsx")
	}

	cfg := common.LoadConfig()
	ctx := context.Background()

	chain := extract.NewChain(logger,
		extract.NewEmbeddedStrategy(),
		extract.NewPdftotextStrategy(cfg.Parsing.PopplerPath, cfg.Parsing.PdftotextTimeout),
		extract.NewOCRStrategy(cfg.Parsing.TessdataDir, cfg.Parsing.PopplerPath, cfg.Parsing.OCRDPI, cfg.Parsing.OCRPSM),
	)
	proc := pipeline.NewProcessor(logger, chain, picklist.NewParser(logger))

	paths, stats, err := batch.ScanDirectory(*dir, true)
	if err != nil {
		logger.Error("scan directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	logger.Info("directory scanned",
		"dir", *dir,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"failed", stats.Failed,
	)
	if len(paths) == 0 {
		logger.Error("no PDF files found", "dir", *dir)
		os.Exit(1)
	}

	start := time.Now()
	queue := batch.NewQueue(proc, logger, batch.WithWorkers(*workers))
	for _, p := range paths {
		_ = queue.Enqueue(ctx, batch.Job{Path: p, SubmittedAt: time.Now()})
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	queue.Shutdown(shutdownCtx)
	cancel()

	var records []*picklist.PickingList
	var failed, deduplicated int
	for _, r := range queue.Results() {
		switch {
		case r.Deduplicated:
			deduplicated++
		case r.Err != "":
			failed++
		case r.Record != nil:
			records = append(records, r.Record)
		}
	}
	logger.Info("batch finished",
		"parsed", len(records),
		"failed", failed,
		"deduplicated", deduplicated,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if *save && len(records) > 0 {
		pool, err := repo.Open(ctx, cfg.Database, logger)
		if err != nil {
			logger.Error("open db", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		listRepo := repo.NewPickingListRepository(pool, logger)
		for _, pl := range records {
			if _, err := listRepo.Upsert(ctx, pl); err != nil {
				logger.Error("upsert picking list", "order_number", pl.OrderNumber, "error", err)
				failed++
			}
		}
	}

	wb, err := export.NewService(logger).BatchWorkbookBytes(records)
	if err != nil {
		logger.Error("build workbook", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, wb, 0o644); err != nil {
		logger.Error("write workbook", "path", *out, "error", err)
		os.Exit(1)
	}
	logger.Info("workbook written", "path", *out, "records", len(records))

	if failed > 0 {
		os.Exit(1)
	}
}
