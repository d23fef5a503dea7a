package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/jccirs09/picklist/internal/common"
	"github.com/jccirs09/picklist/internal/export"
	"github.com/jccirs09/picklist/internal/extract"
	"github.com/jccirs09/picklist/internal/picklist"
	"github.com/jccirs09/picklist/internal/pipeline"
	repo "github.com/jccirs09/picklist/internal/repository"
)

func main() {
	xlsxPath := flag.String("xlsx", "", "write the parsed record as an XLSX workbook to this path")
	save := flag.Bool("save", false, "upsert the parsed record into Postgres (requires DB_URL)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "picklist [-save] [-xlsx out.xlsx] <picking-list.pdf>")
		os.Exit(2)
	}
	pdfPath := flag.Arg(0)

	pdfBytes, err := os.ReadFile(pdfPath)
	if err != nil {
		logger.Error("read pdf", "path", pdfPath, "error", err)
		os.Exit(1)
	}

	cfg := common.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	chain := extract.NewChain(logger,
		extract.NewEmbeddedStrategy(),
		extract.NewPdftotextStrategy(cfg.Parsing.PopplerPath, cfg.Parsing.PdftotextTimeout),
		extract.NewOCRStrategy(cfg.Parsing.TessdataDir, cfg.Parsing.PopplerPath, cfg.Parsing.OCRDPI, cfg.Parsing.OCRPSM),
	)
	proc := pipeline.NewProcessor(logger, chain, picklist.NewParser(logger))

	start := time.Now()
	pl, err := proc.Process(ctx, pdfBytes)
	if err != nil {
		logger.Error("processing failed",
			"path", pdfPath, "error", err, "duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}
	logger.Info("processing OK",
		"order_number", pl.OrderNumber,
		"items", len(pl.Items),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if *save {
		pool, err := repo.Open(ctx, cfg.Database, logger)
		if err != nil {
			logger.Error("open db", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		id, err := repo.NewPickingListRepository(pool, logger).Upsert(ctx, pl)
		if err != nil {
			logger.Error("upsert picking list", "order_number", pl.OrderNumber, "error", err)
			os.Exit(1)
		}
		logger.Info("saved", "id", id, "order_number", pl.OrderNumber)
	}

	if *xlsxPath != "" {
		wb, err := export.NewService(logger).WorkbookBytes(pl)
		if err != nil {
			logger.Error("build workbook", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxPath, wb, 0o644); err != nil {
			logger.Error("write workbook", "path", *xlsxPath, "error", err)
			os.Exit(1)
		}
		logger.Info("workbook written", "path", *xlsxPath, "bytes", len(wb))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pl); err != nil {
		logger.Error("encode record", "error", err)
		os.Exit(1)
	}
}
