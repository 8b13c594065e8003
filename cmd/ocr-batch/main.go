package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"ocr-batch-pipeline/internal/model"
	"ocr-batch-pipeline/internal/pipeline"
	"ocr-batch-pipeline/internal/recognize"
	"ocr-batch-pipeline/internal/store"
	"ocr-batch-pipeline/pkg/utils"
)

func main() {
	specPath := flag.String("spec", "", "path to a JSON run spec")
	inputRoot := flag.String("input", "", "input root directory (overrides spec)")
	outputRoot := flag.String("output", "", "output root directory (overrides spec)")
	endpoint := flag.String("endpoint", "", "recognition endpoint (overrides spec)")
	limit := flag.Int("limit", 0, "process only the first N items (smoke mode)")
	concurrency := flag.Int("concurrency", 0, "max in-flight recognition calls (overrides spec)")
	mergeOnly := flag.Bool("merge-only", false, "skip recognition, only merge existing artifacts")
	dbPath := flag.String("db", "", "optional sqlite database for run tracking")
	flag.Parse()

	spec := model.DefaultRunSpec()
	if *specPath != "" {
		data, err := os.ReadFile(*specPath)
		if err != nil {
			fmt.Printf("❌ Could not read spec file: %v\n", err)
			os.Exit(1)
		}
		spec, err = model.ParseRunSpec(data)
		if err != nil {
			fmt.Printf("❌ Invalid spec file: %v\n", err)
			os.Exit(1)
		}
	}
	if *inputRoot != "" {
		spec.InputRoot = *inputRoot
	}
	if *outputRoot != "" {
		spec.OutputRoot = *outputRoot
	}
	if *endpoint != "" {
		spec.Recognizer.Endpoint = *endpoint
	}
	if *limit > 0 {
		spec.Limit = *limit
	}
	if *concurrency > 0 {
		spec.MaxConcurrency = *concurrency
	}

	if spec.OutputRoot == "" {
		fmt.Println("❌ An output root is required (-output or spec outputRoot)")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()

	if *mergeOnly {
		merger := pipeline.NewMerger(spec.Merge, spec.OutputEncoding)
		merged, err := merger.MergeTree(spec.OutputRoot)
		if err != nil {
			fmt.Printf("❌ Merge failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Merged %d directories in %s\n", merged, utils.FormatClock(time.Since(start)))
		return
	}

	if spec.InputRoot == "" {
		fmt.Println("❌ An input root is required (-input or spec inputRoot)")
		os.Exit(1)
	}
	if spec.Recognizer.Endpoint == "" {
		fmt.Println("❌ A recognition endpoint is required (-endpoint or spec recognizer.endpoint)")
		os.Exit(1)
	}

	if *dbPath != "" {
		if err := store.InitDB(*dbPath); err != nil {
			fmt.Printf("❌ Could not open run database: %v\n", err)
			os.Exit(1)
		}
	}

	runID := uuid.New().String()
	if err := store.SaveRun(runID, spec); err != nil {
		fmt.Printf("⚠️ Could not record run: %v\n", err)
	}

	recognizer := recognize.NewHTTPRecognizer(
		spec.Recognizer.Endpoint,
		spec.Recognizer.APIKey,
		spec.Recognizer.Language,
		utils.ParseDuration(spec.Recognizer.Timeout, 90*time.Second),
	)

	orch := pipeline.NewOrchestrator(spec, recognizer)
	summary, err := orch.Run(ctx, runID)
	if err != nil {
		fmt.Printf("❌ Run failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Done in %s\n", utils.FormatClock(summary.Duration))
	if summary.Failed > 0 {
		os.Exit(2)
	}
}
