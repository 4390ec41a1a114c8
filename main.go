package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"concatplan/annotations"
	"concatplan/catalog"
	"concatplan/config"
	"concatplan/conversations"
	"concatplan/ffprobe"
	"concatplan/models"
	"concatplan/planner"
	"concatplan/sampler"
	"concatplan/script"
	"concatplan/stats"
	"concatplan/transitions"
)

func main() {
	// Step 1: Load environment (.env carries COHERE_API_KEY, if present)
	_ = godotenv.Load()

	// Step 2: Load configuration (CLI flags > config file > defaults)
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Step 3: Handle dry-run mode
	if cfg.DryRun {
		fmt.Println("═══════════════════════════════════════════════════════════")
		fmt.Println("                      DRY RUN MODE")
		fmt.Println("═══════════════════════════════════════════════════════════")
		cfg.PrintConfig()
		fmt.Println("\n✓ Configuration is valid. No planning will be performed.")
		return
	}

	// Step 4: Set up context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Step 5: Register signal handlers (Ctrl+C, SIGTERM)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\n⚠️  Interrupt received, cleaning up...")
		cancel()
	}()

	// Step 6: Run the planning pipeline
	if err := runPipeline(ctx, cfg); err != nil {
		if ctx.Err() == context.Canceled {
			fmt.Println("\n⚠️  Planning cancelled by user")
			os.Exit(130) // Standard exit code for SIGINT
		}
		fmt.Fprintf(os.Stderr, "\n❌ Pipeline error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n✅ Planning completed successfully!")
}

// runPipeline executes the complete planning workflow
func runPipeline(ctx context.Context, cfg *config.Config) error {
	startTime := time.Now()

	fmt.Println("╔════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                 CONCATPLAN - PIPELINE START                    ║")
	fmt.Println("╚════════════════════════════════════════════════════════════════╝")
	if cfg.VideoMetadata != "" {
		fmt.Printf("Metadata: %s\n", cfg.VideoMetadata)
	} else {
		fmt.Printf("Input:    %s\n", cfg.InputDir)
	}
	fmt.Printf("Output:   %s\n", cfg.OutputDir)
	fmt.Println()

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// PHASE 1: Source Catalog
	fmt.Println("📊 Phase 1: Source Catalog")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	cat, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("catalog loading failed: %w", err)
	}

	fmt.Printf("  Videos:         %d\n", cat.Len())
	if cat.Skipped() > 0 {
		fmt.Printf("  Skipped:        %d invalid entries\n", cat.Skipped())
	}
	fmt.Printf("  Total duration: %.1fs\n", cat.TotalDuration())
	fmt.Println()

	// PHASE 2: Frame Sampling (optional)
	if cfg.Sampling.Enabled {
		fmt.Println("🖼️  Phase 2: Frame Sampling")
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

		if err := sampleFrames(ctx, cfg, cat); err != nil {
			return fmt.Errorf("frame sampling failed: %w", err)
		}
		fmt.Println()
	}

	// PHASE 3: Concatenation Planning
	fmt.Println("🧮 Phase 3: Concatenation Planning")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	opts := cfg.PlannerOptions()
	plnr, err := planner.New(cat.Videos(), opts)
	if err != nil {
		return fmt.Errorf("planner setup failed: %w", err)
	}

	records, warnings, err := plnr.Plan()
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	fmt.Printf("  Requested:  %d\n", opts.TotalConcats)
	fmt.Printf("  Planned:    %d\n", len(records))
	if len(warnings) > 0 {
		fmt.Printf("  Abandoned:  %d\n", len(warnings))
		if cfg.Verbose {
			for _, w := range warnings {
				fmt.Printf("    ⚠️  %s\n", w)
			}
		}
	}

	if cfg.StrictMode && len(records) < opts.TotalConcats {
		return fmt.Errorf("strict mode: planned %d of %d requested concatenations",
			len(records), opts.TotalConcats)
	}

	planPath := filepath.Join(cfg.OutputDir, "concat_metadata.json")
	if err := savePlan(records, planPath); err != nil {
		return err
	}
	fmt.Printf("  ✓ Plan written: %s\n", planPath)
	fmt.Println()

	// PHASE 4: Annotations (optional)
	if cfg.Transitions.Enabled {
		fmt.Println("📝 Phase 4: Annotations")
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

		if err := buildAnnotations(ctx, cfg, records); err != nil {
			return fmt.Errorf("annotation generation failed: %w", err)
		}
		fmt.Println()
	}

	// PHASE 5: Concat Script Generation
	fmt.Println("🔗 Phase 5: Concat Script Generation")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	listsDir := filepath.Join(cfg.OutputDir, "concat_lists")
	videosDir := filepath.Join(cfg.OutputDir, "videos")

	gen := script.NewGenerator(listsDir, videosDir, cfg.StrictMode)
	result, err := gen.Generate(records, cat)
	if err != nil {
		return fmt.Errorf("script generation failed: %w", err)
	}

	fmt.Printf("  List files: %d\n", len(result.ListFiles))
	for _, skipped := range result.Skipped {
		fmt.Printf("  ⚠️  Skipped %s\n", skipped)
	}
	fmt.Printf("  ✓ Script written: %s\n", result.ScriptPath)
	fmt.Println()

	// PHASE 6: Corpus Report
	elapsed := time.Since(startTime)
	report := stats.Analyze(records)

	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("                     ✅ CORPUS REPORT")
	fmt.Println("═══════════════════════════════════════════════════════════")
	report.Print(os.Stdout)
	fmt.Printf("\nTotal time: %.2fs\n", elapsed.Seconds())
	fmt.Println("═══════════════════════════════════════════════════════════")

	return nil
}

// loadCatalog builds the source catalog from pre-probed metadata, or scans
// the input directory with ffprobe and persists the result.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.VideoMetadata != "" {
		fmt.Printf("  Loading metadata %s...\n", cfg.VideoMetadata)
		return catalog.Load(cfg.VideoMetadata)
	}

	fmt.Printf("  Scanning %s with ffprobe...\n", cfg.InputDir)

	cat, failures, err := catalog.ScanDirectory(cfg.InputDir, ffprobe.NewClient())
	if err != nil {
		return nil, err
	}

	for _, failure := range failures {
		fmt.Printf("  ⚠️  %s: %s\n", failure.Path, failure.Reason)
	}

	// Persist probed durations so later runs can skip the scan.
	metadataPath := filepath.Join(cfg.OutputDir, "video_metadata.json")
	if err := cat.Save(metadataPath); err != nil {
		return nil, err
	}
	fmt.Printf("  ✓ Metadata written: %s\n", metadataPath)

	return cat, nil
}

// sampleFrames extracts stills from every catalog video in parallel.
func sampleFrames(ctx context.Context, cfg *config.Config, cat *catalog.Catalog) error {
	framesDir := cfg.Sampling.FramesDir
	if framesDir == "" {
		framesDir = filepath.Join(cfg.OutputDir, "frames")
	}

	s := sampler.NewSampler(framesDir, cfg.Sampling.Interval, cfg.Workers)
	if cfg.Sampling.MinDuration > 0 {
		s.SetMinDuration(cfg.Sampling.MinDuration)
	}

	summary, err := s.SampleAll(ctx, cat.Videos(), func(completed, total int) {
		fmt.Printf("\r  video=%d/%d", completed, total)
	})
	if err != nil {
		return err
	}
	fmt.Println()

	fmt.Printf("  ✓ Sampled %d videos into %s\n", len(summary.Sampled), framesDir)
	if len(summary.Failed) > 0 {
		fmt.Printf("  ⚠️  %d videos failed or were skipped\n", len(summary.Failed))
		if cfg.Verbose {
			for _, failure := range summary.Failed {
				fmt.Printf("    %s: %s\n", failure.VideoID, failure.Reason)
			}
		}
	}

	return nil
}

// buildAnnotations turns the plan into per-segment annotations, bridging
// interior segments with generated transition text.
func buildAnnotations(ctx context.Context, cfg *config.Config, records []*models.ConcatRecord) error {
	fmt.Printf("  Loading descriptions %s...\n", cfg.Transitions.Descriptions)
	descriptions, err := annotations.LoadDescriptions(cfg.Transitions.Descriptions)
	if err != nil {
		return err
	}
	fmt.Printf("  Descriptions: %d clips\n", len(descriptions))

	gen, err := transitions.NewCohereGenerator(cfg.Transitions.Model)
	if err != nil {
		return err
	}
	fmt.Printf("  Model:        %s\n", gen.ModelName())

	builder := annotations.NewBuilder(descriptions).
		SetGenerator(gen).
		SetWorkers(cfg.Workers)

	anns, err := builder.Build(ctx, records)
	if err != nil {
		return err
	}

	kept, dropped := annotations.Clean(anns)
	if len(dropped) > 0 {
		fmt.Printf("  ⚠️  Dropped %d annotations with blank summaries\n", len(dropped))
	}

	annotationsPath := filepath.Join(cfg.OutputDir, "annotations.json")
	if err := annotations.Save(kept, annotationsPath); err != nil {
		return err
	}
	fmt.Printf("  ✓ Annotations written: %s (%d videos)\n", annotationsPath, len(kept))

	convs := conversations.Build(records, kept)
	conversationsPath := filepath.Join(cfg.OutputDir, "train_conversations.json")
	if err := conversations.Save(convs, conversationsPath); err != nil {
		return err
	}
	fmt.Printf("  ✓ Conversations written: %s (%d samples)\n", conversationsPath, len(convs))

	return nil
}

// savePlan writes the planned records as indented JSON.
func savePlan(records []*models.ConcatRecord, path string) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan %s: %w", path, err)
	}

	return nil
}
