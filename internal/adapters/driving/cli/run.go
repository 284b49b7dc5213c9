package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/personarank/internal/adapters/driven/task"
	"github.com/custodia-labs/personarank/internal/core/domain"
	"github.com/custodia-labs/personarank/internal/core/ports/driving"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Rank document sections for a task",
	Long: `Run the full pipeline: read the task file, extract text sections from
every listed document, rank them against the persona and job to be done,
and write the JSON report.

Without --task the first *.json file in the input directory is used.
Documents are read from <input-dir>/pdfs unless paths.document_dir says
otherwise.

Examples:
  # Use input/ and output/ in the current directory
  personarank run

  # Explicit task and report locations
  personarank run --task trip.yaml --output out/report.json

  # Offline ranking without an embedding server
  personarank run --provider hash

  # Re-run whenever the task or documents change
  personarank run --watch`,
	RunE: runRun,
}

var (
	runTaskPath string
	runInputDir string
	runOutput   string
	runWorkers  int
	runProvider string
	runModel    string
	runWatch    bool
)

func init() {
	runCmd.Flags().StringVarP(&runTaskPath, "task", "t", "", "task file (JSON or YAML)")
	runCmd.Flags().StringVarP(&runInputDir, "input-dir", "i", "", "directory holding the task and documents")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "report file path")
	runCmd.Flags().IntVarP(&runWorkers, "workers", "w", 0, "parallel document readers (0 = settings)")
	runCmd.Flags().StringVar(&runProvider, "provider", "", "embedding provider (ollama, openai, hash)")
	runCmd.Flags().StringVar(&runModel, "model", "", "embedding model")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "re-run when the task or documents change")
	rootCmd.AddCommand(runCmd)
}

// runPlan holds the resolved locations for one invocation.
type runPlan struct {
	TaskPath    string
	DocumentDir string
	OutputPath  string
}

func runRun(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if err := overrideEmbedding(settings, runProvider, runModel); err != nil {
		return err
	}
	if runWorkers > 0 {
		settings.Pipeline.Workers = runWorkers
	}

	plan, err := planRun(settings, task.NewLoader())
	if err != nil {
		return err
	}

	pipeline, closeFn, err := buildPipeline(cmd.Context(), settings)
	if err != nil {
		return err
	}
	defer closeFn()

	once := func(ctx context.Context) error {
		return runOnce(ctx, cmd, pipeline, plan)
	}

	if !runWatch {
		return once(cmd.Context())
	}
	return watch(cmd.Context(), cmd, []string{plan.TaskPath, plan.DocumentDir}, plan.OutputPath, once)
}

// planRun resolves the task file, document directory and report path
// from flags and settings.
func planRun(settings *domain.Settings, loader *task.Loader) (runPlan, error) {
	inputDir := settings.Paths.InputDir
	if runInputDir != "" {
		inputDir = runInputDir
	}

	taskPath := runTaskPath
	if taskPath == "" {
		found, err := loader.Discover(inputDir)
		if err != nil {
			return runPlan{}, err
		}
		taskPath = found
	}

	output := runOutput
	if output == "" {
		output = defaultOutputPath(settings)
	}

	return runPlan{
		TaskPath:    taskPath,
		DocumentDir: documentDir(settings, inputDir),
		OutputPath:  output,
	}, nil
}

// runOnce loads the task and runs the pipeline a single time.
func runOnce(ctx context.Context, cmd *cobra.Command, pipeline driving.PipelineService, plan runPlan) error {
	t, err := task.NewLoader().Load(ctx, plan.TaskPath)
	if err != nil {
		return err
	}

	rep, err := pipeline.Run(ctx, driving.RunRequest{
		Task:        t,
		DocumentDir: plan.DocumentDir,
		OutputPath:  plan.OutputPath,
	})
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	printSummary(cmd.OutOrStdout(), rep, plan.OutputPath)
	printWarnings(cmd.ErrOrStderr(), rep.Warnings)
	return nil
}
