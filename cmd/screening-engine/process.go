// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/screening-engine/internal/cognitive"
	"github.com/pdiddy/screening-engine/internal/documents"
	"github.com/pdiddy/screening-engine/internal/engine"
	"github.com/pdiddy/screening-engine/internal/export"
	"github.com/pdiddy/screening-engine/internal/screening"
	"github.com/pdiddy/screening-engine/internal/semantics"
	"github.com/pdiddy/screening-engine/pkg/types"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "List and run analytical processes",
	Long: `Process exposes the engine's registered analytical processes. Use list
to see the catalog with each process's input schema, and run to execute
one against a journey.`,
}

// --- list subcommand ---

var processListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the catalog of registered processes",
	RunE:  runProcessList,
}

func runProcessList(cmd *cobra.Command, args []string) error {
	eng, store, err := buildEngine(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	entries := eng.Catalog()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No processes registered.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  [%s]\n", e.ID, e.Category)
		fmt.Printf("  %s — %s\n", e.Name, e.Description)
		for _, f := range e.Schema.Fields {
			req := "optional"
			if f.Required {
				req = "required"
			}
			fmt.Printf("  - %s (%s, %s)\n", f.Name, f.Kind, req)
		}
	}
	return nil
}

// --- run subcommand ---

var processRunCmd = &cobra.Command{
	Use:   "run [process-id]",
	Short: "Run one analytical process execution",
	Long: `Run executes a registered process against a journey. For systematic
screening, supply research questions (one per line via --questions or a
file via --questions-file) and the document IDs to screen.

On success the summary is written as JSON and the tabular export as CSV
into the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcessRun,
}

func runProcessRun(cmd *cobra.Command, args []string) error {
	processID := args[0]

	eng, store, err := buildEngine(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	journeyID, _ := cmd.Flags().GetString("journey")
	userID, _ := cmd.Flags().GetString("user")

	questions, err := questionsFromFlags(cmd)
	if err != nil {
		return err
	}
	idsFlag, _ := cmd.Flags().GetString("ids")

	params := map[string]any{}
	if questions != "" {
		params["research_questions"] = questions
	}
	if idsFlag != "" {
		params["document_ids"] = idsFlag
	}
	if v, _ := cmd.Flags().GetString("relevance-threshold"); v != "" {
		params["relevance_threshold"] = v
	}
	if v, _ := cmd.Flags().GetString("contribution-threshold"); v != "" {
		params["contribution_threshold"] = v
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result := eng.Run(ctx, processID, userID, journeyID, params, os.Stderr)
	if !result.Success {
		return fmt.Errorf("process failed: %s", result.ErrorMessage)
	}

	outDir, _ := cmd.Flags().GetString("out")
	if err := writeRunOutput(outDir, result); err != nil {
		return err
	}

	return printRunSummary(result)
}

// questionsFromFlags reads research questions from --questions or
// --questions-file (file wins when both are set).
func questionsFromFlags(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("questions-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading questions file: %w", err)
		}
		return string(data), nil
	}
	q, _ := cmd.Flags().GetString("questions")
	return q, nil
}

// writeRunOutput writes summary.json and, when present, the decoded
// tabular export into outDir.
func writeRunOutput(outDir string, result types.Result) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	summaryPath := filepath.Join(outDir, "summary.json")
	data, err := json.MarshalIndent(result.Data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := os.WriteFile(summaryPath, data, 0o644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", summaryPath)

	if b64, ok := result.Data["export_csv_base64"].(string); ok && b64 != "" {
		blob, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return fmt.Errorf("decoding export blob: %w", err)
		}
		exportPath := filepath.Join(outDir, "screening.csv")
		if err := os.WriteFile(exportPath, blob, 0o644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", exportPath)
	}
	return nil
}

// printRunSummary prints the headline counts of a completed run.
func printRunSummary(result types.Result) error {
	get := func(key string) any { return result.Data[key] }
	fmt.Printf("documents: %v total, %v processed, %v skipped\n",
		get("total_documents"), get("processed_documents"), get("skipped_documents"))
	fmt.Printf("must-read: %v (%.1f%%)\n", get("must_read_count"), asFloat(get("must_read_percentage")))
	if cancelled, ok := get("cancelled").(bool); ok && cancelled {
		fmt.Println("run was cancelled; results are partial")
	}
	return nil
}

func asFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}

// --- engine construction ---

// buildEngine opens the document store and wires the engine with its
// collaborators and registered processes. The caller closes the store.
func buildEngine(cmd *cobra.Command) (*engine.Engine, *documents.Store, error) {
	cfg := engineConfigFromFlags(cmd)

	store, err := documents.NewStore(cfg.Documents)
	if err != nil {
		return nil, nil, err
	}

	adapter := cognitive.NewClient(cfg.Cognitive)

	eng := engine.New(store, engine.Collaborators{
		Documents: store,
		Cognitive: adapter,
		Semantics: semantics.NewExtractor(adapter),
		Exporter:  export.NewCSVExporter(),
	})
	eng.Register(screening.New(cfg.Screening))

	return eng, store, nil
}

// engineConfigFromFlags resolves config from flags, the viper config
// file, and loaded secrets, in that order of precedence.
func engineConfigFromFlags(cmd *cobra.Command) types.EngineConfig {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = viper.GetString("documents.data_dir")
	}
	if dataDir == "" {
		dataDir = "data"
	}

	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("cognitive.model")
	}
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}

	embeddingModel := viper.GetString("cognitive.embedding_model")
	if embeddingModel == "" {
		embeddingModel = "voyage-3"
	}

	return types.EngineConfig{
		Cognitive: types.CognitiveConfig{
			AIConfig: types.AIConfig{
				Model:     model,
				APIKey:    secretDefault("anthropic-api-key", viper.GetString("cognitive.api_key")),
				MaxTokens: viper.GetInt("cognitive.max_tokens"),
			},
			HTTPConfig: types.HTTPConfig{
				Timeout:   2 * time.Minute,
				UserAgent: "screening-engine/" + strings.TrimPrefix(version, "v"),
			},
			EmbeddingModel:  embeddingModel,
			EmbeddingAPIKey: secretDefault("voyage-api-key", viper.GetString("cognitive.embedding_api_key")),
		},
		Screening: types.ScreeningConfig{
			RelevanceThreshold:    viper.GetFloat64("screening.relevance_threshold"),
			ContributionThreshold: viper.GetFloat64("screening.contribution_threshold"),
		},
		Documents: types.DocumentStoreConfig{
			DataDir: dataDir,
		},
	}
}

func init() {
	processCmd.PersistentFlags().String("data-dir", "", "base directory for engine data (default: data)")
	processCmd.PersistentFlags().String("model", "", "AI model identifier for generation calls")

	processListCmd.Flags().Bool("json", false, "output the catalog as JSON")

	processRunCmd.Flags().String("journey", "", "journey the run belongs to")
	processRunCmd.Flags().String("user", "local", "acting user ID")
	processRunCmd.Flags().String("questions", "", "research questions, one per line")
	processRunCmd.Flags().String("questions-file", "", "file with research questions, one per line")
	processRunCmd.Flags().String("ids", "", "comma-separated document IDs to screen")
	processRunCmd.Flags().String("relevance-threshold", "", "must-read relevance threshold (default 0.7)")
	processRunCmd.Flags().String("contribution-threshold", "", "must-read contribution threshold (default 0.7)")
	processRunCmd.Flags().Duration("timeout", 0, "overall run timeout (0 = none)")
	processRunCmd.Flags().String("out", "output", "directory for the summary and export files")
	processRunCmd.MarkFlagRequired("journey")

	processCmd.AddCommand(processListCmd)
	processCmd.AddCommand(processRunCmd)

	rootCmd.AddCommand(processCmd)
}
