package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
	"github.com/kubev2v/rvtools-assessor/internal/overrides"
	"github.com/kubev2v/rvtools-assessor/internal/service"
	"github.com/kubev2v/rvtools-assessor/pkg/log"
)

var (
	analyzeWaveMode  string
	analyzeOverrides string
	analyzeOutput    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <rvtools.xlsx>",
	Short: "Assess an RVTools export and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.InitLog(log.Level("warn"))
		defer func() { _ = logger.Sync() }()
		undo := zap.ReplaceGlobals(logger)
		defer undo()

		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		assessmentSrv := service.NewAssessmentService(api.WaveModeComplexity)
		mode, err := assessmentSrv.ParseWaveMode(analyzeWaveMode)
		if err != nil {
			return err
		}

		result, err := assessmentSrv.Assess(cmd.Context(), filepath.Base(args[0]), content, nil, mode)
		if err != nil {
			return err
		}

		if analyzeOverrides != "" {
			result, err = applyOverrideFile(cmd.Context(), assessmentSrv, result, analyzeOverrides, mode)
			if err != nil {
				return err
			}
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}

		if analyzeOutput == "" {
			fmt.Println(string(out))
			return nil
		}
		return os.WriteFile(analyzeOutput, out, 0o644)
	},
}

func applyOverrideFile(ctx context.Context, srv *service.AssessmentService, current *api.Assessment, path string, mode api.WaveMode) (*api.Assessment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	set, importResult, err := overrides.Import(data, current.Fingerprint)
	if err != nil {
		return nil, err
	}
	if importResult.EnvironmentMismatch {
		fmt.Fprintln(os.Stderr, "warning: overrides were recorded against a different environment")
	}

	return srv.Reassess(current.Inventory, set, mode), nil
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeWaveMode, "waves-mode", "", "wave planning mode: complexity or network")
	analyzeCmd.Flags().StringVar(&analyzeOverrides, "overrides", "", "path to an exported overrides envelope to apply")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "write the assessment to a file instead of stdout")
}
