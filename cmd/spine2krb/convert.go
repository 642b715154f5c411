package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/waozixyz/spine2krb/internal/config"
	"github.com/waozixyz/spine2krb/internal/encoder"
	"github.com/waozixyz/spine2krb/internal/logging"
)

func newConvertCommand(configFlag, logLevelFlag, logFormatFlag *string) *cobra.Command {
	var atlasFlag string

	cmd := &cobra.Command{
		Use:   "convert <input.json> <output.skel>",
		Short: "Convert a Spine 3.8 JSON skeleton to the compact binary format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args[0], args[1], atlasFlag, *configFlag, *logLevelFlag, *logFormatFlag)
		},
	}

	cmd.Flags().StringVar(&atlasFlag, "atlas", "", "Path to the Spine atlas manifest used for region filtering")

	return cmd
}

func runConvert(inputPath, outputPath, atlasFlag, configFlag, logLevelFlag, logFormatFlag string) error {
	cfg, _, _, err := config.Load(configFlag)
	if err != nil {
		return fmt.Errorf("spine2krb: %w", err)
	}

	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	if logFormatFlag != "" {
		cfg.LogFormat = logFormatFlag
	}
	if atlasFlag == "" {
		atlasFlag = cfg.AtlasPath
	}
	if cfg.OutputDir != "" && filepath.Base(outputPath) == outputPath {
		outputPath = filepath.Join(cfg.OutputDir, outputPath)
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return fmt.Errorf("spine2krb: %w", err)
	}
	defer logger.Sync()

	runID := uuid.NewString()
	logger = logger.With(zap.String(logging.FieldRunID, runID))

	jsonBytes, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("spine2krb: read input: %w", err)
	}

	var atlasBytes []byte
	if atlasFlag != "" {
		atlasBytes, err = os.ReadFile(atlasFlag)
		if err != nil {
			return fmt.Errorf("spine2krb: read atlas: %w", err)
		}
	}

	lock := flock.New(outputPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("spine2krb: acquire output lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("spine2krb: %s is already being written by another invocation", outputPath)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(outputPath + ".lock")
	}()

	enc := encoder.New(encoder.Options{Logger: logger})
	result, err := enc.EncodeWithResult(jsonBytes, atlasBytes)
	if err != nil {
		return fmt.Errorf("spine2krb: convert: %w", err)
	}

	if err := os.WriteFile(outputPath, result.Bytes, 0o644); err != nil {
		return fmt.Errorf("spine2krb: write output: %w", err)
	}

	logger.Info("conversion complete",
		zap.String("output", outputPath),
		zap.Int(logging.FieldBytes, len(result.Bytes)),
	)

	printSummary(result, outputPath)
	return nil
}

func printSummary(result encoder.Result, outputPath string) {
	rows := [][]string{
		{"bones", strconv.Itoa(result.BoneCount)},
		{"slots", strconv.Itoa(result.SlotCount)},
		{"skins", strconv.Itoa(result.SkinCount)},
		{"animations", strconv.Itoa(result.AnimationCount)},
		{"bytes written", strconv.Itoa(len(result.Bytes))},
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		for _, row := range rows {
			fmt.Printf("%s: %s\n", row[0], row[1])
		}
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"metric", "value"})
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	fmt.Println(outputPath)
	fmt.Println(tw.Render())
}
