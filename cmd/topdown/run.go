package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yiruzz/topdowndp/census"
	"github.com/yiruzz/topdowndp/checkpoint"
	"github.com/yiruzz/topdowndp/estimation"
	"github.com/yiruzz/topdowndp/geotree"
	"github.com/yiruzz/topdowndp/measurement"
	"github.com/yiruzz/topdowndp/microdata"
	"github.com/yiruzz/topdowndp/sampler"
	"github.com/yiruzz/topdowndp/validation"
)

// RunCmd starts a fresh pass: load config, read the census CSV, build the
// tree, measure, estimate, and write synthetic microdata.
type RunCmd struct {
	ConfigFile     string `arg:"" help:"YAML configuration file." type:"existingfile"`
	DataPath       string `help:"Override config data_path." name:"data-path"`
	OutputFile     string `help:"Override config output_file." name:"output-file"`
	CheckpointPath string `help:"Where to write a checkpoint on completion or interruption." default:"topdown.ckpt" name:"checkpoint"`
}

func (r *RunCmd) Run(ctx context.Context) error {
	cfg, err := loadConfig(r.ConfigFile, r.DataPath, r.OutputFile, r.CheckpointPath)
	if err != nil {
		return err
	}

	queryNames := make([]string, len(cfg.Queries))
	for i, q := range cfg.Queries {
		queryNames[i] = q.Name
	}

	records, err := census.ReadRecords(cfg.DataPath, cfg.GeoColumns, queryNames)
	if err != nil {
		return err
	}

	b, err := cfg.Basis()
	if err != nil {
		return err
	}

	tree, err := geotree.Build(records, cfg.GeoColumns, b, cfg.ProcessUntil)
	if err != nil {
		return err
	}

	s, err := sampler.NewSampler(nil)
	if err != nil {
		return err
	}

	mcfg, err := cfg.Measurement()
	if err != nil {
		return err
	}
	ecfg, err := estimationConfig(cfg)
	if err != nil {
		return err
	}

	return runPipeline(pipelineInput{
		ctx:            ctx,
		tree:           tree,
		sampler:        s,
		measurement:    mcfg,
		estimation:     ecfg,
		distanceMetric: validation.Metric(cfg.DistanceMetric),
		outputPath:     outputPath(cfg.OutputPath, cfg.OutputFile),
		checkpointPath: cfg.CheckpointPath,
	})
}

// pipelineInput bundles everything runPipeline needs, so Run, Resume and
// Extend can each assemble it from their own source (a fresh config load,
// or a checkpoint) without runPipeline caring which.
type pipelineInput struct {
	ctx            context.Context
	tree           *geotree.Tree
	sampler        *sampler.Sampler
	measurement    measurement.Config
	estimation     estimation.Config
	distanceMetric validation.Metric
	outputPath     string
	checkpointPath string
}

// runPipeline drives measurement, estimation and output once a tree and
// sampler are in hand. On any error it writes a checkpoint before returning
// so the caller never loses progress already made.
func runPipeline(in pipelineInput) error {
	checkpointOnError := func(err error) error {
		if err == nil {
			return nil
		}
		cp := checkpoint.Checkpoint{Tree: in.tree, Seed: in.sampler.Seed(), Consumed: in.sampler.Consumed(), Measurement: in.measurement, Estimation: in.estimation}
		if saveErr := checkpoint.Save(in.checkpointPath, cp); saveErr != nil {
			slog.Error("failed to write checkpoint after error", "error", saveErr)
		} else {
			slog.Info("checkpoint written", "path", in.checkpointPath)
		}
		return err
	}

	if err := measurement.Measure(in.tree, in.sampler, in.measurement); err != nil {
		return checkpointOnError(err)
	}
	slog.Info("measurement complete", "stats", in.tree.Stats())

	if err := estimation.Estimate(in.ctx, in.tree, in.estimation); err != nil {
		return checkpointOnError(err)
	}
	slog.Info("estimation complete")

	if in.distanceMetric != "" && in.distanceMetric != validation.None {
		report, err := validation.Evaluate(in.tree, in.distanceMetric)
		if err != nil {
			slog.Warn("quality validation failed", "error", err)
		} else {
			logQualityReport(report)
		}
	}

	table, err := microdata.Construct(in.tree, in.tree.Basis())
	if err != nil {
		return checkpointOnError(err)
	}

	if err := census.WriteTable(in.outputPath, table); err != nil {
		return checkpointOnError(err)
	}
	slog.Info("synthetic microdata written", "path", in.outputPath, "rows", len(table.Rows))

	return checkpoint.Save(in.checkpointPath, checkpoint.Checkpoint{
		Tree:        in.tree,
		Seed:        in.sampler.Seed(),
		Consumed:    in.sampler.Consumed(),
		Measurement: in.measurement,
		Estimation:  in.estimation,
	})
}

func outputPath(dir, file string) string {
	if dir == "" {
		return file
	}
	return fmt.Sprintf("%s/%s", dir, file)
}

func logQualityReport(report validation.Report) {
	for _, n := range report.Nodes {
		attrs := []any{"path", n.Path, "level", n.Level, "metric", report.Metric}
		if n.HasNoisy {
			attrs = append(attrs, "noisy_distance", n.NoisyDistance)
		}
		if n.HasEst {
			attrs = append(attrs, "est_distance", n.EstDistance)
		}
		slog.Info("quality validation", attrs...)
	}
}
