package main

import (
	"context"

	"github.com/yiruzz/topdowndp/checkpoint"
	"github.com/yiruzz/topdowndp/validation"
)

// ExtendCmd deepens a checkpointed tree to a new level and re-runs
// measurement/estimation, which (per their resume guarantees) only touch
// the newly added nodes.
type ExtendCmd struct {
	CheckpointFile string `arg:"" help:"Checkpoint file to extend." type:"existingfile"`
	NewDepth       int    `arg:"" help:"New tree depth, must exceed the checkpoint's current depth."`
	OutputFile     string `help:"Where to write synthetic microdata." default:"synthetic.csv" name:"output-file"`
	DistanceMetric string `help:"Quality validation distance metric." enum:"manhattan,euclidean,cosine,none" default:"none" name:"distance-metric"`
}

func (e *ExtendCmd) Run(ctx context.Context) error {
	cp, err := checkpoint.Load(e.CheckpointFile)
	if err != nil {
		return err
	}
	if err := cp.Tree.Extend(e.NewDepth); err != nil {
		return err
	}

	s, err := cp.Sampler()
	if err != nil {
		return err
	}

	return runPipeline(pipelineInput{
		ctx:            ctx,
		tree:           cp.Tree,
		sampler:        s,
		measurement:    cp.Measurement,
		estimation:     cp.Estimation,
		distanceMetric: validation.Metric(e.DistanceMetric),
		outputPath:     e.OutputFile,
		checkpointPath: e.CheckpointFile,
	})
}
