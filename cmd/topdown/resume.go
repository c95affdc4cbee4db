package main

import (
	"context"

	"github.com/yiruzz/topdowndp/checkpoint"
	"github.com/yiruzz/topdowndp/validation"
)

// ResumeCmd continues a previously checkpointed run: loads the saved tree,
// sampler seed and configuration, and re-enters the same
// measurement/estimation pipeline Run uses. Nodes whose v_noisy or v_est
// were already written are left untouched by Measure/Estimate (both only
// fill fields they are asked to visit that are still nil), so resuming a
// checkpoint taken after a clean completion is a no-op, and resuming one
// taken after an interruption picks up exactly where estimation stopped.
type ResumeCmd struct {
	CheckpointFile string `arg:"" help:"Checkpoint file written by a previous run/resume/extend." type:"existingfile"`
	OutputFile     string `help:"Where to write synthetic microdata." default:"synthetic.csv" name:"output-file"`
	DistanceMetric string `help:"Quality validation distance metric." enum:"manhattan,euclidean,cosine,none" default:"none" name:"distance-metric"`
}

func (r *ResumeCmd) Run(ctx context.Context) error {
	cp, err := checkpoint.Load(r.CheckpointFile)
	if err != nil {
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
		distanceMetric: validation.Metric(r.DistanceMetric),
		outputPath:     r.OutputFile,
		checkpointPath: r.CheckpointFile,
	})
}
