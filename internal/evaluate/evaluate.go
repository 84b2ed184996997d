// Package evaluate runs the quality evaluation pipeline: plan the sampled
// frame indices, decode each pair from both sources, normalize, score and
// aggregate.
package evaluate

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/vqcheck/vqcheck/internal/config"
	"github.com/vqcheck/vqcheck/internal/errors"
	"github.com/vqcheck/vqcheck/internal/frame"
	"github.com/vqcheck/vqcheck/internal/logging"
	"github.com/vqcheck/vqcheck/internal/metrics"
	"github.com/vqcheck/vqcheck/internal/reporter"
	"github.com/vqcheck/vqcheck/internal/sampler"
	"github.com/vqcheck/vqcheck/internal/source"
	"github.com/vqcheck/vqcheck/internal/util"
)

// Result is the outcome of one reference/candidate evaluation.
type Result struct {
	// MeanPSNR is the mean PSNR in dB across compared pairs. +Inf when every
	// compared pair was pixel-identical.
	MeanPSNR float64

	// MeanSSIM is the mean structural similarity across compared pairs.
	MeanSSIM float64

	// ComparedPairs is the number of pairs where both decodes succeeded.
	// Callers should treat results from few pairs with less confidence.
	ComparedPairs int

	// PlannedPairs is the sample plan length before any decode failures.
	PlannedPairs int
}

// PSNRBand returns the qualitative label for the mean PSNR.
func (r *Result) PSNRBand() string { return metrics.PSNRBand(r.MeanPSNR) }

// SSIMBand returns the qualitative label for the mean SSIM.
func (r *Result) SSIMBand() string { return metrics.SSIMBand(r.MeanSSIM) }

// Evaluator compares a candidate video against a reference.
type Evaluator struct {
	cfg *config.Config
	rep reporter.Reporter
}

// New creates an Evaluator. A nil reporter discards progress updates.
func New(cfg *config.Config, rep reporter.Reporter) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	return &Evaluator{cfg: cfg, rep: rep}, nil
}

// workers resolves the configured worker count for a plan.
func (e *Evaluator) workers(planned int) int {
	n := e.cfg.Workers
	if n == 0 {
		n = util.PhysicalCores()
	}
	if n > planned {
		n = planned
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Evaluate compares cand against ref over a deterministic sample of frame
// pairs and returns the aggregated scores.
//
// An empty source is fatal. A decode failure partway through truncates the
// sample set: the evaluation finishes with the pairs that did decode, and
// the result reports both planned and compared counts. Zero compared pairs
// out of a non-empty plan is fatal.
func (e *Evaluator) Evaluate(ctx context.Context, ref, cand source.Source) (*Result, error) {
	refCount := ref.FrameCount()
	candCount := cand.FrameCount()

	if refCount == 0 {
		return nil, errors.NewEmptySourceError(ref.Path())
	}
	if candCount == 0 {
		return nil, errors.NewEmptySourceError(cand.Path())
	}

	plan := sampler.Build(refCount, candCount, e.cfg.MaxSamples)
	if len(plan) == 0 {
		// Unreachable with positive counts, but the contract is explicit.
		return nil, errors.NewEmptySourceError(ref.Path())
	}

	workers := e.workers(len(plan))
	logging.Debug("evaluation planned",
		"reference", ref.Path(),
		"candidate", cand.Path(),
		"planned", len(plan),
		"stride", plan.Stride(),
		"workers", workers)

	e.rep.EvaluationStarted(reporter.EvaluationStart{
		ReferencePath:  ref.Path(),
		CandidatePath:  cand.Path(),
		PlannedSamples: len(plan),
		Workers:        workers,
	})

	var acc accumulator
	var err error
	if workers <= 1 {
		err = e.runSequential(ctx, ref, cand, plan, &acc)
	} else {
		err = e.runParallel(ctx, ref, cand, plan, workers, &acc)
	}
	if err != nil {
		return nil, err
	}

	if acc.count == 0 {
		return nil, errors.NewNoComparablePairsError(len(plan))
	}
	if acc.count < len(plan) {
		e.rep.Warning(fmt.Sprintf("only %d of %d planned frame pairs could be decoded", acc.count, len(plan)))
	}

	return &Result{
		MeanPSNR:      acc.psnrSum / float64(acc.count),
		MeanSSIM:      acc.ssimSum / float64(acc.count),
		ComparedPairs: acc.count,
		PlannedPairs:  len(plan),
	}, nil
}

// accumulator holds the running metric sums. Sums are commutative, so
// parallel workers can merge partial accumulators in any order.
type accumulator struct {
	psnrSum float64
	ssimSum float64
	count   int
}

func (a *accumulator) add(psnr, ssim float64) {
	a.psnrSum += psnr
	a.ssimSum += ssim
	a.count++
}

func (a *accumulator) merge(b accumulator) {
	a.psnrSum += b.psnrSum
	a.ssimSum += b.ssimSum
	a.count += b.count
}

// scorePair decodes, normalizes and scores one frame index from both sources.
// A source.ErrFrameUnavailable from either side surfaces unchanged so callers
// can stop sampling without failing the evaluation.
func (e *Evaluator) scorePair(ctx context.Context, ref, cand source.Source, index int) (psnr, ssim float64, err error) {
	refFrame, err := ref.DecodeFrame(ctx, index)
	if err != nil {
		return 0, 0, fmt.Errorf("reference frame %d: %w", index, err)
	}
	candFrame, err := cand.DecodeFrame(ctx, index)
	if err != nil {
		return 0, 0, fmt.Errorf("candidate frame %d: %w", index, err)
	}

	normRef, normCand := frame.Normalize(refFrame, candFrame, e.cfg.TargetWidth, e.cfg.TargetHeight)

	psnr, err = metrics.PSNR(normRef, normCand)
	if err != nil {
		return 0, 0, fmt.Errorf("PSNR at frame %d: %w", index, err)
	}
	ssim, err = metrics.SSIM(normRef, normCand, e.cfg.SSIMWindow)
	if err != nil {
		return 0, 0, fmt.Errorf("SSIM at frame %d: %w", index, err)
	}
	return psnr, ssim, nil
}

// runSequential evaluates the plan in order on the calling goroutine,
// stopping at the first undecodable pair.
func (e *Evaluator) runSequential(ctx context.Context, ref, cand source.Source, plan sampler.Plan, acc *accumulator) error {
	for _, index := range plan {
		if ctx.Err() != nil {
			return errors.NewCancelledError()
		}

		psnr, ssim, err := e.scorePair(ctx, ref, cand, index)
		if err != nil {
			if stderrors.Is(err, source.ErrFrameUnavailable) {
				logging.Debug("sampling stopped early", "index", index, "reason", err)
				break
			}
			if errors.IsCancelled(err) {
				return err
			}
			return errors.NewOperationFailedError("frame comparison failed", err)
		}

		acc.add(psnr, ssim)
		e.rep.SampleCompared(acc.count, len(plan))
	}
	return nil
}

// runParallel distributes plan entries over a bounded worker pool. Each
// worker keeps a private partial accumulator; partials merge under one lock
// when the worker exits. A pair whose decode fails is skipped without
// aborting the others, and an unavailable frame stops the intake of new
// indices.
func (e *Evaluator) runParallel(ctx context.Context, ref, cand source.Source, plan sampler.Plan, workers int, acc *accumulator) error {
	indices := make(chan int)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		done     int
	)

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var part accumulator
			for index := range indices {
				psnr, ssim, err := e.scorePair(ctx, ref, cand, index)
				if err != nil {
					if stderrors.Is(err, source.ErrFrameUnavailable) {
						logging.Debug("sampling stopped early", "index", index, "reason", err)
						cancel() // stop handing out further indices
						continue
					}
					mu.Lock()
					if firstErr == nil && !errors.IsCancelled(err) {
						firstErr = err
					}
					mu.Unlock()
					cancel()
					continue
				}

				part.add(psnr, ssim)
				mu.Lock()
				done++
				e.rep.SampleCompared(done, len(plan))
				mu.Unlock()
			}
			mu.Lock()
			acc.merge(part)
			mu.Unlock()
		}()
	}

feed:
	for _, index := range plan {
		select {
		case indices <- index:
		case <-ctx.Done():
			break feed
		}
	}
	close(indices)
	wg.Wait()

	// The derived context cancels both on early stream exhaustion and on
	// user cancellation; only the parent context distinguishes the latter.
	if parent.Err() != nil {
		return errors.NewCancelledError()
	}
	if firstErr != nil {
		return errors.NewOperationFailedError("frame comparison failed", firstErr)
	}
	return nil
}
