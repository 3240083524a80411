// Package sampling evaluates curves over a parameter range in parallel.
package sampling

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/remeh/sizedwaitgroup"
	"gonum.org/v1/gonum/floats"

	"voreencurves/internal/models"
	"voreencurves/pkg/spline"
)

// ProgressCallback is a function that reports progress during sampling
type ProgressCallback func(completed, total int, message string)

// Curve is anything that can be evaluated at a parameter t.
type Curve interface {
	// Dim returns the number of coordinates Eval produces.
	Dim() int
	// Eval evaluates the curve at t. It must be safe for concurrent use.
	Eval(t float64) []float64
}

// Sampler evaluates curves on a bounded pool of goroutines
type Sampler struct {
	// Workers is the maximum number of concurrent evaluation goroutines
	Workers int

	// ChunkSize is the number of parameters evaluated per task. Zero picks
	// a size that gives each worker a few tasks.
	ChunkSize int

	progress ProgressCallback
}

// NewSampler creates a sampler with the given number of workers. Values
// below one use all available CPUs.
func NewSampler(workers int) *Sampler {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Sampler{Workers: workers}
}

// SetProgressCallback sets a callback function for progress reporting
func (s *Sampler) SetProgressCallback(callback ProgressCallback) {
	s.progress = callback
}

// Sample evaluates c at n parameters spaced uniformly over [tMin, tMax],
// both ends included. The result is ordered by parameter.
func (s *Sampler) Sample(ctx context.Context, c Curve, n int, tMin, tMax float64) ([]models.Sample, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", spline.ErrInvalidArgument, n)
	}
	if !(tMax > tMin) {
		return nil, fmt.Errorf("%w: empty parameter range [%g, %g]", spline.ErrInvalidArgument, tMin, tMax)
	}

	params := floats.Span(make([]float64, n), tMin, tMax)
	samples := make([]models.Sample, n)

	workers := s.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	chunk := s.ChunkSize
	if chunk < 1 {
		chunk = (n + 4*workers - 1) / (4 * workers)
	}
	numChunks := (n + chunk - 1) / chunk

	var mu sync.Mutex
	completed := 0

	swg := sizedwaitgroup.New(workers)
	for start := 0; start < n; start += chunk {
		if err := swg.AddWithContext(ctx); err != nil {
			swg.Wait()
			return nil, fmt.Errorf("sampling cancelled: %w", err)
		}

		end := min(start+chunk, n)
		go func(start, end int) {
			defer swg.Done()
			for i := start; i < end; i++ {
				if ctx.Err() != nil {
					return
				}
				samples[i] = models.Sample{T: params[i], Value: c.Eval(params[i])}
			}

			mu.Lock()
			completed++
			if s.progress != nil {
				s.progress(completed, numChunks, fmt.Sprintf("sampled t in [%g, %g]", params[start], params[end-1]))
			}
			mu.Unlock()
		}(start, end)
	}
	swg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("sampling cancelled: %w", err)
	}
	return samples, nil
}
