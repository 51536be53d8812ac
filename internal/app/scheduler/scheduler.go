package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/yigit/coursemanager/internal/pkg/metrics"
)

// Finalizer finalizes grades whose grading period has ended.
type Finalizer interface {
	FinalizeExpired(ctx context.Context) (int, error)
}

// GradeFinalizer runs a Finalizer on a cron schedule.
type GradeFinalizer struct {
	cron      *cron.Cron
	finalizer Finalizer
	spec      string
	timeout   time.Duration
	log       zerolog.Logger

	mu      sync.Mutex
	running bool
}

// NewGradeFinalizer creates a scheduler for spec, a standard five field cron
// expression or a descriptor such as "@daily".
func NewGradeFinalizer(finalizer Finalizer, spec string, log zerolog.Logger) (*GradeFinalizer, error) {
	g := &GradeFinalizer{
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		finalizer: finalizer,
		spec:      spec,
		timeout:   5 * time.Minute,
		log:       log,
	}

	if _, err := g.cron.AddFunc(spec, func() { _, _ = g.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid finalize schedule %q: %w", spec, err)
	}
	return g, nil
}

// Start starts the scheduler
func (g *GradeFinalizer) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running {
		return
	}
	g.cron.Start()
	g.running = true
	g.log.Info().Str("schedule", g.spec).Msg("Grade finalizer started")
}

// Stop stops the scheduler and waits for a running job to complete
func (g *GradeFinalizer) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.running {
		return
	}
	<-g.cron.Stop().Done()
	g.running = false
	g.log.Info().Msg("Grade finalizer stopped")
}

// IsRunning returns true if the scheduler is running
func (g *GradeFinalizer) IsRunning() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

// RunOnce finalizes expired grades immediately
func (g *GradeFinalizer) RunOnce(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	// Students are finalized independently, so n counts the ones that
	// succeeded even when err is set
	n, err := g.finalizer.FinalizeExpired(ctx)
	metrics.GradesFinalized.Add(float64(n))
	if n > 0 {
		g.log.Info().Int("count", n).Msg("Finalized expired grades")
	}
	if err != nil {
		g.log.Error().Err(err).Msg("Failed to finalize expired grades")
		return n, err
	}
	return n, nil
}
