package warmup

import (
	"context"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_sms_normalizer/internal/core/rules"
	"github.com/baditaflorin/go_sms_normalizer/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency: runtime.NumCPU(),
		Iterations:  200,
		Duration:    5 * time.Second,
		ForceGC:     true,
	}
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	processors  []ports.StreamProcessor
	normalizers []ports.Normalizer
	config      WarmupConfig
	messages    []string
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{
		logger:   logger,
		config:   config,
		messages: sampleMessages(),
	}
}

// RegisterStreamProcessor adds a stream processor to be warmed up
func (wm *Manager) RegisterStreamProcessor(proc ports.StreamProcessor) {
	wm.processors = append(wm.processors, proc)
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs the warmup process for all registered components
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.processors)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	wm.warmUpNormalizers(warmupCtx)
	wm.warmUpStreamProcessors(warmupCtx)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
	)
}

// warmUpNormalizers runs every sample message through every registered normalizer
func (wm *Manager) warmUpNormalizers(ctx context.Context) {
	if len(wm.normalizers) == 0 {
		return
	}

	wm.logger.Debug("Warming up normalizers", "count", len(wm.normalizers))

	wm.run(ctx, wm.config.Iterations, func(j int) {
		msg := wm.messages[j%len(wm.messages)]
		for _, normalizer := range wm.normalizers {
			_ = normalizer.Normalize(msg)
		}
	})
}

// warmUpStreamProcessors pushes a small TSV document through every registered processor
func (wm *Manager) warmUpStreamProcessors(ctx context.Context) {
	if len(wm.processors) == 0 {
		return
	}

	wm.logger.Debug("Warming up stream processors", "count", len(wm.processors))

	doc := sampleDocument(wm.messages)
	wm.run(ctx, wm.config.Iterations/10, func(int) { // Fewer iterations for streaming
		for _, processor := range wm.processors {
			if _, err := processor.ProcessStream(ctx, strings.NewReader(doc), io.Discard); err != nil && ctx.Err() == nil {
				wm.logger.Warn("Warmup stream failed", "error", err)
			}
		}
	})
}

// run calls fn for each iteration on every warmup routine until ctx is done
func (wm *Manager) run(ctx context.Context, iterations int, fn func(iteration int)) {
	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				fn(j)
			}
		}()
	}

	wg.Wait()
}

// sampleMessages builds warmup input from the sample words of every rule category
func sampleMessages() []string {
	messages := []string{
		"I'm *so* happy :) call 0800 169 6031",
		"WINNER!! claim £1.50pm at www.areyouunique.co.uk, 18+ only",
		"Ok lar... Joking wif u oni... &lt;#&gt;",
	}
	for _, category := range rules.SampleRules() {
		messages = append(messages, "msg "+strings.Join(rules.Samples(category), " and "))
	}
	return messages
}

// sampleDocument renders messages as labeled TSV rows
func sampleDocument(messages []string) string {
	var sb strings.Builder
	for i, msg := range messages {
		if i%2 == 0 {
			sb.WriteString("ham\t")
		} else {
			sb.WriteString("spam\t")
		}
		sb.WriteString(strings.ReplaceAll(msg, "\t", " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
