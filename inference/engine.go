// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package inference

import (
	"errors"
	"iter"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ezrec/sinefw/internal"
	"github.com/ezrec/sinefw/model"
)

// State of an engine's model resolution.
type State int32

//go:generate go tool stringer -linecomment -type=State
const (
	UNINITIALIZED      = State(0) // uninitialized
	PARTIALLY_RESOLVED = State(1) // partially-resolved
	READY              = State(2) // ready
)

// resolving marks an Initialize in flight.
const resolving = int32(-1)

const (
	TRACE_INTERVAL = 50  // Default runs between debug traces.
	SKIP_INTERVAL  = 100 // Skipped runs between warnings.
)

var _inference_defines = map[string]int{
	"NEURONS_L1":  NEURONS_L1,
	"NEURONS_L2":  NEURONS_L2,
	"BIAS_SCALE":  BIAS_SCALE,
	"ACC_DIVISOR": ACC_DIVISOR,
}

// Defines for the network topology and scaling.
func Defines() iter.Seq2[string, string] {
	return internal.HexDefines(_inference_defines)
}

// Stats are the debug counters of an engine. They never affect results.
type Stats struct {
	Runs    uint64 // Runs through the network.
	Skipped uint64 // Runs that returned 0 because the engine was not ready.
}

// Engine runs the model held in a blob.
type Engine struct {
	blob          model.Blob
	layout        []model.RegionSpec
	logger        *zap.Logger
	traceInterval uint64

	state   atomic.Int32
	views   [model.REGION_COUNT]model.View
	weights *Weights

	runs    atomic.Uint64
	skipped atomic.Uint64
}

// Option configures an Engine.
type Option func(eng *Engine)

// WithLayout resolves the blob with layout instead of model.DefaultLayout().
func WithLayout(layout []model.RegionSpec) Option {
	return func(eng *Engine) {
		eng.layout = layout
	}
}

// WithLogger sets the engine's logger.
func WithLogger(l *zap.Logger) Option {
	return func(eng *Engine) {
		if l != nil {
			eng.logger = l
		}
	}
}

// WithTraceInterval emits a debug trace every n runs. Zero disables traces.
func WithTraceInterval(n uint64) Option {
	return func(eng *Engine) {
		eng.traceInterval = n
	}
}

// NewEngine creates an uninitialized engine over blob.
func NewEngine(blob model.Blob, opts ...Option) (eng *Engine) {
	eng = &Engine{
		blob:          blob,
		layout:        model.DefaultLayout(),
		logger:        Logger(),
		traceInterval: TRACE_INTERVAL,
	}

	for _, opt := range opts {
		opt(eng)
	}

	return
}

// State returns the current state. An Initialize in progress is UNINITIALIZED.
func (eng *Engine) State() State {
	state := eng.state.Load()
	if state == resolving {
		return UNINITIALIZED
	}
	return State(state)
}

// Ready is true if Run evaluates the network.
func (eng *Engine) Ready() bool {
	return eng.State() == READY
}

// Stats returns a snapshot of the debug counters.
func (eng *Engine) Stats() Stats {
	return Stats{
		Runs:    eng.runs.Load(),
		Skipped: eng.skipped.Load(),
	}
}

// View returns the view resolved for region. Before Initialize completes
// every view is unresolved.
func (eng *Engine) View(region model.Region) (view model.View) {
	if !region.Valid() || eng.State() == UNINITIALIZED {
		return
	}
	return eng.views[region]
}

// Initialize resolves the model regions. Only the first call does anything;
// later calls, including ones racing the first, return at once.
func (eng *Engine) Initialize() {
	log := eng.logger

	if !eng.state.CompareAndSwap(int32(UNINITIALIZED), resolving) {
		log.Debug("inference: already initialized", zap.Stringer("state", eng.State()))
		return
	}

	log.Info("inference: initializing",
		zap.Uint32("blob_length", eng.blob.Len()),
		zap.Binary("magic", eng.blob[:min(4, len(eng.blob))]),
	)

	views, err := model.Resolve(eng.blob, eng.layout)
	for _, err := range splitErrors(err) {
		var oob *model.ErrOutOfBounds
		if errors.As(err, &oob) {
			log.Warn("inference: region out of blob",
				zap.Stringer("region", oob.Region),
				zap.Uint32("offset", oob.Offset),
				zap.Uint32("size", oob.Size),
				zap.Uint32("blob_length", oob.Length),
			)
			continue
		}
		log.Warn("inference: region unresolved", zap.Error(err))
	}

	eng.views = views
	eng.weights = NewWeights(views)

	state := PARTIALLY_RESOLVED
	if eng.weights.Resolved() {
		state = READY
		log.Info("inference: model ready",
			zap.Int8s("w1", eng.weights.W1.Int8s()[:4]),
			zap.Int8s("b1", eng.weights.B1.Int8s()[:4]),
			zap.Int8("bout", eng.weights.Bout.At(0)),
		)
	} else {
		log.Warn("inference: initialization incomplete, runs return 0")
	}

	eng.state.Store(int32(state))
}

// Run evaluates the network on phase x. An engine that is not READY
// returns 0.
func (eng *Engine) Run(x float32) (y float32) {
	log := eng.logger

	if State(eng.state.Load()) != READY {
		skipped := eng.skipped.Add(1)
		if skipped%SKIP_INTERVAL == 1 {
			log.Warn("inference: run on unready engine, returning 0",
				zap.Stringer("state", eng.State()),
				zap.Uint64("skipped", skipped),
			)
		}
		return
	}

	y = Forward(eng.weights, x)

	runs := eng.runs.Add(1)
	if eng.traceInterval != 0 && (runs-1)%eng.traceInterval == 0 {
		if ce := log.Check(zap.DebugLevel, "inference: run"); ce != nil {
			ce.Write(
				zap.Uint64("run", runs),
				zap.Float32("x", x),
				zap.Int8("quant", Quantize(x)),
				zap.Float32("y", y),
			)
		}
	}

	return
}

// splitErrors flattens an errors.Join result.
func splitErrors(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
