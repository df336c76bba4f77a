package inference

import (
	"maps"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ezrec/sinefw/model"
)

func newObservedEngine(blob model.Blob, opts ...Option) (eng *Engine, logs *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	opts = append([]Option{WithLogger(zap.New(core))}, opts...)
	eng = NewEngine(blob, opts...)
	return
}

// sineModel is a small hand made model with a non-trivial output.
func sineModel() model.Blob {
	tm := newTestModel()
	for n := range NEURONS_L1 {
		tm.Set(model.W1, n, int8(16*n-120))
		tm.Set(model.B1, n, int8(n*5))
		tm.Set(model.W2, n*NEURONS_L1+n, 90)
		tm.Set(model.B2, n, int8(-n))
		tm.Set(model.WOUT, n, int8(60-8*n))
	}
	tm.Set(model.BOUT, 0, -12)
	return tm.Blob
}

func TestEngineUninitialized(t *testing.T) {
	assert := assert.New(t)

	eng, _ := newObservedEngine(sineModel())
	assert.Equal(UNINITIALIZED, eng.State())
	assert.False(eng.Ready())
	assert.Equal(float32(0), eng.Run(1))
	assert.False(eng.View(model.W1).Resolved())
	assert.Equal(Stats{Skipped: 1}, eng.Stats())
}

func TestEngineReady(t *testing.T) {
	assert := assert.New(t)

	// Larger than needed is fine.
	blob := append(sineModel(), make([]byte, 64)...)
	eng, logs := newObservedEngine(blob)
	eng.Initialize()

	assert.Equal(READY, eng.State())
	assert.True(eng.Ready())
	for region := range model.REGION_COUNT {
		assert.True(eng.View(model.Region(region)).Resolved(), model.Region(region).String())
	}
	assert.False(eng.View(model.Region(7)).Resolved())

	assert.Equal(1, logs.FilterMessage("inference: model ready").Len())
	assert.Equal(0, logs.FilterLevelExact(zapcore.WarnLevel).Len())

	views, err := model.Resolve(blob, model.DefaultLayout())
	assert.NoError(err)
	w := NewWeights(views)
	for n := range 64 {
		x := 2 * PI * float32(n) / 64
		assert.Equal(Forward(w, x), eng.Run(x))
	}
	assert.Equal(Stats{Runs: 64}, eng.Stats())
}

func TestEngineDeterministic(t *testing.T) {
	assert := assert.New(t)

	eng, _ := newObservedEngine(sineModel())
	eng.Initialize()
	assert.True(eng.Ready())

	var nonzero int
	for n := range 256 {
		x := float32(n) * 0.1
		y := eng.Run(x)
		assert.Equal(math.Float32bits(y), math.Float32bits(eng.Run(x)), "x=%v", x)
		assert.GreaterOrEqual(y, float32(-1))
		assert.LessOrEqual(y, float32(1))
		if y != 0 {
			nonzero++
		}
	}
	assert.NotZero(nonzero)
}

func TestEngineOneShort(t *testing.T) {
	assert := assert.New(t)

	blob := sineModel()
	eng, logs := newObservedEngine(blob[:len(blob)-1])
	eng.Initialize()

	assert.Equal(PARTIALLY_RESOLVED, eng.State())
	for region := range model.REGION_COUNT {
		resolved := eng.View(model.Region(region)).Resolved()
		assert.Equal(model.Region(region) != model.BOUT, resolved, model.Region(region).String())
	}

	oob := logs.FilterMessage("inference: region out of blob").All()
	assert.Len(oob, 1)
	fields := oob[0].ContextMap()
	assert.Equal("bout", fields["region"])
	assert.Equal(uint32(model.OFFSET_BOUT), fields["offset"])
	assert.Equal(uint32(1), fields["size"])
	assert.Equal(uint32(model.LAYOUT_END-1), fields["blob_length"])
	assert.Equal(1, logs.FilterMessage("inference: initialization incomplete, runs return 0").Len())

	for _, x := range []float32{0, 1, PI, 2 * PI, -1, 1000, float32(math.NaN())} {
		assert.Equal(uint32(0), math.Float32bits(eng.Run(x)), "x=%v", x)
	}
}

func TestEngineTruncated(t *testing.T) {
	assert := assert.New(t)

	table := []int{0, 4, int(model.OFFSET_B1) + 3, int(model.OFFSET_W2) + 255, int(model.OFFSET_WOUT)}
	for _, size := range table {
		eng, _ := newObservedEngine(sineModel()[:size])
		eng.Initialize()
		assert.Equal(PARTIALLY_RESOLVED, eng.State(), "size %v", size)
		assert.Equal(float32(0), eng.Run(1), "size %v", size)
	}
}

func TestEngineSkipWarnings(t *testing.T) {
	assert := assert.New(t)

	eng, logs := newObservedEngine(nil)
	eng.Initialize()
	assert.Equal(PARTIALLY_RESOLVED, eng.State())
	assert.Equal(model.REGION_COUNT, logs.FilterMessage("inference: region out of blob").Len())

	for range 250 {
		eng.Run(1)
	}

	// Warned on skips 1, 101 and 201.
	warnings := logs.FilterMessage("inference: run on unready engine, returning 0").All()
	assert.Len(warnings, 3)
	assert.Equal(uint64(201), warnings[2].ContextMap()["skipped"])
	assert.Equal(Stats{Skipped: 250}, eng.Stats())
}

func TestEngineIdempotent(t *testing.T) {
	assert := assert.New(t)

	for _, blob := range []model.Blob{sineModel(), sineModel()[:100]} {
		eng, logs := newObservedEngine(blob)
		eng.Initialize()

		state := eng.State()
		var views [model.REGION_COUNT]model.View
		for region := range model.REGION_COUNT {
			views[region] = eng.View(model.Region(region))
		}

		eng.Initialize()
		assert.Equal(state, eng.State())
		for region := range model.REGION_COUNT {
			assert.Equal(views[region], eng.View(model.Region(region)))
		}

		assert.Equal(1, logs.FilterMessage("inference: initializing").Len())
		assert.Equal(1, logs.FilterMessage("inference: already initialized").Len())
	}
}

func TestEngineConcurrentInitialize(t *testing.T) {
	assert := assert.New(t)

	eng, logs := newObservedEngine(sineModel())

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			eng.Initialize()
			eng.Run(1)
		}()
	}
	wg.Wait()

	assert.Equal(READY, eng.State())
	assert.Equal(1, logs.FilterMessage("inference: initializing").Len())
	assert.Equal(15, logs.FilterMessage("inference: already initialized").Len())

	stats := eng.Stats()
	assert.Equal(uint64(16), stats.Runs+stats.Skipped)
}

func TestEngineTrace(t *testing.T) {
	assert := assert.New(t)

	eng, logs := newObservedEngine(sineModel(), WithTraceInterval(2))
	eng.Initialize()

	for range 5 {
		eng.Run(PI)
	}

	traces := logs.FilterMessage("inference: run").All()
	assert.Len(traces, 3)
	fields := traces[1].ContextMap()
	assert.Equal(uint64(3), fields["run"])
	assert.Equal(int8(0), fields["quant"])

	eng, logs = newObservedEngine(sineModel(), WithTraceInterval(0))
	eng.Initialize()
	eng.Run(PI)
	assert.Equal(0, logs.FilterMessage("inference: run").Len())
}

func TestEngineLayout(t *testing.T) {
	assert := assert.New(t)

	// Same tables, packed at the start of the blob.
	blob := sineModel()
	var layout []model.RegionSpec
	var packed model.Blob
	for _, spec := range model.DefaultLayout() {
		end, _ := spec.End()
		layout = append(layout, model.RegionSpec{
			Region: spec.Region,
			Offset: uint32(len(packed)),
			Size:   spec.Size,
		})
		packed = append(packed, blob[spec.Offset:end]...)
	}

	eng, _ := newObservedEngine(packed, WithLayout(layout))
	eng.Initialize()
	assert.True(eng.Ready())

	ref, _ := newObservedEngine(blob)
	ref.Initialize()
	for n := range 32 {
		x := float32(n) * 0.2
		assert.Equal(ref.Run(x), eng.Run(x))
	}

	// The default layout does not fit the packed blob.
	eng, _ = newObservedEngine(packed)
	eng.Initialize()
	assert.Equal(PARTIALLY_RESOLVED, eng.State())
}

func TestEngineDefaultLogger(t *testing.T) {
	assert := assert.New(t)

	eng := NewEngine(sineModel(), WithLogger(nil))
	eng.Initialize()
	assert.True(eng.Ready())
	assert.Same(Logger(), eng.logger)
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := maps.Collect(Defines())
	assert.Equal("0x10", defines["NEURONS_L1"])
	assert.Equal("0x20", defines["ACC_DIVISOR"])
	assert.Equal("0x8", defines["BIAS_SCALE"])
}
