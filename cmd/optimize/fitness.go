package main

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/staticfield/app"
	"github.com/pthm-cable/staticfield/config"
	"github.com/pthm-cable/staticfield/field"
)

// Targets are the field statistics the optimizer steers toward.
type Targets struct {
	Coverage    float64 // mean foreground weight over the surface
	TopCoverage float64 // mean foreground weight in the calm band
	Contrast    float64 // std of block coverage, how blobby the field is
}

// Fitness component weights.
const (
	weightCoverage = 1.0
	weightTop      = 0.5
	weightContrast = 0.75

	topBandFraction = 0.2 // top rows treated as the calm band
	blockSize       = 8   // pixels per contrast block side
)

// Measurement holds coverage statistics for one render.
type Measurement struct {
	Coverage    float64
	TopCoverage float64
	Contrast    float64
}

// FitnessEvaluator renders the field headless and scores it against targets.
type FitnessEvaluator struct {
	params     *ParamVector
	baseConfig *config.Config
	seeds      []int64
	frames     int
	sampleEach int
	targets    Targets

	mu         sync.Mutex
	last       Measurement // mean measurement from the most recent Evaluate call
	evalErrors int
}

// NewFitnessEvaluator creates a new evaluator. Each seed renders frames
// frames and measures every sampleEach-th one.
func NewFitnessEvaluator(params *ParamVector, baseCfg *config.Config, seeds []int64, frames, sampleEach int, targets Targets) *FitnessEvaluator {
	if sampleEach <= 0 {
		sampleEach = 1
	}
	return &FitnessEvaluator{
		params:     params,
		baseConfig: baseCfg,
		seeds:      seeds,
		frames:     frames,
		sampleEach: sampleEach,
		targets:    targets,
	}
}

// Last returns the mean measurement from the most recent evaluation.
func (fe *FitnessEvaluator) Last() Measurement {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// Errors returns how many runs failed.
func (fe *FitnessEvaluator) Errors() int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.evalErrors
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Failed runs score +Inf.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]Measurement, len(fe.seeds))
	errs := make([]error, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx], errs[idx] = fe.run(x, s)
		}(i, seed)
	}
	wg.Wait()

	var mean Measurement
	for i, r := range results {
		if errs[i] != nil {
			fe.mu.Lock()
			fe.evalErrors++
			fe.mu.Unlock()
			return math.Inf(1)
		}
		mean.Coverage += r.Coverage
		mean.TopCoverage += r.TopCoverage
		mean.Contrast += r.Contrast
	}
	n := float64(len(results))
	mean.Coverage /= n
	mean.TopCoverage /= n
	mean.Contrast /= n

	fe.mu.Lock()
	fe.last = mean
	fe.mu.Unlock()

	return Score(mean, fe.targets)
}

// Score is the weighted squared error of m against t.
func Score(m Measurement, t Targets) float64 {
	dc := m.Coverage - t.Coverage
	dt := m.TopCoverage - t.TopCoverage
	dk := m.Contrast - t.Contrast
	return weightCoverage*dc*dc + weightTop*dt*dt + weightContrast*dk*dk
}

// run renders one seed and averages the sampled measurements.
func (fe *FitnessEvaluator) run(x []float64, seed int64) (Measurement, error) {
	cfg := fe.baseConfig.Clone()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return Measurement{}, err
	}

	a, err := app.New(cfg, app.Options{Seed: seed, Headless: true, Logger: slog.New(slog.DiscardHandler)})
	if err != nil {
		return Measurement{}, err
	}
	defer a.Close()
	if err := a.Start(time.Unix(0, 0)); err != nil {
		return Measurement{}, err
	}

	palette := field.NewPalette(&cfg.Derived.Field)
	var sum Measurement
	samples := 0
	for i := 1; i <= fe.frames; i++ {
		a.StepHeadless()
		if i%fe.sampleEach != 0 {
			continue
		}
		img := a.Renderer().Capture()
		if img == nil {
			return Measurement{}, fmt.Errorf("seed %d: no frame captured", seed)
		}
		m := Measure(img, palette.Foreground, palette.Background)
		sum.Coverage += m.Coverage
		sum.TopCoverage += m.TopCoverage
		sum.Contrast += m.Contrast
		samples++
	}
	if samples == 0 {
		return Measurement{}, fmt.Errorf("seed %d: no samples", seed)
	}
	s := float64(samples)
	return Measurement{Coverage: sum.Coverage / s, TopCoverage: sum.TopCoverage / s, Contrast: sum.Contrast / s}, nil
}

// Measure computes coverage statistics for a rendered image. Each pixel's
// foreground weight is its projection onto the background to foreground
// colour axis.
func Measure(img *image.RGBA, fg, bg color.RGBA) Measurement {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return Measurement{}
	}

	ax := float64(fg.R) - float64(bg.R)
	ay := float64(fg.G) - float64(bg.G)
	az := float64(fg.B) - float64(bg.B)
	norm := ax*ax + ay*ay + az*az

	topRows := max(1, int(float64(h)*topBandFraction))
	bw := (w + blockSize - 1) / blockSize
	bh := (h + blockSize - 1) / blockSize
	blocks := make([]float64, bw*bh)
	counts := make([]float64, bw*bh)

	var total, top float64
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			var weight float64
			if norm > 0 {
				px := row[x*4:]
				dx := float64(px[0]) - float64(bg.R)
				dy := float64(px[1]) - float64(bg.G)
				dz := float64(px[2]) - float64(bg.B)
				weight = min(max((dx*ax+dy*ay+dz*az)/norm, 0), 1)
			}
			total += weight
			if y < topRows {
				top += weight
			}
			bi := (y/blockSize)*bw + x/blockSize
			blocks[bi] += weight
			counts[bi]++
		}
	}
	for i := range blocks {
		blocks[i] /= counts[i]
	}

	return Measurement{
		Coverage:    total / float64(w*h),
		TopCoverage: top / float64(topRows*w),
		Contrast:    math.Sqrt(stat.PopVariance(blocks, nil)),
	}
}
