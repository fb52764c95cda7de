package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/milosgajdos/go-gpsmooth/clock"
	"github.com/milosgajdos/go-gpsmooth/location"
	"github.com/milosgajdos/go-gpsmooth/sim"
	"github.com/milosgajdos/go-gpsmooth/track"
	"github.com/paulmach/orb"
	"gonum.org/v1/plot/vg"
)

var (
	// configPath is a path to JSON smoother configuration
	configPath string
	// inPath is a path to GeoJSON input; empty or - reads stdin
	inPath string
	// outPath is a path to GeoJSON output; empty or - writes stdout
	outPath string
	// simulate replaces the input with a simulated walk of this many fixes
	simulate int
	// seed seeds the simulated receiver error
	seed uint64
	// accuracy is the simulated receiver accuracy in meters
	accuracy float64
	// plotPath is a path to PNG plot of the track
	plotPath string
	// emitFirst emits the fix that primes the smoother
	emitFirst bool
	// compact merges points on straight stretches
	compact bool
	// lineString appends a LineString feature of the whole track
	lineString bool
	// wallClock stamps fixes with the wall clock instead of replaying input times
	wallClock bool
)

func init() {
	flag.StringVar(&configPath, "config", "", "Smoother JSON configuration file")
	flag.StringVar(&inPath, "in", "", "GeoJSON input file (default stdin)")
	flag.StringVar(&outPath, "out", "", "GeoJSON output file (default stdout)")
	flag.IntVar(&simulate, "simulate", 0, "Simulate a walk with this many fixes instead of reading input")
	flag.Uint64Var(&seed, "seed", 1, "Simulated receiver error seed")
	flag.Float64Var(&accuracy, "accuracy", 8, "Simulated receiver accuracy in meters")
	flag.StringVar(&plotPath, "plot", "", "Save PNG plot of the track to this file")
	flag.BoolVar(&emitFirst, "emit-first", false, "Emit the first fix which only primes the smoother")
	flag.BoolVar(&compact, "compact", false, "Merge points on straight stretches")
	flag.BoolVar(&lineString, "linestring", false, "Append a LineString feature of the track")
	flag.BoolVar(&wallClock, "wall-clock", false, "Stamp fixes with the wall clock instead of input times")
}

func readFixes() ([]location.Fix, []location.Fix, error) {
	if simulate > 0 {
		w := sim.Walk{
			Origin:           orb.Point{9.19, 45.464},
			Altitude:         120,
			Velocity:         [3]float64{1.1, 0.9, 0.02},
			Steps:            simulate,
			TimeStep:         1,
			Accuracy:         accuracy,
			AltitudeAccuracy: accuracy / 2,
			Seed:             seed,
			Start:            time.Now().Truncate(time.Second),
		}

		samples, err := w.Run()
		if err != nil {
			return nil, nil, err
		}

		truth := make([]location.Fix, len(samples))
		raw := make([]location.Fix, len(samples))
		for i, s := range samples {
			truth[i], raw[i] = s.Truth, s.Measured
		}

		return truth, raw, nil
	}

	var r io.Reader = os.Stdin
	if inPath != "" && inPath != "-" {
		f, err := os.Open(inPath)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		r = f
	}

	raw, err := track.Decode(r)

	return nil, raw, err
}

func writeFixes(fixes []location.Fix) error {
	if outPath == "" || outPath == "-" {
		return track.Encode(os.Stdout, fixes, lineString)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}

	return writeTo(f, fixes)
}

// writeTo encodes fixes to w and closes it
func writeTo(w io.WriteCloser, fixes []location.Fix) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	return track.Encode(w, fixes, lineString)
}

// replay moves clk to the time of fix so that output follows input timing
func replay(clk *clock.Mock, last time.Time, fix location.Fix) time.Time {
	if fix.Time.IsZero() {
		return last
	}

	if !last.IsZero() && fix.Time.After(last) {
		clk.Advance(fix.Time.Sub(last))
	}
	clk.Set(fix.Time)

	return fix.Time
}

func main() {
	flag.Parse()

	location.SetLogger(log.Printf)

	cfg := location.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = location.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	truth, raw, err := readFixes()
	if err != nil {
		log.Fatalf("Failed to read fixes: %v", err)
	}

	var clk clock.Clock = clock.NewReal()
	mock := clock.NewMock(time.Now())
	if !wallClock {
		clk = mock
	}

	s, err := location.New(cfg, clk)
	if err != nil {
		log.Fatalf("Failed to create smoother: %v", err)
	}

	smoothed := make([]location.Fix, len(raw))
	var out []location.Fix
	path := track.NewPath()
	failures := 0
	var last time.Time

	for i, fix := range raw {
		last = replay(mock, last, fix)

		first := s.IsFirstPoint()
		smoothed[i], err = s.Filter(fix)
		if err != nil {
			failures++
		}

		if first && !emitFirst {
			continue
		}

		if compact {
			path.Add(smoothed[i])
			continue
		}
		out = append(out, smoothed[i])
	}

	if compact {
		out = path.Points()
		log.Printf("compacted to %d points, %.1fm in %v", len(out), path.Distance(), path.Duration())
	}

	if err := writeFixes(out); err != nil {
		log.Fatalf("Failed to write fixes: %v", err)
	}

	log.Printf("smoothed %d fixes, %d passed through, track length %.1fm", len(raw), failures, track.Length(out))

	if truth != nil {
		r, err := sim.NewReport(truth, raw, smoothed)
		if err != nil {
			log.Fatalf("Failed to create report: %v", err)
		}
		fmt.Fprintln(os.Stderr, r)
	}

	if plotPath != "" && len(raw) > 0 {
		plt, err := sim.NewTrackPlot(truth, raw, smoothed)
		if err != nil {
			log.Fatalf("Failed to make plot: %v", err)
		}

		// Save the plot to a PNG file.
		if err := plt.Save(10*vg.Inch, 10*vg.Inch, plotPath); err != nil {
			log.Fatalf("Failed to save plot to %s: %v", plotPath, err)
		}
	}
}
