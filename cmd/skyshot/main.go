// Command skyshot renders a sky variant headlessly and writes the frames
// as PNG snapshots or one animated GIF.
//
// Usage:
//
//	go run ./cmd/skyshot [flags]
//
// Flags:
//
//	--variant <name>  variant to render (default deepspace)
//	--width, --height viewport size
//	--frames <n>      number of frames to simulate
//	--every <k>       keep every k-th frame
//	--seed <n>        random seed (default 1)
//	--out <path>      output directory for PNGs, or file for --gif
//	--gif             write an animated GIF instead of PNGs
//	--pointer         move a simulated pointer in a circle (cursor trail)
//	--config <path>   variant file overriding the embedded one
//	--verbose         enable logging
//
// No window is opened: frames are driven by a free-running ticker host and
// drawn on CPU raster surfaces.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/embedded"
	"github.com/decker502/nightsky/pkg/engine"
	"github.com/decker502/nightsky/pkg/host"
)

var (
	variantFlag = flag.String("variant", config.DefaultVariant, "Variant to render")
	widthFlag   = flag.Int("width", 640, "Viewport width")
	heightFlag  = flag.Int("height", 360, "Viewport height")
	framesFlag  = flag.Int("frames", 120, "Frames to simulate")
	everyFlag   = flag.Int("every", 30, "Keep every k-th frame")
	seedFlag    = flag.Uint64("seed", 1, "Random seed")
	outFlag     = flag.String("out", "skyshot", "Output directory (PNG) or file (GIF)")
	gifFlag     = flag.Bool("gif", false, "Write an animated GIF")
	pointerFlag = flag.Bool("pointer", false, "Simulate a pointer moving in a circle")
	configFlag  = flag.String("config", "", "Variant file overriding the embedded one")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	_ = godotenv.Load()
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}
	embedded.Init(os.DirFS("."))

	opts := Options{
		Variant: *variantFlag,
		Width:   *widthFlag,
		Height:  *heightFlag,
		Frames:  *framesFlag,
		Every:   *everyFlag,
		Seed:    *seedFlag,
		Pointer: *pointerFlag,
	}

	var sink Sink
	if *gifFlag {
		sink = NewGIFSink(*outFlag, opts.Every)
	} else {
		sink = NewPNGSink(*outFlag)
	}

	n, err := run(context.Background(), *configFlag, opts, sink)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skyshot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d frames to %s\n", n, *outFlag)
}

// Options 渲染参数
type Options struct {
	Variant       string
	Width, Height int
	Frames, Every int
	Seed          uint64
	Pointer       bool
}

func run(ctx context.Context, configPath string, opts Options, sink Sink) (int, error) {
	if opts.Every <= 0 {
		opts.Every = 1
	}

	variants, err := embedded.LoadVariants(configPath)
	if err != nil {
		return 0, err
	}
	v, err := variants.Find(opts.Variant)
	if err != nil {
		return 0, err
	}

	h := host.NewTicker(opts.Width, opts.Height, 0)
	e := engine.New(v, engine.WithSeed(opts.Seed))
	if err := e.Mount(h); err != nil {
		return 0, err
	}
	defer e.Unmount()

	if opts.Pointer {
		h.SetPointerInside(true)
	}

	written := 0
	err = h.Run(ctx, opts.Frames, func(frame int) error {
		if opts.Pointer {
			x, y := circlePath(frame, opts.Width, opts.Height)
			h.MovePointer(x, y)
		}
		if (frame+1)%opts.Every != 0 {
			return nil
		}
		if err := sink.Add(frame, h.Composite()); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		written++
		return nil
	})
	if err != nil {
		return written, err
	}
	log.Printf("[Skyshot] %s: %d ticks, %d particles at end", v.Name, e.Ticks(), e.Store().Len())
	return written, sink.Close()
}
