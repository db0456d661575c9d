package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/richinsley/goswizzle/glfwcontext"
	"github.com/richinsley/goswizzle/gpgpu"
	"github.com/richinsley/goswizzle/graphics"
	"github.com/richinsley/goswizzle/headless"
	"github.com/richinsley/goswizzle/media"
	"github.com/richinsley/goswizzle/merge"
	"github.com/richinsley/goswizzle/options"
	"github.com/richinsley/goswizzle/shader"
)

func init() {
	// GL contexts are bound to the OS thread that created them.
	runtime.LockOSThread()
}

func main() {
	opts := &options.MergeOptions{
		InputA:     flag.String("a", "", "Input A (png, jpeg, or anything ffmpeg can decode)"),
		InputB:     flag.String("b", "", "Input B (png, jpeg, or anything ffmpeg can decode)"),
		Mode:       flag.String("mode", "rgb_r", "Merge mode: rgb_r, rg_rg, ra_rg"),
		OutputFile: flag.String("o", "merged.png", "Output PNG file"),
		Frame:      flag.Int("frame", 0, "Frame index to extract from video inputs"),
		CPU:        flag.Bool("cpu", false, "Merge on the CPU instead of OpenGL"),
		Headless:   flag.Bool("headless", runtime.GOOS == "linux", "Use an EGL headless context instead of a hidden GLFW window"),
		Filter:     flag.String("filter", "nearest", "Input texture filter: nearest, linear, mipmap"),
		Wrap:       flag.String("wrap", "clamp", "Input texture wrap: clamp, repeat"),
		FFMPEGPath: flag.String("ffmpeg", "", "Path to ffmpeg executable"),
		ConfigFile: flag.String("config", "", "YAML job file; overrides -a, -b, -mode and -o"),
		Emit:       flag.String("emit", "", "Print the shader for -mode (glsl, wgsl, spirv) and exit"),
		LogLevel:   flag.String("log-level", "info", "Log level: debug, info, warn, error"),
		Help:       flag.Bool("help", false, "Show help message"),
	}
	flag.Parse()

	if *opts.Help {
		fmt.Println("goswizzle: merge the channels of two images")
		flag.PrintDefaults()
		return
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	level, err := zerolog.ParseLevel(*opts.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	if *opts.Emit != "" {
		if err := emitShader(*opts.Emit, *opts.Mode); err != nil {
			log.Fatal().Err(err).Msg("emit failed")
		}
		return
	}

	var cfg *options.Config
	if *opts.ConfigFile != "" {
		cfg, err = options.Load(*opts.ConfigFile)
		if err != nil {
			log.Fatal().Err(err).Str("path", *opts.ConfigFile).Msg("config load failed")
		}
		cfg.Overlay(opts)
	} else {
		cfg, err = options.FromFlags(opts)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid arguments")
		}
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("merge failed")
	}
}

func emitShader(kind, modeName string) error {
	mode, err := merge.ParseMode(modeName)
	if err != nil {
		return err
	}
	switch kind {
	case "glsl":
		fmt.Print(merge.FragmentSource(mode))
	case "wgsl":
		fmt.Print(merge.WGSLSource(mode))
	case "spirv":
		words, err := shader.CompileSPIRV(merge.WGSLSource(mode))
		if err != nil {
			return err
		}
		buf := make([]byte, 0, len(words)*4)
		for _, w := range words {
			buf = append(buf, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
		}
		_, err = os.Stdout.Write(buf)
		return err
	default:
		return fmt.Errorf("unknown shader kind %q", kind)
	}
	return nil
}

func run(cfg *options.Config) error {
	loader := &media.Loader{FFmpegPath: cfg.FFMPEGPath}
	sampler := gpgpu.Sampler{Filter: cfg.Filter, Wrap: cfg.Wrap}

	var ctx graphics.Context
	if !cfg.CPU {
		var err error
		ctx, err = newContext(*cfg.Headless)
		if err != nil {
			return err
		}
		defer ctx.Shutdown()
	}

	for i, job := range cfg.Jobs {
		a, err := loader.Load(job.A, job.Frame)
		if err != nil {
			return fmt.Errorf("job %d: input a: %w", i, err)
		}
		b, err := loader.Load(job.B, job.Frame)
		if err != nil {
			return fmt.Errorf("job %d: input b: %w", i, err)
		}

		start := time.Now()
		var out image.Image
		if ctx == nil {
			out, err = merge.Images(job.Mode, a, b)
		} else {
			out, err = gpgpu.Merge(ctx, job.Mode, a, b, sampler)
		}
		if err != nil {
			return fmt.Errorf("job %d: %w", i, err)
		}

		if err := media.SavePNG(job.Output, out); err != nil {
			return fmt.Errorf("job %d: %w", i, err)
		}
		log.Info().
			Str("mode", job.Mode.String()).
			Str("output", job.Output).
			Bool("cpu", ctx == nil).
			Dur("elapsed", time.Since(start)).
			Msg("merged")
	}
	return nil
}

// newContext creates the offscreen GL context. The pbuffer/window size is
// irrelevant since rendering goes to a framebuffer object.
func newContext(useHeadless bool) (graphics.Context, error) {
	if useHeadless {
		h, err := headless.NewHeadless(16, 16)
		if err == nil {
			return h, nil
		}
		log.Warn().Err(err).Msg("headless context unavailable, falling back to GLFW")
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}
	c, err := glfwcontext.New(16, 16)
	if err != nil {
		glfwcontext.TerminateGraphics()
		return nil, fmt.Errorf("failed to create glfw context: %w", err)
	}
	return &glfwShutdown{Context: c}, nil
}

// glfwShutdown terminates GLFW after destroying the window.
type glfwShutdown struct {
	*glfwcontext.Context
}

func (g *glfwShutdown) Shutdown() {
	g.Context.Shutdown()
	glfwcontext.TerminateGraphics()
}
