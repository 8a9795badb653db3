package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/ledmatrix/internal/config"
	"github.com/coreman2200/ledmatrix/internal/ws"
	"github.com/coreman2200/ledmatrix/layout"
	"github.com/coreman2200/ledmatrix/led"
	"github.com/coreman2200/ledmatrix/led/fake"
	"github.com/coreman2200/ledmatrix/matrix"
	"github.com/coreman2200/ledmatrix/patterns"
)

// tee fans a frame out to several sinks; the first error wins.
type tee []led.Driver

func (t tee) Write(rgb []byte) error {
	for _, d := range t {
		if err := d.Write(rgb); err != nil {
			return err
		}
	}
	return nil
}

func (t tee) Close() error {
	var first error
	for _, d := range t {
		if err := d.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func main() {
	// ---- Flags (config.yaml can override) ----
	var (
		width      = flag.Int("width", 8, "matrix width (logical)")
		height     = flag.Int("height", 8, "matrix height (logical)")
		wiring     = flag.String("wiring", "snake", "wiring: row | snake")
		colorOrder = flag.String("color", "GRB", "LED color order (e.g. GRB, RGB)")
		brightness = flag.Float64("brightness", 0.8, "global brightness 0..1")
		flipH      = flag.Bool("flip-h", false, "mirror output horizontally")
		flipV      = flag.Bool("flip-v", false, "mirror output vertically")
		rotation   = flag.Int("rotation", 0, "output rotation: 0, 90, 180, 270")
		driver     = flag.String("driver", "term", "driver: spi | term | sim")
		spiPort    = flag.String("spi-port", "", "SPI port name (empty picks the first)")
		fps        = flag.Int("fps", 30, "pattern frames per second")
		pattern    = flag.String("pattern", "index_sweep", "pattern: index_sweep | rgb_channels | row_sweep")
		imagePath  = flag.String("image", "", "blit a JSON image record instead of running a pattern")
		addr       = flag.String("addr", "", "serve websocket preview on this address (e.g. :8080)")
		configPath = flag.String("config", "", "path to config.yaml")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	// ---- Effective matrix config (file overrides flags where present) ----
	lc := layout.Config{
		Width:      *width,
		Height:     *height,
		Wiring:     layout.Wiring(*wiring),
		Order:      layout.ColorOrder(*colorOrder),
		Brightness: *brightness,
		FlipH:      *flipH,
		FlipV:      *flipV,
		Rotation:   *rotation,
	}
	eDriver, eFPS, eAddr, eSPI := *driver, *fps, *addr, *spiPort
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		} else {
			mc, err := cfg.Matrix()
			if err != nil {
				log.Fatal().Err(err).Msg("bad matrix config")
			}
			lc = mc
			if cfg.Driver != "" {
				eDriver = cfg.Driver
			}
			if cfg.FPS > 0 {
				eFPS = cfg.FPS
			}
			if cfg.Addr != "" {
				eAddr = cfg.Addr
			}
			if cfg.SPI.Port != "" {
				eSPI = cfg.SPI.Port
			}
		}
	}

	// ---- Output driver ----
	var sinks tee
	switch eDriver {
	case "spi":
		d, err := led.NewNRZ(eSPI, lc.Count())
		if err != nil {
			log.Fatal().Err(err).Msg("spi driver init failed")
		}
		sinks = append(sinks, d)
	case "term":
		d, err := led.NewTerm(lc.Count())
		if err != nil {
			log.Fatal().Err(err).Msg("term driver init failed")
		}
		sinks = append(sinks, d)
	case "sim":
		sinks = append(sinks, &fake.Driver{})
	default:
		log.Fatal().Str("driver", eDriver).Msg("unknown driver")
	}

	var preview *ws.Preview
	if eAddr != "" {
		preview = ws.NewPreview(lc)
		sinks = append(sinks, preview)
		mux := http.NewServeMux()
		mux.HandleFunc("/ws/frames", preview.HandleFrames)
		mux.HandleFunc("/health", preview.HandleHealth)
		go func() {
			log.Info().Str("addr", eAddr).Msg("preview listening")
			if err := http.ListenAndServe(eAddr, mux); err != nil {
				log.Error().Err(err).Msg("preview server stopped")
			}
		}()
	}

	m, err := matrix.New(lc, sinks)
	if err != nil {
		log.Fatal().Err(err).Msg("matrix init failed")
	}
	defer sinks.Close()

	log.Info().
		Int("width", lc.Width).Int("height", lc.Height).
		Str("wiring", string(lc.Wiring)).Str("order", string(lc.Order)).
		Str("driver", eDriver).Msg("matrix ready")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	// ---- Static image mode ----
	if *imagePath != "" {
		img, err := matrix.LoadImage(*imagePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *imagePath).Msg("image load failed")
		}
		if err := m.Blit(img, 0, 0); err != nil {
			log.Fatal().Err(err).Msg("blit failed")
		}
		if err := m.Refresh(true); err != nil {
			log.Fatal().Err(err).Msg("refresh failed")
		}
		<-sig
		return
	}

	// ---- Pattern loop ----
	runner := patterns.NewRunner(patterns.Kind(*pattern))
	ticker := time.NewTicker(time.Second / time.Duration(max(1, eFPS)))
	defer ticker.Stop()
	for {
		select {
		case <-sig:
			log.Info().Msg("shutting down")
			return
		case <-ticker.C:
			if !runner.Step(m) {
				runner = patterns.NewRunner(patterns.Kind(*pattern))
				continue
			}
			if err := m.Refresh(false); err != nil {
				log.Error().Err(err).Msg("refresh failed")
			}
		}
	}
}
