// Command ofdmsyncd runs the OFDM frame synchronizer against a WAV file or
// a live microphone, logging every acquired frame and optionally serving a
// live debug feed over WebSocket.
package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/jeongseonghan/ofdm64sync/internal/config"
	"github.com/jeongseonghan/ofdm64sync/internal/debugobserver"
	"github.com/jeongseonghan/ofdm64sync/internal/display"
	"github.com/jeongseonghan/ofdm64sync/internal/ofdmsync"
	"github.com/jeongseonghan/ofdm64sync/internal/sampleio"
)

func main() {
	if err := run(); err != nil {
		charmlog.Fatal(err)
	}
}

func run() error {
	configPath := pflag.StringP("config", "c", "", "Path to a YAML config file")
	listDevices := pflag.Bool("list-devices", false, "List audio input devices and exit")
	flagCfg := config.Default()
	config.Flags(pflag.CommandLine, &flagCfg)
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	// Re-apply every config flag given on the command line over the file.
	overrides := pflag.NewFlagSet("overrides", pflag.ContinueOnError)
	config.Flags(overrides, &cfg)
	var setErr error
	pflag.CommandLine.Visit(func(f *pflag.Flag) {
		if setErr == nil && overrides.Lookup(f.Name) != nil {
			setErr = overrides.Set(f.Name, f.Value.String())
		}
	})
	if setErr != nil {
		return setErr
	}

	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{ReportTimestamp: true})
	if lvl, err := charmlog.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	if *listDevices {
		return listAudioDevices(logger)
	}

	source, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer source.Close()

	var observer ofdmsync.Observer = ofdmsync.NullObserver{}
	var httpServer *http.Server
	if cfg.DebugListenAddr != "" {
		b := debugobserver.NewBroadcaster(logger.With("component", "debug"))
		observer = b
		mux := http.NewServeMux()
		mux.HandleFunc("/debug", b.ServeHTTP)
		httpServer = &http.Server{Addr: cfg.DebugListenAddr, Handler: mux}
		go func() {
			logger.Info("serving debug feed", "addr", cfg.DebugListenAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("debug server stopped", "err", err)
			}
		}()
	}

	cons := display.NewConstellation(display.ModBPSK)
	frameCount := 0

	callback := func(data []complex64, userCtx any) ofdmsync.Result {
		frameCount++
		evm := display.MeanEVM(cons, data)
		logger.Info("frame acquired", "n", frameCount, "evm", evm)
		return ofdmsync.Continue
	}

	sync := ofdmsync.New(callback, nil, ofdmsync.WithObserver(observer))
	defer sync.Destroy()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	stop := make(chan struct{})
	go func() {
		<-sigCh
		logger.Info("shutting down")
		close(stop)
	}()

	buf := make([]complex64, cfg.FramesPerBuffer)
	for {
		select {
		case <-stop:
			return nil
		default:
		}

		n, err := source.Read(buf)
		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Info("source exhausted", "frames", frameCount)
				return nil
			}
			return fmt.Errorf("ofdmsyncd: read samples: %w", err)
		}
		if n == 0 {
			continue
		}
		if stopped := sync.Execute(buf[:n]); stopped {
			logger.Info("synchronizer requested stop")
			return nil
		}
	}
}

func openSource(cfg config.Config) (sampleio.Source, error) {
	if cfg.WAVPath != "" {
		return sampleio.NewWAVSource(cfg.WAVPath)
	}
	if err := sampleio.InitPortAudio(); err != nil {
		return nil, fmt.Errorf("ofdmsyncd: init portaudio: %w", err)
	}
	return sampleio.NewMicSource(float64(cfg.SampleRate), cfg.FramesPerBuffer)
}

func listAudioDevices(logger *charmlog.Logger) error {
	if err := sampleio.InitPortAudio(); err != nil {
		return fmt.Errorf("ofdmsyncd: init portaudio: %w", err)
	}
	defer sampleio.TerminatePortAudio()

	devices, err := sampleio.ListInputDevices()
	if err != nil {
		return err
	}
	for _, d := range devices {
		logger.Info("input device", "name", d.Name, "channels", d.MaxInputChannels, "rate", d.DefaultSampleRate, "default", d.IsDefault)
	}
	return nil
}
