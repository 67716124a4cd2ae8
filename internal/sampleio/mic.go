package sampleio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// MicSource captures mono audio from the default input device and hands
// back complex64 samples with the imaginary part held at zero — a
// microphone has no I/Q pair, which is exactly the "raw I/O source" the
// synchronizer core treats as an opaque collaborator (spec section 1).
// Structure adapted from the teacher's internal/audio.AudioIO: open a
// default stream into a fixed-size float32 buffer, mutex-guard start/stop.
type MicSource struct {
	stream *portaudio.Stream
	buf    []float32
	mu     sync.Mutex
}

// DeviceInfo describes one audio device, adapted from the teacher's
// internal/audio.DeviceInfo.
type DeviceInfo struct {
	Name              string
	MaxInputChannels  int
	DefaultSampleRate float64
	IsDefault         bool
}

// InitPortAudio initializes the PortAudio library; call once before
// constructing any MicSource.
func InitPortAudio() error {
	return portaudio.Initialize()
}

// TerminatePortAudio releases the PortAudio library.
func TerminatePortAudio() error {
	return portaudio.Terminate()
}

// ListInputDevices returns every device with at least one input channel.
func ListInputDevices() ([]DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("sampleio: list devices: %w", err)
	}
	defaultIn, err := portaudio.DefaultInputDevice()
	if err != nil {
		return nil, fmt.Errorf("sampleio: default input device: %w", err)
	}

	var result []DeviceInfo
	for _, d := range devices {
		if d.MaxInputChannels == 0 {
			continue
		}
		result = append(result, DeviceInfo{
			Name:              d.Name,
			MaxInputChannels:  d.MaxInputChannels,
			DefaultSampleRate: d.DefaultSampleRate,
			IsDefault:         d.Name == defaultIn.Name,
		})
	}
	return result, nil
}

// NewMicSource opens the default input device at sampleRate, with
// framesPerBuf samples per internal read.
func NewMicSource(sampleRate float64, framesPerBuf int) (*MicSource, error) {
	buf := make([]float32, framesPerBuf)
	stream, err := portaudio.OpenDefaultStream(1, 0, sampleRate, framesPerBuf, buf)
	if err != nil {
		return nil, fmt.Errorf("sampleio: open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("sampleio: start input stream: %w", err)
	}
	return &MicSource{stream: stream, buf: buf}, nil
}

// Read implements Source. buf must have capacity for at least one internal
// frame; Read blocks until one PortAudio buffer's worth of samples is
// available, then copies up to len(buf) of them out (any remainder is
// dropped rather than buffered, trading completeness for the core's
// never-block contract downstream).
func (m *MicSource) Read(buf []complex64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.stream.Read(); err != nil {
		return 0, fmt.Errorf("sampleio: read input stream: %w", err)
	}
	n := len(m.buf)
	if n > len(buf) {
		n = len(buf)
	}
	for i := 0; i < n; i++ {
		buf[i] = complex(m.buf[i], 0)
	}
	return n, nil
}

// Close implements Source.
func (m *MicSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stream == nil {
		return nil
	}
	if err := m.stream.Stop(); err != nil {
		m.stream.Close()
		m.stream = nil
		return fmt.Errorf("sampleio: stop input stream: %w", err)
	}
	err := m.stream.Close()
	m.stream = nil
	return err
}
