package portaudio

import (
	"context"
	"fmt"

	pa "github.com/gordonklaus/portaudio"

	"github.com/kbukum/voicefeedback/component"
	apperrors "github.com/kbukum/voicefeedback/errors"
	"github.com/kbukum/voicefeedback/logger"
)

const componentName = "portaudio"

var (
	_ component.Component   = (*Host)(nil)
	_ component.Describable = (*Host)(nil)
)

// Host owns the PortAudio library lifetime. The library is initialized on
// first use or on Start, and terminated on Stop.
type Host struct {
	lib *component.Lazy
	cfg Config
	log *logger.Logger
}

// NewHost returns a Host for cfg.
func NewHost(cfg Config, log *logger.Logger) *Host {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	h := &Host{cfg: cfg, log: log.WithComponent(componentName)}
	h.lib = component.NewLazy(componentName, func(context.Context) error {
		return pa.Initialize()
	}).WithClose(pa.Terminate).WithCheck(func(context.Context) error {
		_, err := pa.DefaultInputDevice()
		return err
	})
	return h
}

// Name implements component.Component.
func (h *Host) Name() string { return componentName }

// Start initializes PortAudio. A host without an audio stack is not fatal
// here: the failure is logged, Health reports it, and capture.Start answers
// UnsupportedPlatform.
func (h *Host) Start(ctx context.Context) error {
	if err := h.lib.Init(ctx); err != nil {
		h.log.Warn("PortAudio unavailable", logger.ErrorFields("initialize", err))
		return nil
	}
	h.log.Debug("PortAudio initialized", map[string]interface{}{"version": pa.VersionText()})
	return nil
}

// Stop terminates PortAudio.
func (h *Host) Stop(context.Context) error {
	return h.lib.Close()
}

// Health reports whether an input device is available.
func (h *Host) Health(ctx context.Context) component.Health {
	if err := h.lib.Check(ctx); err != nil {
		return component.Health{Name: componentName, Status: component.StatusUnhealthy, Message: err.Error()}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}

// Describe implements component.Describable.
func (h *Host) Describe() component.Description {
	details := fmt.Sprintf("%d Hz, %d channel(s)", h.cfg.SampleRate, h.cfg.Channels)
	if h.lib.Ready() {
		if dev, err := pa.DefaultInputDevice(); err == nil {
			details = dev.Name + ", " + details
		}
	}
	return component.Description{Name: "PortAudio", Type: "audio", Details: details}
}

// Device returns the default microphone as a capture.Device.
func (h *Host) Device() *Device {
	return &Device{host: h, cfg: h.cfg}
}

// Player returns the default speaker as a capture.Player.
func (h *Host) Player() *Player {
	return &Player{host: h, framesPerBuffer: h.cfg.FramesPerBuffer}
}

// ready initializes PortAudio lazily; failures mean the platform cannot
// capture audio.
func (h *Host) ready(ctx context.Context) error {
	if err := h.lib.Init(ctx); err != nil {
		return apperrors.UnsupportedPlatform(err)
	}
	return nil
}
