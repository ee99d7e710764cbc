// Package fingerprint assembles a host report from the collector, the
// classifiers and the identity resolver.
package fingerprint

import (
	"context"
	"fmt"

	"codeberg.org/mutker/hwprint/internal/classify"
	"codeberg.org/mutker/hwprint/internal/collector"
	"codeberg.org/mutker/hwprint/internal/errors"
	"codeberg.org/mutker/hwprint/internal/host"
	"codeberg.org/mutker/hwprint/internal/identity"
	"codeberg.org/mutker/hwprint/internal/logger"
)

type Service struct {
	collector *collector.Collector
	resolver  *identity.Resolver
}

// New builds a service for one host. The host's user agent is captured
// here and reused by every report.
func New(h host.Host, sigs identity.Signatures, cfg collector.Config) (*Service, error) {
	errFactory := errors.New()

	if sigs == nil {
		return nil, errFactory.WithMessage(errors.ErrInvalidArgument, "nil signature library")
	}

	c, err := collector.New(h, cfg)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrInitApp, err)
	}

	return &Service{
		collector: c,
		resolver:  identity.NewResolver(sigs),
	}, nil
}

// Assemble reads fresh signals and builds one report. Unavailable signals
// become "unknown"; only a fault outside the signal boundaries is returned
// as an error.
func (s *Service) Assemble(ctx context.Context) (report *Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			report = nil
			err = errors.New().Wrap(errors.ErrAssemble, fmt.Errorf("%v", r))
		}
	}()

	raw := s.collector.Collect(ctx)

	cpu := classify.ClassifyCPU(raw)
	gpu := classify.ClassifyGPU(raw)
	memory := classify.ClassifyMemory(raw)
	battery := classify.ClassifyBattery(raw)
	screen := classify.ClassifyScreen(raw)
	device := s.resolver.Identify(raw.UserAgent, raw.Platform, gpu, screen)

	report = &Report{
		Arch:             cpu.Arch,
		Cores:            cpu.Cores,
		GPU:              gpu.Renderer,
		Vendor:           gpu.Vendor,
		Memory:           memory,
		ChargingStatus:   battery.ChargingStatus,
		BatteryLevel:     battery.LevelPercent,
		ChargingTime:     battery.ChargingTime,
		DischargingTime:  battery.DischargingTime,
		Width:            screen.Width,
		Height:           screen.Height,
		ColorDepth:       screen.ColorDepth,
		IsTouchEnabled:   screen.TouchEnabled,
		IsVirtualMachine: device.IsVirtualMachine,
		IsLaptop:         device.IsLaptop,
		IsMobileDevice:   device.IsMobile,
		IsGameConsole:    device.IsGameConsole,
		Name:             device.Name,
	}

	logger.Debug().
		Str("name", report.Name).
		Str("arch", report.Arch).
		Bool("mobile", report.IsMobileDevice).
		Bool("virtual_machine", report.IsVirtualMachine).
		Msg("Report assembled")

	return report, nil
}

// Deliver assembles a report and hands it to sink under the given session
// label.
func (s *Service) Deliver(ctx context.Context, sink Sink, session string) (*Report, error) {
	report, err := s.Assemble(ctx)
	if err != nil {
		return nil, err
	}

	if err := sink.Save(ctx, session, report); err != nil {
		return report, errors.New().Wrap(errors.ErrSaveReport, err)
	}

	return report, nil
}
