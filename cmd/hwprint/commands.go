package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"codeberg.org/mutker/hwprint/internal/config"
	"codeberg.org/mutker/hwprint/internal/errors"
	"codeberg.org/mutker/hwprint/internal/fingerprint"
	"codeberg.org/mutker/hwprint/internal/hostprobe"
	"codeberg.org/mutker/hwprint/internal/logger"
	"codeberg.org/mutker/hwprint/internal/payload"
	"codeberg.org/mutker/hwprint/internal/signature"
	"codeberg.org/mutker/hwprint/internal/store"
	"github.com/spf13/pflag"
)

const defaultHistoryLimit = 20

// environment holds what every command needs once flags are parsed.
type environment struct {
	cfg  *config.Config
	sigs *signature.Library
	repo store.Repository
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("hwprint "+name, pflag.ContinueOnError)
	config.AddFlags(fs)
	return fs
}

func setup(fs *pflag.FlagSet) (*environment, error) {
	errFactory := errors.New()

	cfg, err := config.Load(fs)
	if err != nil {
		return nil, err
	}
	logger.SetLogLevel(cfg.Level())
	logger.Debug().
		Str("log_level", cfg.LogLevel).
		Dur("battery_timeout", cfg.BatteryTimeout).
		Bool("store", cfg.Store).
		Msg("Config loaded")

	sigs, err := signature.Load(cfg.Signatures)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrInitApp, err)
	}

	repo, err := store.New(cfg.StoreConfig(), logger.Get())
	if err != nil {
		return nil, err
	}

	return &environment{
		cfg:  cfg,
		sigs: sigs,
		repo: repo,
	}, nil
}

func (e *environment) Close() {
	if err := e.repo.Close(); err != nil {
		logger.Error().Err(err).Msg("Failed to close report store")
	}
}

func (e *environment) encoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	if e.cfg.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc
}

func runClassify(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	errFactory := errors.New()

	fs := newFlagSet("classify")
	session := fs.String("session", "", "Session label (default: the payload's session)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return errFactory.Wrap(errors.ErrUsage, err)
	}
	if fs.NArg() > 1 {
		return errFactory.WithMessage(errors.ErrUsage, "classify takes at most one input file")
	}

	env, err := setup(fs)
	if err != nil {
		return err
	}
	defer env.Close()

	in := stdin
	if path := fs.Arg(0); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return errFactory.Wrap(errors.ErrDecodePayload, err)
		}
		defer f.Close()
		in = f
	}

	docs, err := payload.Decode(in)
	if err != nil {
		return err
	}

	enc := env.encoder(stdout)
	for i, doc := range docs {
		label := doc.Session
		if *session != "" {
			label = *session
		}

		svc, err := fingerprint.New(doc.Host(), env.sigs, env.cfg.CollectorConfig())
		if err != nil {
			return err
		}

		report, err := svc.Deliver(ctx, env.repo, label)
		if err != nil {
			return err
		}

		logger.Info().
			Int("document", i).
			Str("session", label).
			Str("name", report.Name).
			Msg("Payload classified")

		if err := enc.Encode(report); err != nil {
			return errFactory.Wrap(errors.ErrEncodeReport, err)
		}
	}

	return nil
}

func runProbe(ctx context.Context, args []string, _ io.Reader, stdout io.Writer) error {
	errFactory := errors.New()

	fs := newFlagSet("probe")
	session := fs.String("session", "local", "Session label for the stored report")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return errFactory.Wrap(errors.ErrUsage, err)
	}

	env, err := setup(fs)
	if err != nil {
		return err
	}
	defer env.Close()

	probe, err := hostprobe.Open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := probe.Close(); err != nil {
			logger.Debug().Err(err).Msg("Failed to release NVML")
		}
	}()

	svc, err := fingerprint.New(probe, env.sigs, env.cfg.CollectorConfig())
	if err != nil {
		return err
	}

	report, err := svc.Deliver(ctx, env.repo, *session)
	if err != nil {
		return err
	}

	if err := env.encoder(stdout).Encode(report); err != nil {
		return errFactory.Wrap(errors.ErrEncodeReport, err)
	}

	return nil
}

type historyEntry struct {
	ID         string              `json:"id"`
	Session    string              `json:"session"`
	CapturedAt time.Time           `json:"capturedAt"`
	Report     *fingerprint.Report `json:"report"`
}

func runHistory(ctx context.Context, args []string, _ io.Reader, stdout io.Writer) error {
	errFactory := errors.New()

	fs := newFlagSet("history")
	limit := fs.Int("limit", defaultHistoryLimit, "Number of records to list (0 lists all)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return errFactory.Wrap(errors.ErrUsage, err)
	}

	env, err := setup(fs)
	if err != nil {
		return err
	}
	defer env.Close()

	if !env.cfg.Store {
		logger.Warn().Msg("Report store is disabled; nothing to list")
		return nil
	}

	records, err := env.repo.List(ctx, *limit)
	if err != nil {
		return err
	}

	enc := env.encoder(stdout)
	for _, rec := range records {
		if err := enc.Encode(historyEntry{
			ID:         rec.ID,
			Session:    rec.Session,
			CapturedAt: rec.CapturedAt,
			Report:     rec.Report,
		}); err != nil {
			return errFactory.Wrap(errors.ErrEncodeReport, err)
		}
	}

	return nil
}
