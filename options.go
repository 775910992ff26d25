package dscheck

import (
	"io"
	"os"
)

// traceFileEnv is the environment variable that, when set, makes Trace
// collect every explored schedule and write them all to the named path on
// exit. Setting it implies WithRecordTraces(true): recording stays on while a
// trace file path is in effect, even if WithRecordTraces(false) is passed;
// only WithTraceFile("") clears the path and with it the implied recording.
const traceFileEnv = "dscheck_trace_file"

// explorerOptions holds the resolved configuration for an Explorer.
type explorerOptions struct {
	logger           Logger
	traceWriter      io.Writer
	recordTraces     bool
	traceFile        string
	maxInterleavings int
}

// --- Explorer Options ---

// Option configures an Explorer instance.
type Option interface {
	applyExplorer(*explorerOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyExplorerFunc func(*explorerOptions) error
}

func (o *optionImpl) applyExplorer(opts *explorerOptions) error {
	return o.applyExplorerFunc(opts)
}

// WithLogger sets the structured logger used for driver/explorer/scheduler
// diagnostics. The default is NewNoOpLogger().
func WithLogger(logger Logger) Option {
	return &optionImpl{func(opts *explorerOptions) error {
		if logger == nil {
			logger = NewNoOpLogger()
		}
		opts.logger = logger
		return nil
	}}
}

// WithTraceWriter sets the sink that per-interleaving trace text and the
// final "explored N interleavings and M states" summary are printed to.
// A nil writer (the default) disables per-interleaving printing.
func WithTraceWriter(w io.Writer) Option {
	return &optionImpl{func(opts *explorerOptions) error {
		opts.traceWriter = w
		return nil
	}}
}

// WithRecordTraces enables or disables collection of every explored
// schedule for later retrieval via Explorer.RecordedTraces. Recording is
// always on while a trace file path is set (by WithTraceFile or the
// dscheck_trace_file environment variable), whatever is passed here.
func WithRecordTraces(enabled bool) Option {
	return &optionImpl{func(opts *explorerOptions) error {
		opts.recordTraces = enabled
		return nil
	}}
}

// WithTraceFile overrides the dscheck_trace_file environment variable,
// naming a path that the full set of explored schedules is written to when
// Trace returns. An empty string disables the file dump.
func WithTraceFile(path string) Option {
	return &optionImpl{func(opts *explorerOptions) error {
		opts.traceFile = path
		return nil
	}}
}

// WithMaxInterleavings bounds the number of completed interleavings the
// exploration will produce before stopping early and returning its partial results.
// Zero (the default) means unbounded: there is no implicit timeout.
func WithMaxInterleavings(n int) Option {
	return &optionImpl{func(opts *explorerOptions) error {
		opts.maxInterleavings = n
		return nil
	}}
}

// resolveOptions applies defaults, then the environment, then the supplied
// options in order, skipping nils.
func resolveOptions(opts []Option) (*explorerOptions, error) {
	cfg := &explorerOptions{
		logger: NewNoOpLogger(),
	}
	if f, ok := os.LookupEnv(traceFileEnv); ok {
		cfg.traceFile = f
		cfg.recordTraces = true
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyExplorer(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.traceFile != "" {
		cfg.recordTraces = true
	}
	return cfg, nil
}
