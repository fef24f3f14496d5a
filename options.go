package dawmark

import (
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Option configures an Exporter.
//
// Options use the functional options pattern:
//
//	ex := dawmark.New(
//	    dawmark.WithLogger(slog.Default()),
//	    dawmark.WithConverter(dawmark.NewConverter("https://convert.example.com")),
//	)
type Option func(*exportOptions)

type exportOptions struct {
	logger    *slog.Logger
	fetcher   Fetcher
	converter Converter
	packager  Packager

	fetchTimeout      time.Duration
	conversionTimeout time.Duration
	retries           int     // conversion attempts, including the first
	cooldown          float64 // seconds before the first retry
	exponent          float64 // cooldown multiplier per retry

	defaultSampleRate int
	strictFetch       bool
	concurrency       int
}

func defaultOptions() *exportOptions {
	return &exportOptions{
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		fetchTimeout:      30 * time.Second,
		conversionTimeout: 2 * time.Minute,
		retries:           3,
		cooldown:          0.5,
		exponent:          2,
		defaultSampleRate: 44100,
		concurrency:       runtime.NumCPU(),
	}
}

// WithLogger sets the logger for state transitions, retries and
// degradations. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *exportOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFetcher replaces the HTTP fetcher used for Source.URL.
func WithFetcher(f Fetcher) Option {
	return func(o *exportOptions) {
		o.fetcher = f
	}
}

// WithConverter sets the service used to turn non-WAV sources into WAV
// files with embedded cues. Without one, such exports degrade to the
// fallback package.
func WithConverter(c Converter) Option {
	return func(o *exportOptions) {
		o.converter = c
	}
}

// WithPackager replaces the zip packager used when an export produces
// more than one file.
func WithPackager(p Packager) Option {
	return func(o *exportOptions) {
		o.packager = p
	}
}

// WithFetchTimeout bounds the source download. Default is 30s.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *exportOptions) {
		o.fetchTimeout = d
	}
}

// WithConversionTimeout bounds each conversion attempt. Default is 2m.
func WithConversionTimeout(d time.Duration) Option {
	return func(o *exportOptions) {
		o.conversionTimeout = d
	}
}

// WithConversionRetries sets how many times the conversion call is
// attempted in total. Values below 1 mean a single attempt. Default is 3.
func WithConversionRetries(n int) Option {
	return func(o *exportOptions) {
		o.retries = max(n, 1)
	}
}

// WithRetryCooldown sets the wait between conversion attempts: base
// before the first retry, multiplied by exponent for each further one.
// Default is 0.5s and 2.
func WithRetryCooldown(base time.Duration, exponent float64) Option {
	return func(o *exportOptions) {
		o.cooldown = base.Seconds()
		o.exponent = exponent
	}
}

// WithDefaultSampleRate sets the rate used to position cue points when a
// WAV source has no fmt chunk. Default is 44100.
func WithDefaultSampleRate(rate int) Option {
	return func(o *exportOptions) {
		if rate > 0 {
			o.defaultSampleRate = rate
		}
	}
}

// WithStrictFetch makes a failed source download fail the export with a
// *FetchError. By default the export degrades to a marker-only package.
func WithStrictFetch() Option {
	return func(o *exportOptions) {
		o.strictFetch = true
	}
}

// WithConcurrency limits how many targets ExportAll renders at once.
// Default is runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(o *exportOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}
