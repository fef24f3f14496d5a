package dawmark

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/dawmark/internal/convert"
	"github.com/simonhull/dawmark/internal/daw"
	"github.com/simonhull/dawmark/internal/fetch"
	"github.com/simonhull/dawmark/internal/id3"
	"github.com/simonhull/dawmark/internal/markers"
	"github.com/simonhull/dawmark/internal/naming"
	"github.com/simonhull/dawmark/internal/packaging"
	"github.com/simonhull/dawmark/internal/probe"
	"github.com/simonhull/dawmark/internal/registry"
	"github.com/simonhull/dawmark/internal/riff"
	"github.com/simonhull/dawmark/internal/types"

	// Registers the MIDI emitter for its target and the fallback package.
	_ "github.com/simonhull/dawmark/internal/midi"
)

// Fetcher retrieves source audio by locator.
//
// The default implementation speaks http, https and file URLs.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
	// FetchRange is used to sniff the container when the locator has no
	// recognisable extension and the full body is not needed.
	FetchRange(ctx context.Context, locator string, offset, length int64) ([]byte, error)
}

// ConversionRequest is an alias to convert.Request.
type ConversionRequest = convert.Request

// Converter turns a non-WAV source into a WAV file with embedded cues.
// NewConverter returns the HTTP implementation.
type Converter interface {
	Convert(ctx context.Context, req ConversionRequest) ([]byte, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(ctx context.Context, req ConversionRequest) ([]byte, error)

// Convert calls f.
func (f ConverterFunc) Convert(ctx context.Context, req ConversionRequest) ([]byte, error) {
	return f(ctx, req)
}

// Packager bundles several artifacts into one download named after name.
type Packager interface {
	Package(ctx context.Context, name string, files []Artifact) (Artifact, error)
}

// Source is the audio an export is made from. Data wins over URL when
// both are set.
type Source struct {
	URL  string
	Data []byte
	// Name is the caller's filename for the audio, if known. It takes
	// precedence over the URL when naming the bundled audio copy.
	Name string
}

// Request is one export.
type Request struct {
	Source       Source
	Annotations  []Annotation
	ProjectTitle string
	Target       Target
}

// Result is the outcome of an export.
type Result struct {
	// Download is the single file to hand to the user: the only artifact,
	// or the package bundling all of them.
	Download Artifact
	// Artifacts lists the files produced before packaging.
	Artifacts  []Artifact
	Descriptor Descriptor
	Markers    []Marker
	// Degraded is set when the requested artifact could not be produced
	// and a marker-only fallback package was returned instead.
	Degraded bool
	Reason   string
	Trace    []Transition
}

// Exporter runs exports. It holds configuration only and is safe for
// concurrent use.
type Exporter struct {
	opts *exportOptions
}

// New creates an Exporter.
//
// Example:
//
//	ex := dawmark.New(dawmark.WithLogger(logger))
//	res, err := ex.Export(ctx, dawmark.Request{
//	    Source:       dawmark.Source{URL: audioURL},
//	    Annotations:  annotations,
//	    ProjectTitle: "My Mix",
//	    Target:       dawmark.TargetEmbeddedCues,
//	})
func New(opts ...Option) *Exporter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.fetcher == nil {
		o.fetcher = fetch.New()
	}
	if o.packager == nil {
		o.packager = packaging.NewZip()
	}
	return &Exporter{opts: o}
}

// Export produces the artifacts for one target.
//
// Export only returns an error when nothing usable can be produced: an
// invalid request, a WAV source whose structure is broken (*FormatError,
// *StructureError), a failed download under WithStrictFetch (*FetchError),
// a packaging failure, or a cancelled context. A failed download or
// conversion otherwise degrades to a marker-only package with
// Result.Degraded set.
func (e *Exporter) Export(ctx context.Context, req Request) (*Result, error) {
	target, err := validate(req)
	if err != nil {
		return nil, err
	}
	req.Target = target

	src := e.load(ctx, req.Source, needsAudio(target))
	return e.run(ctx, req, src)
}

// ExportAll produces several targets from one request. The source is
// downloaded once and shared. Results are returned in target order; the
// first error cancels the remaining targets.
func (e *Exporter) ExportAll(ctx context.Context, req Request, targets ...Target) ([]*Result, error) {
	if len(targets) == 0 {
		return nil, nil
	}

	need := false
	resolved := make([]Target, len(targets))
	for i, t := range targets {
		r := req
		r.Target = t
		target, err := validate(r)
		if err != nil {
			return nil, err
		}
		resolved[i] = target
		need = need || needsAudio(target)
	}

	src := e.load(ctx, req.Source, need)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.concurrency)

	results := make([]*Result, len(resolved))
	for i, t := range resolved {
		g.Go(func() error {
			r := req
			r.Target = t
			res, err := e.run(ctx, r, src)
			if err != nil {
				return fmt.Errorf("%s: %w", t, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func validate(req Request) (Target, error) {
	if req.Source.URL == "" && len(req.Source.Data) == 0 {
		return "", ErrEmptySource
	}
	t, err := types.ParseTarget(string(req.Target))
	if err != nil {
		return "", err
	}
	return t, nil
}

// needsAudio reports whether a target reads or bundles the source bytes.
func needsAudio(t Target) bool {
	if t.Embeds() {
		return true
	}
	entry, _ := registry.Get(t)
	return entry.BundleAudio
}

// loaded is the outcome of reading a Source.
type loaded struct {
	data   []byte // nil when not needed or when the download failed
	header []byte // leading bytes for sniffing, when read
	err    error  // download failure
}

func (e *Exporter) load(ctx context.Context, s Source, full bool) loaded {
	if len(s.Data) > 0 {
		return loaded{data: s.Data, header: s.Data[:min(len(s.Data), SniffSize)]}
	}

	log := e.opts.logger.With("url", fetch.Redact(s.URL))
	ctx, cancel := context.WithTimeout(ctx, e.opts.fetchTimeout)
	defer cancel()

	if full {
		start := time.Now()
		data, err := e.opts.fetcher.Fetch(ctx, s.URL)
		if err != nil {
			var fe *FetchError
			if !errors.As(err, &fe) {
				err = &FetchError{URL: fetch.Redact(s.URL), Err: err}
			}
			return loaded{err: err}
		}
		log.Debug("fetched source", "bytes", len(data), "elapsed", time.Since(start))
		return loaded{data: data, header: data[:min(len(data), SniffSize)]}
	}

	if Sniff(sniffLocator(s), nil).Format != FormatUnknown {
		return loaded{}
	}
	header, err := e.opts.fetcher.FetchRange(ctx, s.URL, 0, SniffSize)
	if err != nil {
		// Only the descriptor suffers; sidecar targets still render.
		log.Warn("sniff read failed", "error", err)
		return loaded{}
	}
	return loaded{header: header}
}

// sniffLocator prefers the caller's filename when it names a format.
func sniffLocator(s Source) string {
	if types.FormatFromLocator(s.Name) != types.FormatUnknown {
		return s.Name
	}
	return s.URL
}

// job carries the state of one target's export.
type job struct {
	e       *Exporter
	req     Request
	m       *machine
	markers []Marker
	data    []byte
	desc    Descriptor
	session types.Session
	base    string // package and sidecar stem
	names   naming.Set
}

func (e *Exporter) run(ctx context.Context, req Request, src loaded) (*Result, error) {
	m := newMachine(e.opts.logger, req.Target)
	if err := ctx.Err(); err != nil {
		return nil, m.fail(ctx, err)
	}

	j := &job{
		e:       e,
		req:     req,
		m:       m,
		markers: markers.Build(req.Annotations),
		data:    src.data,
	}

	j.desc = Sniff(sniffLocator(req.Source), src.header)
	if j.data != nil {
		j.desc = e.probe(j.data, j.desc)
	}
	audioName := naming.AudioName(req.Source.Name, req.Source.URL, req.ProjectTitle, j.desc.Format)
	j.base = naming.Sanitize(req.ProjectTitle)
	if j.base == "" {
		j.base = naming.Stem(audioName)
	}
	j.session = types.Session{
		Name:       req.ProjectTitle,
		AudioFile:  audioName,
		Duration:   j.desc.Duration,
		SampleRate: j.desc.SampleRate,
	}
	m.to(ctx, StateSniff, j.desc.String())

	switch t := req.Target; {
	case src.err != nil:
		if e.opts.strictFetch {
			return nil, m.fail(ctx, src.err)
		}
		return j.fallback(ctx, src.err.Error())
	case t == TargetEmbeddedCues && j.desc.Embeddable:
		m.to(ctx, StateEmbed, "wav source takes cue chunks")
		return j.embedCues(ctx)
	case t == TargetEmbeddedCues:
		m.to(ctx, StateConvert, fmt.Sprintf("%s source cannot carry cue chunks", j.desc.Format))
		return j.convert(ctx)
	case t == TargetID3Markers && j.desc.Format == FormatMP3:
		m.to(ctx, StateEmbed, "mp3 source takes an ID3 comment")
		return j.tagID3(ctx)
	case t == TargetID3Markers:
		return j.fallback(ctx, fmt.Sprintf("%s source cannot carry ID3 tags", j.desc.Format))
	default:
		m.to(ctx, StateTextOnly, "sidecar target")
		return j.textOnly(ctx)
	}
}

// probe fills stream properties from the source bytes. The sniffed
// format is kept.
func (e *Exporter) probe(data []byte, d Descriptor) Descriptor {
	p, err := probe.Probe(data, d.Format)
	if err != nil {
		e.opts.logger.Debug("probe incomplete", "format", d.Format, "error", err)
	}
	d.SampleRate = p.SampleRate
	d.Channels = p.Channels
	d.BitsPerSample = p.BitsPerSample
	d.Duration = p.Duration
	return d
}

func (j *job) embedCues(ctx context.Context) (*Result, error) {
	out, err := riff.EmbedCues(j.data, j.markers, j.e.opts.defaultSampleRate)
	if err != nil {
		return nil, j.m.fail(ctx, err)
	}
	a := Artifact{
		Name:      j.names.Claim(j.session.AudioFile),
		MediaType: FormatWAV.MediaType(),
		Data:      out,
	}
	return j.pack(ctx, a)
}

func (j *job) tagID3(ctx context.Context) (*Result, error) {
	out, err := id3.Tag(j.data, j.markers, j.session.Title())
	if err != nil {
		return nil, j.m.fail(ctx, err)
	}
	a := Artifact{
		Name:      j.names.Claim(j.session.AudioFile),
		MediaType: FormatMP3.MediaType(),
		Data:      out,
	}
	return j.pack(ctx, a)
}

func (j *job) convert(ctx context.Context) (*Result, error) {
	if j.e.opts.converter == nil {
		return j.fallback(ctx, ErrNoConverter.Error())
	}

	name := naming.Stem(j.session.AudioFile) + FormatWAV.Extension()
	req := convert.NewRequest(j.data, j.desc.Format, name, j.markers)
	out, err := j.e.convertWithRetry(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, j.m.fail(ctx, ctx.Err())
		}
		return j.fallback(ctx, err.Error())
	}

	return j.pack(ctx, Artifact{
		Name:      j.names.Claim(name),
		MediaType: FormatWAV.MediaType(),
		Data:      out,
	})
}

func (j *job) textOnly(ctx context.Context) (*Result, error) {
	entry, ok := registry.Get(j.req.Target)
	if !ok {
		return nil, j.m.fail(ctx, fmt.Errorf("no emitters registered for %q", j.req.Target))
	}

	files := j.render(entry.Emitters)
	if entry.BundleAudio && j.data != nil {
		files = append(files, j.audioCopy())
	}
	return j.pack(ctx, files...)
}

// fallback emits every sidecar format, an instructions document and the
// unmodified audio when it was downloaded.
func (j *job) fallback(ctx context.Context, reason string) (*Result, error) {
	j.m.to(ctx, StateFallback, reason)

	entry, _ := registry.Get(registry.FallbackTarget)
	files := j.render(entry.Emitters)
	if j.data != nil {
		files = append(files, j.audioCopy())
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	doc := daw.Instructions(j.markers, j.session, daw.Manifest{
		Files:    names,
		Degraded: true,
		Reason:   reason,
	})
	files = append(files, Artifact{
		Name:      j.names.Claim(j.base + daw.SuffixInstructions),
		MediaType: types.MediaTypeText,
		Data:      []byte(doc),
	})

	res, err := j.pack(ctx, files...)
	if err != nil {
		return nil, err
	}
	res.Degraded = true
	res.Reason = reason
	return res, nil
}

func (j *job) render(emitters []registry.Emitter) []Artifact {
	files := make([]Artifact, 0, len(emitters)+2)
	for _, em := range emitters {
		files = append(files, Artifact{
			Name:      j.names.Claim(j.base + em.Suffix),
			MediaType: em.MediaType,
			Data:      em.Render(j.markers, j.session),
		})
	}
	return files
}

// audioCopy returns the source bytes unchanged under the name the
// sidecar files reference.
func (j *job) audioCopy() Artifact {
	return Artifact{
		Name:      j.names.Claim(j.session.AudioFile),
		MediaType: j.desc.Format.MediaType(),
		Data:      j.data,
	}
}

func (j *job) pack(ctx context.Context, files ...Artifact) (*Result, error) {
	res := &Result{
		Artifacts:  files,
		Descriptor: j.desc,
		Markers:    j.markers,
	}

	if len(files) == 1 {
		j.m.to(ctx, StatePackage, "single artifact")
		res.Download = files[0]
	} else {
		j.m.to(ctx, StatePackage, fmt.Sprintf("bundling %d files", len(files)))
		a, err := j.e.opts.packager.Package(ctx, j.base, files)
		if err != nil {
			return nil, j.m.fail(ctx, fmt.Errorf("package: %w", err))
		}
		res.Download = a
	}

	j.m.to(ctx, StateDone, res.Download.Name)
	res.Trace = j.m.trace
	return res, nil
}

// convertWithRetry calls the converter until it succeeds, the error is
// not worth retrying, or the attempts run out.
func (e *Exporter) convertWithRetry(ctx context.Context, req ConversionRequest) ([]byte, error) {
	var (
		attempts int
		lastErr  error
	)
	for tries := range e.opts.retries {
		if tries > 0 {
			e.waitForRetry(ctx, tries-1)
		}
		if err := ctx.Err(); err != nil {
			if lastErr == nil {
				lastErr = err
			}
			break
		}

		attempts++
		out, err := e.convertOnce(ctx, req)
		if err == nil {
			return out, nil
		}
		lastErr = err
		e.opts.logger.Warn("conversion attempt failed",
			"attempt", attempts,
			"max", e.opts.retries,
			"error", err,
		)
		if !retryable(err) {
			break
		}
	}
	return nil, &ConversionError{Attempts: attempts, Err: lastErr}
}

func (e *Exporter) convertOnce(ctx context.Context, req ConversionRequest) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.opts.conversionTimeout)
	defer cancel()

	out, err := e.opts.converter.Convert(ctx, req)
	if err != nil {
		return nil, err
	}
	if _, err := riff.ParseWave(out); err != nil {
		return nil, fmt.Errorf("converted audio is not a usable WAV: %w", err)
	}
	return out, nil
}

func (e *Exporter) waitForRetry(ctx context.Context, tries int) {
	cooldown := e.opts.cooldown * math.Pow(e.opts.exponent, float64(tries))
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
	}
}

// retryable reports whether another conversion attempt may succeed.
// Client errors from the service are final.
func retryable(err error) bool {
	var se *convert.StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return true
}
