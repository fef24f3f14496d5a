// Package dawmark exports timestamped annotations on a recording as markers
// that digital audio workstations import.
//
// Annotations are turned into an ordered marker list once, then rendered
// for the requested target: cue points embedded in a copy of a WAV file,
// a Standard MIDI File of SMPTE-timed marker events, a REAPER project, a
// CD cue sheet, a tab-delimited marker list, an Audacity label track, or an
// ID3 comment in an MP3 copy.
//
// # Quick Start
//
// Embedding markers into a WAV file:
//
//	annotations, err := dawmark.DecodeAnnotations(r)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := dawmark.New().Export(ctx, dawmark.Request{
//		Source:       dawmark.Source{URL: audioURL},
//		Annotations:  annotations,
//		ProjectTitle: "My Mix",
//		Target:       dawmark.TargetEmbeddedCues,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.WriteFile(res.Download.Name, res.Download.Data, 0o644)
//
// # Targets
//
//   - embedded-cues: WAV copy with "cue " and LIST/adtl chunks
//   - timeline-project: REAPER .rpp bundled with the audio
//   - midi-markers: format 0 MIDI file with marker meta events
//   - session-markers: CUE sheet bundled with the audio
//   - universal-markers: tab-delimited marker list
//   - label-track: Audacity label track
//   - id3-markers: MP3 copy with the markers in an ID3v2 comment
//
// # Strategy
//
// Each export runs a small state machine:
//
//	start → sniff → {embed | convert | text-only | fallback} → package → done
//
// with failed reachable from every state. Only WAV sources take cue chunks
// directly. Other sources are sent to a Converter when one is configured
// (WithConverter). When conversion or the source download fails, the
// export degrades to a fallback package holding every sidecar format, the
// unmodified audio and an instructions document, and Result.Degraded is
// set. Every transition is recorded in Result.Trace and logged through the
// configured slog.Logger.
//
// When an export produces more than one file they are bundled into a zip
// archive by the Packager.
//
// # Error Handling
//
// Errors are typed and inspected with errors.As:
//
//   - *FormatError: the source is not a valid container for the operation
//   - *StructureError: a required chunk is missing or overruns the buffer
//   - *FetchError: the source could not be downloaded (WithStrictFetch)
//   - *ConversionError: carried in Result.Reason when conversion fails
//
// # Concurrency
//
// An Exporter holds configuration only and may be shared. ExportAll renders
// several targets concurrently from a single download.
package dawmark
