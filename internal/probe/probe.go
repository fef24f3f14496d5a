// Package probe reads technical stream properties (sample rate, channels,
// duration) from source audio so exported projects can size their
// timelines.
package probe

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hajimehoshi/go-mp3"
	"github.com/mewkiz/flac"

	"github.com/simonhull/dawmark/internal/riff"
	"github.com/simonhull/dawmark/internal/types"
)

// Probe describes data. The container is detected from magic bytes,
// falling back to hint when they are inconclusive.
//
// The returned descriptor always carries Format and Embeddable. Stream
// properties are best effort: when they cannot be read, Probe returns the
// partial descriptor together with the error.
func Probe(data []byte, hint types.Format) (types.Descriptor, error) {
	f := types.DetectFormat(head(data))
	if f == types.FormatUnknown {
		f = hint
	}
	d := types.NewDescriptor(f)

	var err error
	switch f {
	case types.FormatWAV:
		err = probeWAV(data, &d)
	case types.FormatMP3:
		err = probeMP3(data, &d)
	case types.FormatFLAC:
		err = probeFLAC(data, &d)
	case types.FormatOgg:
		err = probeOgg(data, &d)
	case types.FormatM4A:
		err = probeM4A(data, &d)
	}
	return d, err
}

func head(data []byte) []byte {
	return data[:min(len(data), 12)]
}

func probeWAV(data []byte, d *types.Descriptor) error {
	w, err := riff.ParseWave(data)
	if err != nil {
		return err
	}
	*d = w.Descriptor()
	return nil
}

// probeMP3 uses the decoder's frame scan. The decoder always produces
// 16-bit stereo, so the source channel count stays unknown.
func probeMP3(data []byte, d *types.Descriptor) error {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("probe mp3: %w", err)
	}

	d.SampleRate = dec.SampleRate()
	if n := dec.Length(); n > 0 && d.SampleRate > 0 {
		samples := n / 4
		d.Duration = time.Duration(samples) * time.Second / time.Duration(d.SampleRate)
	}
	return nil
}

func probeFLAC(data []byte, d *types.Descriptor) error {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("probe flac: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	d.SampleRate = int(info.SampleRate)
	d.Channels = int(info.NChannels)
	d.BitsPerSample = int(info.BitsPerSample)
	if info.SampleRate > 0 {
		d.Duration = time.Duration(info.NSamples) * time.Second / time.Duration(info.SampleRate)
	}
	return nil
}
