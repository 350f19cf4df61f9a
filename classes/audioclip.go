package classes

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
	"github.com/go-unity/assetkit/bundle"
	"github.com/go-unity/assetkit/errs"
	"github.com/go-unity/assetkit/format"
)

// AudioClip holds a compressed audio payload plus the metadata needed to
// pick a container extension for it (§4.7). Samples() below returns the
// payload keyed by its detected container extension.
type AudioClip struct {
	Name string

	// pre-5 "Low" meta
	Format       int32
	Type3D       bool
	UseHardware  bool

	// ≥5 "High" meta
	LoadType              int32
	Channels              int32
	Frequency             int32
	BitsPerSample         int32
	Length                float32
	IsTrackerFormat       bool
	SubsoundIndex         int32
	PreloadAudioData      bool
	LoadInBackground      bool
	Legacy3D              bool
	CompressionFormat     int32

	Source string
	Offset int64
	Size   int64

	data []byte
}

func readAudioClip(r *binary.Reader, uv format.Version, b *bundle.Bundle, filePath string) (AudioClip, error) {
	var a AudioClip

	var err error
	if a.Name, err = r.AlignedString(); err != nil {
		return a, fmt.Errorf("audioclip name: %w", err)
	}

	if uv.Less(5) {
		if a.Format, err = r.I32(); err != nil {
			return a, fmt.Errorf("audioclip format: %w", err)
		}
		if _, err = r.I32(); err != nil { // fmod sound type
			return a, fmt.Errorf("audioclip fmod sound type: %w", err)
		}
		if a.Type3D, err = r.Bool(); err != nil {
			return a, fmt.Errorf("audioclip 3d: %w", err)
		}
		if a.UseHardware, err = r.Bool(); err != nil {
			return a, fmt.Errorf("audioclip use hardware: %w", err)
		}
		if err := r.Align(4); err != nil {
			return a, fmt.Errorf("audioclip align after hardware flag: %w", err)
		}

		// The discarded stream-location field only exists from 3.2
		// onward; below that, size is the only field here at all.
		if uv.AtLeast(3, 2) {
			if _, err = r.I32(); err != nil { // discarded stream location
				return a, fmt.Errorf("audioclip stream: %w", err)
			}
			size, err := r.I32()
			if err != nil {
				return a, fmt.Errorf("audioclip size: %w", err)
			}
			a.Size = int64(size)

			// If what's left in the object exactly matches the
			// (4-byte rounded) payload size, the audio bytes follow
			// inline; otherwise what follows is a 4-byte offset into
			// this same SerializedFile's own bundle node, the pre-5.0
			// external-resource convention.
			tsize := a.Size
			if tsize%4 != 0 {
				tsize += 4 - tsize%4
			}
			if int64(r.Remaining()) != tsize {
				off, err := r.U32()
				if err != nil {
					return a, fmt.Errorf("audioclip external offset: %w", err)
				}
				a.Offset = int64(off)
				a.Source = filePath
			}
		} else {
			size, err := r.I32()
			if err != nil {
				return a, fmt.Errorf("audioclip size: %w", err)
			}
			a.Size = int64(size)
		}

		if a.Source != "" {
			data, err := resolveStreamed(b, StreamingInfo{Offset: uint32(a.Offset), Size: uint32(a.Size), Path: a.Source})
			if err != nil {
				return a, err
			}
			a.data = data
		} else {
			if a.data, err = r.ReadBytesCopy(int(a.Size)); err != nil {
				return a, fmt.Errorf("audioclip inline data: %w", err)
			}
		}

		return a, nil
	}

	if a.LoadType, err = r.I32(); err != nil {
		return a, fmt.Errorf("audioclip load type: %w", err)
	}
	if a.Channels, err = r.I32(); err != nil {
		return a, fmt.Errorf("audioclip channels: %w", err)
	}
	if a.Frequency, err = r.I32(); err != nil {
		return a, fmt.Errorf("audioclip frequency: %w", err)
	}
	if a.BitsPerSample, err = r.I32(); err != nil {
		return a, fmt.Errorf("audioclip bits per sample: %w", err)
	}
	if a.Length, err = r.F32(); err != nil {
		return a, fmt.Errorf("audioclip length: %w", err)
	}
	if a.IsTrackerFormat, err = r.Bool(); err != nil {
		return a, fmt.Errorf("audioclip tracker format: %w", err)
	}
	if err := r.Align(4); err != nil {
		return a, fmt.Errorf("audioclip align after tracker flag: %w", err)
	}
	if a.SubsoundIndex, err = r.I32(); err != nil {
		return a, fmt.Errorf("audioclip subsound index: %w", err)
	}
	if a.PreloadAudioData, err = r.Bool(); err != nil {
		return a, fmt.Errorf("audioclip preload: %w", err)
	}
	if a.LoadInBackground, err = r.Bool(); err != nil {
		return a, fmt.Errorf("audioclip load in background: %w", err)
	}
	if a.Legacy3D, err = r.Bool(); err != nil {
		return a, fmt.Errorf("audioclip legacy 3d: %w", err)
	}
	if err := r.Align(4); err != nil {
		return a, fmt.Errorf("audioclip align after legacy3d flag: %w", err)
	}

	if a.Source, err = r.AlignedString(); err != nil {
		return a, fmt.Errorf("audioclip resource source: %w", err)
	}
	if a.Offset, err = r.I64(); err != nil {
		return a, fmt.Errorf("audioclip resource offset: %w", err)
	}
	if a.Size, err = r.I64(); err != nil {
		return a, fmt.Errorf("audioclip resource size: %w", err)
	}
	if a.CompressionFormat, err = r.I32(); err != nil {
		return a, fmt.Errorf("audioclip compression format: %w", err)
	}

	data, err := resolveStreamed(b, StreamingInfo{Offset: uint32(a.Offset), Size: uint32(a.Size), Path: a.Source})
	if err != nil {
		return a, err
	}
	a.data = data

	return a, nil
}

// Data returns the raw resolved audio payload.
func (a AudioClip) Data() []byte { return a.data }

// Samples splits the clip's resolved payload into a single-entry map keyed
// by a filename whose extension is guessed from the container's magic
// bytes (§4.7: OggS -> .ogg, RIFF -> .wav, ftyp at offset 4 -> .m4a, else
// .fsb). The clip's data is resolved eagerly at parse time via the owning
// bundle's sibling nodes, so this needs no Environment lookup.
func (a AudioClip) Samples() (map[string][]byte, error) {
	if len(a.data) == 0 {
		return nil, fmt.Errorf("%w: audioclip %q has no resolved data", errs.ErrInvalidValue, a.Name)
	}

	return map[string][]byte{a.Name + audioExtension(a.data): a.data}, nil
}

func audioExtension(data []byte) string {
	switch {
	case len(data) >= 4 && string(data[:4]) == "OggS":
		return ".ogg"
	case len(data) >= 4 && string(data[:4]) == "RIFF":
		return ".wav"
	case len(data) >= 8 && string(data[4:8]) == "ftyp":
		return ".m4a"
	default:
		return ".fsb"
	}
}
