package classes

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
	"github.com/go-unity/assetkit/bundle"
	"github.com/go-unity/assetkit/errs"
)

// StreamingInfo points at a resource's bytes in a sibling bundle node,
// used by Texture2D, Mesh, and AudioClip when their inline data size is 0
// (§4.7).
type StreamingInfo struct {
	Offset uint32
	Size   uint32
	Path   string
}

func readStreamingInfo(r *binary.Reader) (StreamingInfo, error) {
	var si StreamingInfo

	var err error
	if si.Offset, err = r.U32(); err != nil {
		return si, fmt.Errorf("streaming info offset: %w", err)
	}
	if si.Size, err = r.U32(); err != nil {
		return si, fmt.Errorf("streaming info size: %w", err)
	}
	if si.Path, err = r.NullTerminatedString(); err != nil {
		return si, fmt.Errorf("streaming info path: %w", err)
	}

	return si, nil
}

// resolveStreamed looks up si's bytes in b by path basename (§4.7: "resolve
// the body from the sibling node whose path basename equals the
// StreamingInfo.path basename").
func resolveStreamed(b *bundle.Bundle, si StreamingInfo) ([]byte, error) {
	f, ok := b.Find(basename(si.Path))
	if !ok {
		return nil, fmt.Errorf("%w: streamed path %q", errs.ErrStreamingDataMissing, si.Path)
	}

	data := f.Data.Bytes()
	start := int(si.Offset)
	end := start + int(si.Size)
	if start < 0 || end > len(data) {
		return nil, fmt.Errorf("%w: streamed range [%d,%d) exceeds sibling length %d", errs.ErrInvalidValue, start, end, len(data))
	}

	return data[start:end], nil
}

func basename(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' || p[i] == '\\' {
			return p[i+1:]
		}
	}

	return p
}
