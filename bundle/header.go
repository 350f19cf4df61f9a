package bundle

import (
	"fmt"
	"strconv"

	"github.com/go-unity/assetkit/binary"
	"github.com/go-unity/assetkit/errs"
)

// signature is the only bundle container kind assetkit decodes (§4.3,
// §6 "Bundle signature set accepted").
const signature = "UnityFS"

// Header is the fixed-shape preamble of a UnityFS bundle (§4.3 steps 1-2).
type Header struct {
	Signature     string
	FormatVersion uint32
	EngineVersion string
	EngineRevision string

	TotalSize           int64
	CompressedDirSize   uint32
	UncompressedDirSize uint32
	Flags               uint32
}

func parseHeader(r *binary.Reader) (Header, error) {
	var h Header

	sig, err := r.NullTerminatedString()
	if err != nil {
		return h, fmt.Errorf("bundle: read signature: %w", err)
	}
	if sig != signature {
		return h, errs.NewUnsupportedFileType(sig)
	}
	h.Signature = sig

	versionStr, err := r.NullTerminatedString()
	if err != nil {
		return h, fmt.Errorf("bundle: read format version: %w", err)
	}
	version, err := strconv.ParseUint(versionStr, 10, 32)
	if err != nil {
		return h, fmt.Errorf("%w: format version %q is not numeric", errs.ErrInvalidValue, versionStr)
	}
	h.FormatVersion = uint32(version)

	if h.EngineVersion, err = r.NullTerminatedString(); err != nil {
		return h, fmt.Errorf("bundle: read engine version: %w", err)
	}
	if h.EngineRevision, err = r.NullTerminatedString(); err != nil {
		return h, fmt.Errorf("bundle: read engine revision: %w", err)
	}

	if h.TotalSize, err = r.I64(); err != nil {
		return h, fmt.Errorf("bundle: read total size: %w", err)
	}
	if h.CompressedDirSize, err = r.U32(); err != nil {
		return h, fmt.Errorf("bundle: read compressed directory size: %w", err)
	}
	if h.UncompressedDirSize, err = r.U32(); err != nil {
		return h, fmt.Errorf("bundle: read uncompressed directory size: %w", err)
	}
	if h.Flags, err = r.U32(); err != nil {
		return h, fmt.Errorf("bundle: read flags: %w", err)
	}

	if h.FormatVersion >= 7 {
		if err := r.Align(16); err != nil {
			return h, fmt.Errorf("bundle: align after header: %w", err)
		}
	}

	return h, nil
}
