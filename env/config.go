package env

import (
	"fmt"

	"github.com/go-unity/assetkit/compress"
	"github.com/go-unity/assetkit/errs"
	"github.com/go-unity/assetkit/internal/options"
)

// config holds Environment's construction-time settings, built from opts by
// New (§4.10).
type config struct {
	imageCacheCodec     compress.Codec
	imageCacheThreshold int
	guidIndexEnabled    bool
}

func defaultConfig() *config {
	return &config{
		imageCacheCodec:     compress.NewNoneImageCacheCodec(),
		imageCacheThreshold: 1 << 20, // 1MiB: small textures stay raw
		guidIndexEnabled:    true,
	}
}

// Option configures an Environment at construction time (§4.10), following
// the teacher's functional-option style.
type Option = options.Option[*config]

// WithImageCacheCodec sets the codec used to hold cold decoded-image cache
// entries. The default is the identity codec (no compression).
func WithImageCacheCodec(codec compress.Codec) Option {
	return options.New(func(c *config) error {
		if codec == nil {
			return fmt.Errorf("%w: image cache codec must not be nil", errs.ErrInvalidValue)
		}
		c.imageCacheCodec = codec
		return nil
	})
}

// WithZstdImageCache selects the klauspost/compress zstd codec for cold
// decoded-image cache entries.
func WithZstdImageCache() Option {
	return options.NoError(func(c *config) {
		c.imageCacheCodec = compress.NewZstdImageCacheCodec()
	})
}

// WithS2ImageCache selects the klauspost/compress S2 codec, trading
// compression ratio for faster cache hits.
func WithS2ImageCache() Option {
	return options.NoError(func(c *config) {
		c.imageCacheCodec = compress.NewS2ImageCacheCodec()
	})
}

// WithImageCacheThreshold sets the minimum decoded-image size, in bytes,
// before an entry is held compressed rather than raw.
func WithImageCacheThreshold(bytes int) Option {
	return options.New(func(c *config) error {
		if bytes < 0 {
			return fmt.Errorf("%w: image cache threshold must be >= 0", errs.ErrInvalidValue)
		}
		c.imageCacheThreshold = bytes
		return nil
	})
}

// WithGUIDIndex enables or disables the xxhash secondary index from
// external-reference GUIDs to their resolved bundle. Enabled by default;
// callers that only ever load a single bundle can disable it to skip the
// bookkeeping.
func WithGUIDIndex(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.guidIndexEnabled = enabled
	})
}
