package format

// BlockCompression is the codec bits packed into a bundle block/directory
// flags field (flags & 0x3f).
type BlockCompression uint8

const (
	CompressionNone  BlockCompression = 0
	CompressionLZMA  BlockCompression = 1
	CompressionLZ4   BlockCompression = 2
	CompressionLZ4HC BlockCompression = 3
	CompressionLZHAM BlockCompression = 4
)

func (c BlockCompression) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionLZMA:
		return "LZMA"
	case CompressionLZ4:
		return "LZ4"
	case CompressionLZ4HC:
		return "LZ4HC"
	case CompressionLZHAM:
		return "LZHAM"
	default:
		return "Unknown"
	}
}

// Bundle-level flag bits (StorageBlock.flags / directory flags field).
const (
	FlagCompressionMask    uint32 = 0x3f
	FlagBlocksInfoAtEnd    uint32 = 0x80
	FlagPadBlockInfoAtStart uint32 = 0x200
)

// Block-directory entry flag bits.
const (
	BlockFlagCompressionMask uint16 = 0x3f
	BlockFlagStreamed        uint16 = 0x400
)
