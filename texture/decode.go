package texture

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/go-unity/assetkit/errs"
	"github.com/go-unity/assetkit/format"
)

// Decode turns a Texture2D's raw ImageData into a tightly packed,
// top-down RGBA8 buffer of width*height*4 bytes (§4.8). Unsupported
// formats return errs.ErrUnimplemented.
func Decode(f format.TextureFormat, data []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", errs.ErrZeroSizeImage, width, height)
	}

	img, err := decodeBottomUp(f, data, width, height)
	if err != nil {
		return nil, err
	}

	flipVertical(img, width, height)

	return img, nil
}

func decodeBottomUp(f format.TextureFormat, data []byte, width, height int) ([]byte, error) {
	switch f {
	case format.TextureFormatAlpha8:
		return decodeAlpha8(data, width, height)
	case format.TextureFormatR8:
		return decodeR8(data, width, height)
	case format.TextureFormatRG16:
		return decodeRG16(data, width, height)
	case format.TextureFormatR16:
		return decodeR16(data, width, height)
	case format.TextureFormatRGB24:
		return decodeRGB24(data, width, height)
	case format.TextureFormatRGBA32:
		return decodeRGBA32(data, width, height)
	case format.TextureFormatARGB32:
		return decodeARGB32(data, width, height)
	case format.TextureFormatBGRA32:
		return decodeBGRA32(data, width, height)
	case format.TextureFormatRGB565:
		return decodeRGB565(data, width, height)
	case format.TextureFormatARGB4444:
		return decodeARGB4444(data, width, height)
	case format.TextureFormatRGBA4444:
		return decodeRGBA4444(data, width, height)
	case format.TextureFormatRFloat:
		return decodeRFloat(data, width, height)
	case format.TextureFormatRGFloat:
		return decodeRGFloat(data, width, height)
	case format.TextureFormatRGBAFloat:
		return decodeRGBAFloat(data, width, height)
	case format.TextureFormatRHalf:
		return decodeRHalf(data, width, height)
	case format.TextureFormatRGHalf:
		return decodeRGHalf(data, width, height)
	case format.TextureFormatRGBAHalf:
		return decodeRGBAHalf(data, width, height)
	case format.TextureFormatRGB9e5Float:
		return decodeRGB9e5Float(data, width, height)
	case format.TextureFormatYUY2:
		return decodeYUY2(data, width, height)
	case format.TextureFormatETCRGB4:
		return decodeETCRGB4(data, width, height)
	case format.TextureFormatETC2RGB:
		return decodeETC2RGB(data, width, height)
	case format.TextureFormatETC2RGBA8:
		return decodeETC2RGBA8(data, width, height)
	case format.TextureFormatATCRGB4:
		return decodeATCRGB4(data, width, height)
	case format.TextureFormatATCRGBA8:
		return decodeATCRGBA8(data, width, height)
	case format.TextureFormatASTC_RGB_4x4, format.TextureFormatASTC_RGBA_4x4:
		return decodeASTC(data, width, height, 4, 4)
	case format.TextureFormatASTC_RGB_5x5, format.TextureFormatASTC_RGBA_5x5:
		return decodeASTC(data, width, height, 5, 5)
	case format.TextureFormatASTC_RGB_6x6, format.TextureFormatASTC_RGBA_6x6:
		return decodeASTC(data, width, height, 6, 6)
	case format.TextureFormatASTC_RGB_8x8, format.TextureFormatASTC_RGBA_8x8:
		return decodeASTC(data, width, height, 8, 8)
	case format.TextureFormatASTC_RGB_10x10, format.TextureFormatASTC_RGBA_10x10:
		return decodeASTC(data, width, height, 10, 10)
	case format.TextureFormatASTC_RGB_12x12, format.TextureFormatASTC_RGBA_12x12:
		return decodeASTC(data, width, height, 12, 12)
	default:
		return nil, fmt.Errorf("%w: texture format %s", errs.ErrUnimplemented, f)
	}
}

func flipVertical(img []byte, width, height int) {
	stride := width * 4
	tmp := make([]byte, stride)
	for y := 0; y < height/2; y++ {
		top := img[y*stride : y*stride+stride]
		bottom := img[(height-1-y)*stride : (height-1-y)*stride+stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

// DecodeChunked parallelizes raw-unit decoding across
// runtime.GOMAXPROCS(0) goroutines, each writing a disjoint row range,
// then flips the assembled image once (§5: "splits the pixel-unit loop
// across GOMAXPROCS(0) goroutines... joined with a sync.WaitGroup").
// Block-compressed formats decode per-block rather than per-row and gain
// little from row-range splitting, so those fall back to Decode.
func DecodeChunked(f format.TextureFormat, data []byte, width, height int) ([]byte, error) {
	if !rowDecodable(f) {
		return Decode(f, data, width, height)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", errs.ErrZeroSizeImage, width, height)
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}

	img := make([]byte, width*height*4)
	rowsPerWorker := (height + workers - 1) / workers

	var wg sync.WaitGroup
	var firstErr error
	var mu sync.Mutex

	for w := 0; w < workers; w++ {
		startRow := w * rowsPerWorker
		if startRow >= height {
			break
		}
		endRow := startRow + rowsPerWorker
		if endRow > height {
			endRow = height
		}

		wg.Add(1)
		go func(startRow, endRow int) {
			defer wg.Done()

			rowBytesPerUnit, pixelsPerUnit := rowUnitGeometry(f)
			unitStart := startRow * width / pixelsPerUnit
			unitEnd := endRow * width / pixelsPerUnit
			chunk, err := decodeBottomUp(f, data[unitStart*rowBytesPerUnit:unitEnd*rowBytesPerUnit], width, endRow-startRow)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			copy(img[startRow*width*4:endRow*width*4], chunk)
		}(startRow, endRow)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	flipVertical(img, width, height)

	return img, nil
}

// rowDecodable reports whether f's decode unit is independent per pixel
// row (true for every uncompressed/float/YUV format), which is what lets
// DecodeChunked split work by row range.
func rowDecodable(f format.TextureFormat) bool {
	switch f {
	case format.TextureFormatAlpha8, format.TextureFormatR8, format.TextureFormatRG16,
		format.TextureFormatR16, format.TextureFormatRGB24, format.TextureFormatRGBA32,
		format.TextureFormatARGB32, format.TextureFormatBGRA32, format.TextureFormatRGB565,
		format.TextureFormatARGB4444, format.TextureFormatRGBA4444, format.TextureFormatRFloat,
		format.TextureFormatRGFloat, format.TextureFormatRGBAFloat, format.TextureFormatRHalf,
		format.TextureFormatRGHalf, format.TextureFormatRGBAHalf, format.TextureFormatRGB9e5Float,
		format.TextureFormatYUY2:
		return true
	default:
		return false
	}
}

func rowUnitGeometry(f format.TextureFormat) (bytesPerUnit, pixelsPerUnit int) {
	switch f {
	case format.TextureFormatAlpha8, format.TextureFormatR8:
		return 1, 1
	case format.TextureFormatRG16, format.TextureFormatR16, format.TextureFormatRGB565,
		format.TextureFormatARGB4444, format.TextureFormatRGBA4444, format.TextureFormatRHalf:
		return 2, 1
	case format.TextureFormatRGB24:
		return 3, 1
	case format.TextureFormatRGBA32, format.TextureFormatARGB32, format.TextureFormatBGRA32,
		format.TextureFormatRFloat, format.TextureFormatRGHalf, format.TextureFormatRGB9e5Float:
		return 4, 1
	case format.TextureFormatYUY2:
		return 4, 2
	case format.TextureFormatRGFloat, format.TextureFormatRGBAHalf:
		return 8, 1
	case format.TextureFormatRGBAFloat:
		return 16, 1
	default:
		return 4, 1
	}
}
