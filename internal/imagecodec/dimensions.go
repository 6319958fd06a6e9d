// Package imagecodec implements the bijective mapping between a Base64
// string and a PNG image described for the Image Codec component: dimension
// planning, pixel packing, and termination. Pixel iteration follows the
// raster-order, RGBA-struct-literal style the stegano carrier example uses,
// adapted from LSB concealment to direct byte-per-channel packing.
package imagecodec

import (
	"encimg/internal/classify"
)

const (
	// MaxDimension bounds both width and height (spec §3).
	MaxDimension = 16384
	// MaxPixelBytes bounds the allocated RGBA buffer: width*height*4 (spec §3).
	MaxPixelBytes = int64(1536) * 1024 * 1024 // 1.5 GiB

	reshapeThreshold = 1024
	wideDimension    = 2048
)

// PlanDimensions computes the width and height of the PNG carrier for a
// Base64 payload of base64Len characters, following the square-ish-then-wide
// reshaping rules of spec §3. It returns classify.MemoryError if the planned
// buffer would exceed MaxPixelBytes or either dimension would exceed
// MaxDimension.
func PlanDimensions(base64Len int) (width, height int, err error) {
	pixelCount := ceilDiv(base64Len, 3)
	if pixelCount == 0 {
		pixelCount = 1
	}

	width = ceilSqrt(pixelCount)
	height = ceilDiv(pixelCount, width)

	if width > reshapeThreshold || height > reshapeThreshold {
		width = ceilSqrt(int(float64(pixelCount) * 1.5))
		if width > wideDimension {
			width = wideDimension
		}
		height = ceilDiv(pixelCount, width)
		if height > wideDimension {
			height = wideDimension
			width = ceilDiv(pixelCount, height)
		}
	}

	bufBytes := int64(width) * int64(height) * 4
	if width > MaxDimension || height > MaxDimension || bufBytes > MaxPixelBytes {
		return 0, 0, &classify.MemoryError{Requested: bufBytes, Budget: MaxPixelBytes}
	}

	return width, height, nil
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// ceilSqrt returns the smallest integer n such that n*n >= x.
func ceilSqrt(x int) int {
	if x <= 0 {
		return 1
	}
	n := isqrt(x)
	if n*n < x {
		n++
	}
	return n
}

// isqrt returns floor(sqrt(x)) for non-negative x using integer Newton's
// method, avoiding float64 precision loss for the large pixel counts a
// near-1 GiB input can produce.
func isqrt(x int) int {
	if x == 0 {
		return 0
	}
	n := x
	r := x
	for {
		next := (r + n/r) / 2
		if next >= r {
			return r
		}
		r = next
	}
}
