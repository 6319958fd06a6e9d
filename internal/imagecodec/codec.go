package imagecodec

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"encimg/internal/classify"
)

// Encode packs a Base64 string into a PNG image: three consecutive
// characters become one pixel (R, G, B), A is always 255, missing
// characters in a trailing partial triple are encoded as 0, and any pixel
// beyond the data is (0, 0, 0, 255). The termination invariant relies on no
// Base64 character ever encoding to 0.
func Encode(base64Str string) ([]byte, error) {
	width, height, err := PlanDimensions(len(base64Str))
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	data := []byte(base64Str)
	pixelCount := ceilDiv(len(data), 3)
	if pixelCount == 0 {
		pixelCount = 1
	}

	for i := 0; i < pixelCount; i++ {
		var r, g, b byte
		base := i * 3
		if base < len(data) {
			r = data[base]
		}
		if base+1 < len(data) {
			g = data[base+1]
		}
		if base+2 < len(data) {
			b = data[base+2]
		}
		x := i % width
		y := i / width
		img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	// Remaining pixels default to the image's zero value, which for RGBA is
	// (0,0,0,0); spec requires (0,0,0,255) so the alpha channel is filled
	// explicitly for any pixel beyond pixelCount.
	for i := pixelCount; i < width*height; i++ {
		x := i % width
		y := i / width
		img.SetRGBA(x, y, color.RGBA{A: 255})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, classify.NewCryptoError("png-encode", err)
	}
	return buf.Bytes(), nil
}

// Decode recovers the Base64 string embedded in a PNG's pixel data,
// iterating pixels in raster order and stopping at the first all-zero RGB
// pixel. A decode failure or non-PNG input is classify.ErrNotPNG;
// CorruptedImage is implied when the decoded stream yields no usable data
// via later Base64 validation.
func Decode(pngBytes []byte) (string, error) {
	img, err := png.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		return "", classify.ErrNotPNG
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	out := make([]byte, 0, width*height*3)
outer:
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			rb, gb, bb := byte(r>>8), byte(g>>8), byte(b>>8)
			if rb == 0 && gb == 0 && bb == 0 {
				break outer
			}
			if rb != 0 {
				out = append(out, rb)
			}
			if gb != 0 {
				out = append(out, gb)
			}
			if bb != 0 {
				out = append(out, bb)
			}
		}
	}

	return string(out), nil
}

// LooksLikePNG reports whether data begins with the PNG magic signature,
// for cheap pre-validation before a full decode attempt.
func LooksLikePNG(data []byte) bool {
	sig := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	return len(data) >= len(sig) && bytes.Equal(data[:len(sig)], sig)
}
