package regionocr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
)

// cropBands cuts the header and footer bands out of a rendered page image.
// Percentages are fractions of the page height (0.15 = top/bottom 15%).
func cropBands(img image.Image, headerPercent, footerPercent float64) (header, footer image.Image) {
	b := img.Bounds()
	h := b.Dy()

	headerH := int(float64(h) * headerPercent)
	footerH := int(float64(h) * footerPercent)
	if headerH < 1 {
		headerH = 1
	}
	if footerH < 1 {
		footerH = 1
	}

	headerRect := image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+headerH)
	footerRect := image.Rect(b.Min.X, b.Max.Y-footerH, b.Max.X, b.Max.Y)

	return cropGray(img, headerRect), cropGray(img, footerRect)
}

// cropGray copies a sub-rectangle into a fresh grayscale image.
func cropGray(img image.Image, r image.Rectangle) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			out.Set(x-r.Min.X, y-r.Min.Y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return out
}

// otsuThreshold computes the global binarization threshold that minimizes
// intra-class variance over the grayscale histogram.
func otsuThreshold(img *image.Gray) uint8 {
	var hist [256]int
	total := 0
	for _, p := range img.Pix {
		hist[p]++
		total++
	}
	if total == 0 {
		return 128
	}

	var sum float64
	for i, c := range hist {
		sum += float64(i) * float64(c)
	}

	var sumB, wB float64
	var maxVar float64
	threshold := uint8(128)

	for i := 0; i < 256; i++ {
		wB += float64(hist[i])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * float64(hist[i])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > maxVar {
			maxVar = between
			threshold = uint8(i)
		}
	}
	return threshold
}

// binarize maps pixels at or below the threshold to black and the rest to
// white, producing the high-contrast input tesseract prefers for short
// boilerplate text.
func binarize(img *image.Gray, threshold uint8) *image.Gray {
	out := image.NewGray(img.Bounds())
	for i, p := range img.Pix {
		if p <= threshold {
			out.Pix[i] = 0
		} else {
			out.Pix[i] = 255
		}
	}
	return out
}

// prepareBand runs the full preprocessing chain on one band: grayscale
// (already done by cropGray), denoise, Otsu binarize, PNG encode.
func prepareBand(band image.Image) ([]byte, error) {
	gray, ok := band.(*image.Gray)
	if !ok {
		gray = cropGray(band, band.Bounds())
	}
	gray = denoise(gray)
	bin := binarize(gray, otsuThreshold(gray))

	var buf bytes.Buffer
	if err := png.Encode(&buf, bin); err != nil {
		return nil, fmt.Errorf("encode band: %w", err)
	}
	return buf.Bytes(), nil
}

// denoise applies a 3x3 median filter, which knocks out the salt-and-pepper
// speckle common in 300 DPI scans without smearing glyph edges.
func denoise(img *image.Gray) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return img
	}

	out := image.NewGray(b)
	copy(out.Pix, img.Pix)

	var window [9]uint8
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			k := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					window[k] = img.GrayAt(x+dx, y+dy).Y
					k++
				}
			}
			out.SetGray(x, y, color.Gray{Y: median9(window)})
		}
	}
	return out
}

// median9 returns the median of nine values via insertion sort; the fixed
// size keeps this allocation free in the hot loop.
func median9(v [9]uint8) uint8 {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j-1] > v[j]; j-- {
			v[j-1], v[j] = v[j], v[j-1]
		}
	}
	return v[4]
}
