package regionocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// syntheticPage builds a grayscale page with dark "text" rows in the top and
// bottom bands and a light body.
func syntheticPage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(220)
			if y < h/10 || y > h-h/10 {
				v = 30
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestCropBands_Dimensions(t *testing.T) {
	img := syntheticPage(200, 100)

	header, footer := cropBands(img, 0.15, 0.15)

	if got := header.Bounds().Dy(); got != 15 {
		t.Errorf("header height = %d, want 15", got)
	}
	if got := footer.Bounds().Dy(); got != 15 {
		t.Errorf("footer height = %d, want 15", got)
	}
	if got := header.Bounds().Dx(); got != 200 {
		t.Errorf("header width = %d, want 200", got)
	}

	// Header band comes from the top of the page, so it contains the dark rows.
	hg := header.(*image.Gray)
	if hg.GrayAt(0, 0).Y != 30 {
		t.Errorf("header top pixel = %d, want 30", hg.GrayAt(0, 0).Y)
	}
}

func TestCropBands_TinyImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))

	header, footer := cropBands(img, 0.15, 0.15)

	// Bands never collapse to zero height, even when the percentage rounds down.
	if header.Bounds().Dy() < 1 || footer.Bounds().Dy() < 1 {
		t.Errorf("band heights = %d/%d, want at least 1", header.Bounds().Dy(), footer.Bounds().Dy())
	}
}

func TestOtsuThreshold_BimodalHistogram(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	for i := range img.Pix {
		if i%2 == 0 {
			img.Pix[i] = 40
		} else {
			img.Pix[i] = 210
		}
	}

	th := otsuThreshold(img)
	if th < 40 || th >= 210 {
		t.Errorf("threshold = %d, want separation between the two modes", th)
	}
}

func TestBinarize_TwoLevelOutput(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 4)
	}

	bin := binarize(img, 128)
	for i, p := range bin.Pix {
		if p != 0 && p != 255 {
			t.Fatalf("pixel %d = %d, want 0 or 255", i, p)
		}
	}
}

func TestPrepareBand_ProducesDecodablePNG(t *testing.T) {
	band := syntheticPage(120, 30)

	out, err := prepareBand(band)
	if err != nil {
		t.Fatalf("prepareBand: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if decoded.Bounds() != band.Bounds() {
		t.Errorf("bounds = %v, want %v", decoded.Bounds(), band.Bounds())
	}
}
