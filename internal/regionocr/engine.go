package regionocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Engine recognizes text in a preprocessed band image. The production
// implementation wraps tesseract via gosseract; tests substitute stubs.
type Engine interface {
	Recognize(image []byte) (text string, meanConfidence float32, err error)
}

// tesseractEngine runs tesseract with a single-uniform-block layout
// assumption, which fits the short boilerplate lines in header and footer
// bands far better than automatic segmentation.
type tesseractEngine struct {
	lang string
}

func (t tesseractEngine) Recognize(image []byte) (string, float32, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if t.lang != "" {
		if err := client.SetLanguage(t.lang); err != nil {
			return "", 0, fmt.Errorf("set language %q: %w", t.lang, err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", 0, fmt.Errorf("set page seg mode: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", 0, fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("ocr failed: %w", err)
	}

	// Mean word confidence is informational; a failure here never fails
	// the recognition.
	var conf float32
	if boxes, cErr := client.GetBoundingBoxesVerbose(); cErr == nil {
		conf = meanWordConfidence(boxes)
	}

	return text, conf, nil
}

// meanWordConfidence averages per-word confidences (tesseract reports them
// on a 0..100 scale) down to the 0..1 scale the rest of the package uses.
func meanWordConfidence(boxes []gosseract.BoundingBox) float32 {
	if len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence
	}
	return float32(sum/float64(len(boxes))) / 100.0
}
