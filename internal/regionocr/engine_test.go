package regionocr

import (
	"testing"

	"github.com/otiai10/gosseract/v2"
)

func TestMeanWordConfidence(t *testing.T) {
	tests := []struct {
		name  string
		boxes []gosseract.BoundingBox
		want  float32
	}{
		{
			name:  "no words",
			boxes: nil,
			want:  0,
		},
		{
			name: "single word",
			boxes: []gosseract.BoundingBox{
				{Word: "SURVEY", Confidence: 92},
			},
			want: 0.92,
		},
		{
			name: "averages across words",
			boxes: []gosseract.BoundingBox{
				{Word: "REPORT", Confidence: 90},
				{Word: "NO.", Confidence: 70},
				{Word: "SR-2024-001", Confidence: 80},
			},
			want: 0.80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := meanWordConfidence(tt.boxes)
			if diff := got - tt.want; diff > 0.0001 || diff < -0.0001 {
				t.Errorf("meanWordConfidence() = %v, want %v", got, tt.want)
			}
		})
	}
}
