package netplay

import (
	"testing"

	"github.com/samdwyer/netbattle/internal/frametime"
)

func TestQualityFor(t *testing.T) {
	tests := []struct {
		name     string
		latency  float64
		sinceAck frametime.FrameTime
		want     Quality
	}{
		{"lan", 10, 0, QualityGreat},
		{"boundary great", 33.3, 2, QualityGreat},
		{"decent", 80, 0, QualityGood},
		{"latency fine but acks stale", 10, 12, QualityPoor},
		{"slow link", 200, 0, QualityPoor},
		{"dead air", 30, 90, QualityBad},
		{"dialup", 600, 0, QualityBad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QualityFor(tt.latency, tt.sinceAck); got != tt.want {
				t.Errorf("QualityFor(%v, %v) = %v, want %v", tt.latency, tt.sinceAck, got, tt.want)
			}
		})
	}
}

func TestQualityString(t *testing.T) {
	if QualityGreat.String() != "great" || QualityBad.String() != "bad" {
		t.Error("tier names wrong")
	}
}
