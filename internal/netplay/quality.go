package netplay

import "github.com/samdwyer/netbattle/internal/frametime"

// Quality is the discrete connection-quality indicator shown next to the
// opponent's name. Display only; nothing gameplay-visible depends on it.
type Quality int

const (
	// QualityBad is the bottom tier.
	QualityBad Quality = iota
	// QualityPoor is below comfortable play.
	QualityPoor
	// QualityGood is ordinary internet play.
	QualityGood
	// QualityGreat is LAN-like.
	QualityGreat
)

// String returns the tier name.
func (q Quality) String() string {
	switch q {
	case QualityGreat:
		return "great"
	case QualityGood:
		return "good"
	case QualityPoor:
		return "poor"
	default:
		return "bad"
	}
}

// QualityFor buckets a rolling average latency plus the frames since input
// was last acknowledged into one of four tiers.
func QualityFor(avgLatencyMS float64, sinceAck frametime.FrameTime) Quality {
	lagFrames := frametime.FromMillisecondsCeil(avgLatencyMS)
	worst := lagFrames
	if sinceAck > worst {
		worst = sinceAck
	}

	switch {
	case worst <= 2:
		return QualityGreat
	case worst <= 6:
		return QualityGood
	case worst <= 15:
		return QualityPoor
	default:
		return QualityBad
	}
}
