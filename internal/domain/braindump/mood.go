package braindump

import "math"

// Emotion is one of the closed set of mood labels.
type Emotion string

const (
	EmotionStressed  Emotion = "stressed"
	EmotionAnxious   Emotion = "anxious"
	EmotionTired     Emotion = "tired"
	EmotionCalm      Emotion = "calm"
	EmotionMotivated Emotion = "motivated"
	EmotionHappy     Emotion = "happy"
)

// Valid reports whether e belongs to the known vocabulary.
func (e Emotion) Valid() bool {
	switch e {
	case EmotionStressed, EmotionAnxious, EmotionTired, EmotionCalm, EmotionMotivated, EmotionHappy:
		return true
	default:
		return false
	}
}

const (
	minIntensity = 1
	maxIntensity = 5
)

// Mood is the classification of a stress score.
type Mood struct {
	Emotion   Emotion `json:"emotion"`
	Intensity int     `json:"intensity"`
}

// Classify maps a stress score onto an emotion band and an intensity in [1,5].
// Scores outside [0,1] are not rejected; the intensity is still clamped.
func Classify(score float64) Mood {
	return Mood{
		Emotion:   emotionFor(score),
		Intensity: intensityFor(score),
	}
}

func emotionFor(score float64) Emotion {
	switch {
	case score < 0.3:
		return EmotionCalm
	case score < 0.5:
		return EmotionMotivated
	case score < 0.7:
		return EmotionTired
	default:
		return EmotionStressed
	}
}

func intensityFor(score float64) int {
	if math.IsNaN(score) {
		return minIntensity
	}
	raw := math.Ceil(score * maxIntensity)
	switch {
	case raw < minIntensity:
		return minIntensity
	case raw > maxIntensity:
		return maxIntensity
	default:
		return int(raw)
	}
}

// ScoreColor buckets a stress score into the traffic-light color used by the backend.
func ScoreColor(score float64) string {
	switch {
	case score < 0.3:
		return "green"
	case score < 0.6:
		return "blue"
	default:
		return "red"
	}
}
