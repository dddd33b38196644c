package coach

import "strings"

// positiveWords and negativeWords are the emotional-polarity lexicon used
// to score replies from the completion endpoint.
var positiveWords = []string{
	"good", "great", "thanks", "awesome", "gladly", "wonderful",
	"satisfied", "happy", "nice", "love", "like", "yay", "ok", "okay",
}

var negativeWords = []string{
	"bad", "not good", "sad", "hate", "afraid", "stupid", "angry",
	"evil", "no", "fail", "error", "tired", "stress", "worried",
	"annoying", "terrible", "negative", "broken",
}

// Decision is the verdict the coach derives from one completion reply:
// reward, punish, or none, with an intensity in [0, 1] scaling the
// resulting hormone-drive nudge.
type Decision struct {
	Reply     string
	Feedback  string // "reward", "punish", or "none"
	Intensity float64
}

// Classify scores reply's emotional polarity: a [-3, 3] word-list score
// adjusted by punctuation and emoticons, mapped to a feedback verdict, with
// an intensity blending score magnitude, exclamation use, and reply length.
func Classify(reply string) Decision {
	if reply == "" {
		return Decision{Feedback: "none"}
	}

	text := strings.ToLower(reply)

	score := 0
	for _, w := range positiveWords {
		if strings.Contains(text, w) {
			score++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(text, w) {
			score--
		}
	}

	exclaim := strings.Count(text, "!")
	question := strings.Count(text, "?")

	score += exclaim
	if question > 2 {
		score--
	}

	if strings.Contains(text, "\U0001F60A") || strings.Contains(text, ":)") {
		score++
	}
	if strings.Contains(text, "\U0001F621") || strings.Contains(text, ":(") {
		score--
	}

	if score > 3 {
		score = 3
	}
	if score < -3 {
		score = -3
	}

	feedback := "none"
	switch {
	case score > 0:
		feedback = "reward"
	case score < 0:
		feedback = "punish"
	}

	base := clamp01(absf(float64(score)) / 3.0)
	sizeFactor := clamp01(float64(len(reply)) / 100.0)
	exclaimBonus := 0.0
	if exclaim > 0 {
		exclaimBonus = 1.0
	}
	intensity := clamp01(0.4*base + 0.3*sizeFactor + 0.3*exclaimBonus)

	return Decision{Reply: reply, Feedback: feedback, Intensity: intensity}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
