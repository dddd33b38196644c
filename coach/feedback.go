package coach

// ApplyFeedback writes the set_hormones command that d's verdict implies:
// reward boosts dopamine and trims cortisol, punish does the reverse, and
// neutral only nudges adrenaline slightly. seq is the caller's monotonic
// command sequence number.
func ApplyFeedback(w *CommandWriter, d Decision, seq int) error {
	i := clamp01(d.Intensity)

	switch d.Feedback {
	case "reward":
		return w.WriteSetHormones(0.3+0.7*i, -0.1*i, 0.1*i, seq)
	case "punish":
		return w.WriteSetHormones(-0.2*i, 0.4+0.6*i, 0.05*i, seq)
	default:
		return w.WriteSetHormones(0.0, 0.0, 0.05*i, seq)
	}
}
