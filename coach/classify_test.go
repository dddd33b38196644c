package coach

import "testing"

func TestClassifyRewardsPositiveReply(t *testing.T) {
	d := Classify("This is great, thanks so much!")
	if d.Feedback != "reward" {
		t.Fatalf("expected reward, got %s", d.Feedback)
	}
	if d.Intensity <= 0 {
		t.Errorf("expected positive intensity, got %f", d.Intensity)
	}
}

func TestClassifyPunishesNegativeReply(t *testing.T) {
	d := Classify("This is bad, I hate this, it's broken")
	if d.Feedback != "punish" {
		t.Fatalf("expected punish, got %s", d.Feedback)
	}
}

func TestClassifyNeutralOnEmptyScore(t *testing.T) {
	d := Classify("The weather today is mild")
	if d.Feedback != "none" {
		t.Fatalf("expected none, got %s", d.Feedback)
	}
}

func TestClassifyEmptyReplyIsNeutral(t *testing.T) {
	d := Classify("")
	if d.Feedback != "none" {
		t.Fatalf("expected none for empty reply, got %s", d.Feedback)
	}
	if d.Intensity != 0 {
		t.Errorf("expected zero intensity for empty reply, got %f", d.Intensity)
	}
}

func TestClassifyIntensityStaysBounded(t *testing.T) {
	d := Classify("good good good great awesome!!!!!!! so happy, love it, nice, thanks, wonderful")
	if d.Intensity < 0 || d.Intensity > 1 {
		t.Fatalf("expected intensity in [0,1], got %f", d.Intensity)
	}
}
