package coach

import (
	"strings"
	"testing"
)

func TestBuildPromptIncludesHormoneFooter(t *testing.T) {
	p := BuildPrompt(map[string]float64{"dopamine": 0.73, "cortisol": 0.12})
	if !strings.Contains(p, "- dopamine: 0.73") {
		t.Errorf("expected dopamine reading in prompt footer, got:\n%s", p)
	}
	if !strings.Contains(p, "- cortisol: 0.12") {
		t.Errorf("expected cortisol reading in prompt footer, got:\n%s", p)
	}
}

func TestBuildPromptListsAllTenHormonesEvenWhenAbsent(t *testing.T) {
	p := BuildPrompt(map[string]float64{})
	for _, name := range hormoneOrder {
		if !strings.Contains(p, "- "+name+":") {
			t.Errorf("expected %s listed in the footer even with no reading", name)
		}
	}
}
