package neuron

import (
	"math/rand"
	"testing"

	"crownetbrain/common"
	"crownetbrain/hormone"
)

func TestNewBankIndexSets(t *testing.T) {
	b := NewBank(100, 10, 10)

	for i := 0; i < 10; i++ {
		if !b.IsInput(common.NeuronID(i)) {
			t.Errorf("expected index %d to be an input neuron", i)
		}
	}
	for i := 90; i < 100; i++ {
		if !b.IsOutput(common.NeuronID(i)) {
			t.Errorf("expected index %d to be an output neuron", i)
		}
	}
	for id := range b.InputIDs {
		if b.OutputIDs[id] {
			t.Fatalf("input and output sets overlap at %d", id)
		}
	}
	if len(b.InhibitoryIDs) != 20 {
		t.Errorf("expected 20 inhibitory neurons (0.2*100), got %d", len(b.InhibitoryIDs))
	}
	for id := range b.InhibitoryIDs {
		if b.InputIDs[id] {
			t.Errorf("inhibitory set should exclude input neuron %d", id)
		}
	}
}

func TestNewBankInitialState(t *testing.T) {
	b := NewBank(10, 2, 2)
	for i := 0; i < b.N; i++ {
		if b.V[i] != vRestDefault {
			t.Errorf("expected initial V == V_rest, got %f", b.V[i])
		}
		if b.Vth[i] != vThDefault {
			t.Errorf("expected initial Vth == -0.050, got %f", b.Vth[i])
		}
	}
}

func TestStepInputNeuronsNeverIntegrate(t *testing.T) {
	b := NewBank(10, 2, 2)
	b.Isyn[0] = 5.0 // huge current, would certainly fire a normal neuron

	b.Step()

	if b.V[0] != b.Vrest[0] {
		t.Errorf("expected input neuron V to stay at rest, got %f", b.V[0])
	}
	if b.Spk[0] != 0 {
		t.Errorf("expected input neuron spk forced to 0, got %d", b.Spk[0])
	}
}

func TestStepFiresAndEntersRefractory(t *testing.T) {
	b := NewBank(10, 0, 2)
	b.Isyn[5] = 100.0 // forces membrane far past threshold in one tick

	b.Step()

	if b.Spk[5] != 1 {
		t.Fatalf("expected neuron 5 to spike given a huge input current")
	}
	if b.V[5] != b.Vreset[5] {
		t.Errorf("expected V reset after spike, got %f", b.V[5])
	}
	if b.RefLeft[5] != b.TRef {
		t.Errorf("expected ref_left set to TRef after spike, got %f", b.RefLeft[5])
	}
}

func TestStepZeroesIsynInBulk(t *testing.T) {
	b := NewBank(10, 0, 0)
	for i := range b.Isyn {
		b.Isyn[i] = 0.3
	}
	b.Step()
	for i, v := range b.Isyn {
		if v != 0 {
			t.Fatalf("expected Isyn[%d] zeroed after step, got %f", i, v)
		}
	}
}

func TestApplyHormonesClampsVth(t *testing.T) {
	b := NewBank(5, 0, 0)
	h := hormone.NewState(rand.New(rand.NewSource(1)))
	h.Current.Cortisol = 0.99
	h.Current.Dopamine = 0.99

	for i := 0; i < 100000; i++ {
		b.ApplyHormones(h)
	}

	for i, v := range b.Vth {
		if v < vThMin || v > vThMax {
			t.Fatalf("Vth[%d] = %f out of [%f, %f]", i, v, vThMin, vThMax)
		}
	}
}

func TestApplyHormonesGuardsNonPositiveTauM(t *testing.T) {
	b := NewBank(1, 0, 0)
	h := hormone.NewState(rand.New(rand.NewSource(2)))
	// A pathological reading outside the clamped band: 1 + 0.3*0 - 0.2*10
	// is negative, so tau_m would go negative without the guard.
	h.Current.Noradrenaline = 0.0
	h.Current.Acetylcholine = 10.0

	b.ApplyHormones(h)

	if b.TauM < b.Dt {
		t.Errorf("expected TauM to be saturated to at least Dt, got %f", b.TauM)
	}
}

func TestInvariantVBoundedAfterManySteps(t *testing.T) {
	b := NewBank(20, 5, 5)
	rng := rand.New(rand.NewSource(5))
	h := hormone.NewState(rng)

	for tick := 0; tick < 5000; tick++ {
		h.Update(b.Dt)
		b.ApplyHormones(h)
		for i := 0; i < b.N; i++ {
			if !b.IsInput(common.NeuronID(i)) && rng.Float64() < 0.01 {
				b.Isyn[i] += 1.0
			}
		}
		b.Step()

		for i := 0; i < b.N; i++ {
			if b.IsInput(common.NeuronID(i)) {
				continue
			}
			if b.Spk[i] == 1 || b.RefLeft[i] > 0 {
				if b.V[i] != b.Vreset[i] {
					t.Fatalf("tick %d: neuron %d expected V==Vreset after spike/refractory, got %f", tick, i, b.V[i])
				}
			} else if b.V[i] < b.Vrest[i] || b.V[i] > b.Vth[i] {
				t.Fatalf("tick %d: neuron %d V=%f out of [Vrest, Vth]", tick, i, b.V[i])
			}
			if b.RefLeft[i] < 0 || b.RefLeft[i] > b.TRef+b.Dt {
				t.Fatalf("tick %d: neuron %d ref_left=%f out of bounds", tick, i, b.RefLeft[i])
			}
		}
	}
}
