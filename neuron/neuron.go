// Package neuron implements the leaky-integrate-and-fire population: a
// fixed-size bank of scalar state vectors whose threshold, gain, and time
// constants are rewritten every tick by the live hormone reading.
package neuron

import (
	"crownetbrain/common"
	"crownetbrain/hormone"
)

const (
	vRestDefault  = -0.065
	vThDefault    = -0.050
	vResetDefault = -0.070
	vThMin        = -0.080
	vThMax        = -0.030

	tauMDefault = 0.020
	trefDefault = 0.002
	dtDefault   = 0.001
)

// Bank holds the per-neuron state as parallel slices rather than a slice of
// structs, so that hormone modulation and the integration step can be
// expressed as tight, allocation-free loops over a fixed population.
type Bank struct {
	N int

	V       []float64
	Vth     []float64
	Vrest   []float64
	Vreset  []float64
	RefLeft []float64
	Isyn    []float64
	Spk     []int

	TauM float64
	TRef float64
	Dt   float64

	InputIDs      map[common.NeuronID]bool
	OutputIDs     map[common.NeuronID]bool
	InhibitoryIDs map[common.NeuronID]bool
}

// NewBank allocates a population of n neurons with nInputs input indices
// taken as [0, nInputs) and nOutputs output indices taken as
// [n-nOutputs, n), matching the disjointness invariant the synapse fabric
// relies on. Inhibitory status covers the first floor(0.2*n) non-input
// indices.
func NewBank(n, nInputs, nOutputs int) *Bank {
	b := &Bank{
		N:       n,
		V:       make([]float64, n),
		Vth:     make([]float64, n),
		Vrest:   make([]float64, n),
		Vreset:  make([]float64, n),
		RefLeft: make([]float64, n),
		Isyn:    make([]float64, n),
		Spk:     make([]int, n),

		TauM: tauMDefault,
		TRef: trefDefault,
		Dt:   dtDefault,

		InputIDs:      make(map[common.NeuronID]bool, nInputs),
		OutputIDs:     make(map[common.NeuronID]bool, nOutputs),
		InhibitoryIDs: make(map[common.NeuronID]bool),
	}

	for i := 0; i < n; i++ {
		b.V[i] = vRestDefault
		b.Vth[i] = vThDefault
		b.Vrest[i] = vRestDefault
		b.Vreset[i] = vResetDefault
	}

	for i := 0; i < nInputs; i++ {
		b.InputIDs[common.NeuronID(i)] = true
	}
	for i := n - nOutputs; i < n; i++ {
		b.OutputIDs[common.NeuronID(i)] = true
	}

	nInhibitory := int(0.2 * float64(n))
	for i := 0; i < n && len(b.InhibitoryIDs) < nInhibitory; i++ {
		id := common.NeuronID(i)
		if b.InputIDs[id] {
			continue
		}
		b.InhibitoryIDs[id] = true
	}

	return b
}

// IsInput reports whether id names an input neuron.
func (b *Bank) IsInput(id common.NeuronID) bool { return b.InputIDs[id] }

// IsOutput reports whether id names an output neuron.
func (b *Bank) IsOutput(id common.NeuronID) bool { return b.OutputIDs[id] }

// IsInhibitory reports whether id names an inhibitory neuron.
func (b *Bank) IsInhibitory(id common.NeuronID) bool { return b.InhibitoryIDs[id] }

// ApplyHormones rewrites Vth, TauM, TRef, and rescales pending Isyn from the
// live hormone snapshot, identically for every neuron.
func (b *Bank) ApplyHormones(h *hormone.State) {
	c := h.Current

	vthChange := -0.010*c.Dopamine + 0.015*c.Melatonin - 0.020*c.Cortisol -
		0.005*c.Endorphin - 0.010*c.Adrenaline

	isynFactor := (1.0 + 0.5*c.Adrenaline) * (1.0 + 0.2*c.Dopamine) * (1.0 - 0.3*c.Oxytocin)
	tauFactor := 1.0 + 0.3*c.Noradrenaline - 0.2*c.Acetylcholine
	trefFactor := 1.0 + 0.4*c.Melatonin - 0.2*c.Endorphin

	b.TauM = tauMDefault * tauFactor
	if b.TauM <= 0 {
		b.TauM = b.Dt
	}
	b.TRef = trefDefault * trefFactor

	for i := 0; i < b.N; i++ {
		b.Vth[i] = common.Clamp(b.Vth[i]+vthChange*b.Dt, vThMin, vThMax)
		b.Isyn[i] *= isynFactor
	}
}

// Step integrates one tick for every non-input neuron and forces input
// neurons to their resting state, then emits Spk and zeroes Isyn in bulk.
func (b *Bank) Step() {
	for i := 0; i < b.N; i++ {
		id := common.NeuronID(i)

		if b.InputIDs[id] {
			b.Spk[i] = 0
			b.V[i] = b.Vrest[i]
			b.Isyn[i] = 0
			continue
		}

		b.Spk[i] = 0
		if b.RefLeft[i] > 0 {
			b.RefLeft[i] -= b.Dt
			if b.RefLeft[i] < 0 {
				b.RefLeft[i] = 0
			}
			b.V[i] = b.Vreset[i]
			continue
		}

		dv := (-(b.V[i] - b.Vrest[i]) + b.Isyn[i]) * (b.Dt / b.TauM)
		b.V[i] += dv

		if b.V[i] >= b.Vth[i] {
			b.V[i] = b.Vreset[i]
			b.RefLeft[i] = b.TRef
			b.Spk[i] = 1
		}
	}

	for i := 0; i < b.N; i++ {
		b.Isyn[i] = 0
	}
}
