// Package synapse implements the static synaptic adjacency (CSR form), the
// circular delay ring that carries spikes to their arrival tick, and the
// pair-based STDP rule that adjusts excitatory weights. The three concerns
// share one type because STDP operates directly on the fabric's per-synapse
// arrays tick by tick; splitting them would mean passing the same slices
// back and forth for no benefit.
package synapse

import (
	"math"
	"math/rand"
	"sort"

	"crownetbrain/common"
	"crownetbrain/hormone"
	"crownetbrain/neuron"
)

const (
	wMin = 0.0
	wMax = 0.2

	spikeDecayPerHop    = 0.1
	maxPropagationDepth = 5

	tauPre       = 0.020
	tauPost      = 0.020
	aPlus        = 0.0001
	aMinus       = 0.00012
	learningRate = 0.005

	noiseP   = 0.0002
	noiseAmp = 0.05
)

// Fabric holds the static synapse set in CSR form, the per-synapse STDP
// traces, and the circular delay-ring buffer.
type Fabric struct {
	N int
	R int

	Pre   []common.NeuronID
	Post  []common.NeuronID
	W     []float64
	Delay []int

	PreTrace  []float64
	PostTrace []float64

	SynByPre   []int
	PreOffsets []int

	Ring []float64 // flattened [N][R]
	RPos int

	armedPattern []int
	armed        bool
}

// Build constructs the synapse fabric: for each post neuron, fan_in
// candidate pre indices are drawn uniformly, self-loops and output-as-pre
// are rejected, inhibitory pre neurons get a negated/amplified weight, and
// the result is sorted into CSR form. Delay is drawn uniformly from [0, R).
func Build(rng *rand.Rand, n, fanIn, r int, bank *neuron.Bank) *Fabric {
	f := &Fabric{N: n, R: r}

	var preIdx, postIdx []common.NeuronID
	var weights []float64

	for post := 0; post < n; post++ {
		for k := 0; k < fanIn; k++ {
			pre := rng.Intn(n)
			if pre == post {
				continue
			}
			if bank.IsOutput(common.NeuronID(pre)) {
				continue
			}

			w := 0.1 + 0.2*rng.Float64()
			if bank.IsInhibitory(common.NeuronID(pre)) {
				w *= -2.0
			}

			preIdx = append(preIdx, common.NeuronID(pre))
			postIdx = append(postIdx, common.NeuronID(post))
			weights = append(weights, w)
		}
	}

	nSyn := len(preIdx)
	f.Pre = preIdx
	f.Post = postIdx
	f.W = weights
	f.Delay = make([]int, nSyn)
	for i := range f.Delay {
		f.Delay[i] = rng.Intn(r)
	}

	f.SynByPre = make([]int, nSyn)
	for i := range f.SynByPre {
		f.SynByPre[i] = i
	}
	sortSynByPreThenPost(f.SynByPre, f.Pre, f.Post)

	f.PreOffsets = make([]int, n+1)
	for _, idx := range f.SynByPre {
		f.PreOffsets[f.Pre[idx]+1]++
	}
	for i := 1; i <= n; i++ {
		f.PreOffsets[i] += f.PreOffsets[i-1]
	}

	f.PreTrace = make([]float64, nSyn)
	f.PostTrace = make([]float64, nSyn)

	f.Ring = make([]float64, n*r)
	f.RPos = 0

	return f
}

func sortSynByPreThenPost(order []int, pre, post []common.NeuronID) {
	sort.Slice(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if pre[ia] != pre[ib] {
			return pre[ia] < pre[ib]
		}
		return post[ia] < post[ib]
	})
}

// ArmInputPattern arms a one-shot external input pattern; positions with
// value 1 receive +1.0 Isyn on the next InjectInputs call. The arm is
// consumed after one tick regardless of whether it fires.
func (f *Fabric) ArmInputPattern(pattern []int) {
	f.armedPattern = pattern
	f.armed = true
}

// InjectInputs applies the armed external pattern (if any, consuming it)
// and independent background noise to every input neuron.
func (f *Fabric) InjectInputs(rng *rand.Rand, bank *neuron.Bank) {
	if f.armed && len(f.armedPattern) > 0 {
		count := len(f.armedPattern)
		if n := len(bank.InputIDs); count > n {
			count = n
		}
		for i := 0; i < count; i++ {
			if f.armedPattern[i] != 0 {
				bank.Isyn[i] += 1.0
			}
		}
		f.armed = false
	}

	for id := range bank.InputIDs {
		if rng.Float64() < noiseP {
			bank.Isyn[id] += noiseAmp
		}
	}
}

// CollectDelayedToIsyn drains the ring slot at the current write head into
// each neuron's Isyn and zeroes that slot.
func (f *Fabric) CollectDelayedToIsyn(bank *neuron.Bank) {
	for i := 0; i < f.N; i++ {
		idx := i*f.R + f.RPos
		bank.Isyn[i] += f.Ring[idx]
		f.Ring[idx] = 0
	}
}

// RouteSpikes walks the adjacency of every presynaptic neuron that spiked
// last tick (excluding input and output neurons) and enqueues an
// exponentially hop-decayed contribution into the delay ring. The delay
// value doubles as the hop-count proxy for both the attenuation and the
// propagation-depth cutoff; changing either constant requires re-tuning
// the other.
func (f *Fabric) RouteSpikes(bank *neuron.Bank) {
	for pre := 0; pre < bank.N; pre++ {
		if bank.Spk[pre] == 0 {
			continue
		}
		id := common.NeuronID(pre)
		if bank.IsOutput(id) || bank.IsInput(id) {
			continue
		}

		begin, end := f.PreOffsets[pre], f.PreOffsets[pre+1]
		for p := begin; p < end; p++ {
			sidx := f.SynByPre[p]
			depth := f.Delay[sidx]
			if depth > maxPropagationDepth {
				continue
			}

			val := f.W[sidx] * math.Pow(spikeDecayPerHop, float64(depth))
			post := int(f.Post[sidx])
			slot := (f.RPos + f.Delay[sidx]) % f.R
			f.Ring[post*f.R+slot] += val
		}
	}
}

// AdvanceRPos moves the write head forward by one tick, wrapping modulo R.
func (f *Fabric) AdvanceRPos() {
	f.RPos = (f.RPos + 1) % f.R
}

// DecayTraces exponentially decays every synapse's eligibility traces; done
// once per tick for all synapses regardless of spiking.
func (f *Fabric) DecayTraces(dt float64) {
	dp := math.Exp(-dt / tauPre)
	dq := math.Exp(-dt / tauPost)
	for i := range f.PreTrace {
		f.PreTrace[i] *= dp
		f.PostTrace[i] *= dq
	}
}

// ApplyUpdates applies the pair-based STDP rule to every excitatory synapse,
// neuromodulated by the live dopamine/cortisol reading. Inhibitory synapses
// (w < 0) are frozen; a negative modulator (high cortisol) is preserved and
// allowed to invert learning polarity, not clamped away.
func (f *Fabric) ApplyUpdates(bank *neuron.Bank, h *hormone.State) {
	mod := 1.0 + 0.5*h.Current.Dopamine - 0.3*h.Current.Cortisol

	for si := range f.W {
		if f.W[si] < 0 {
			continue
		}

		preSp := bank.Spk[f.Pre[si]] != 0
		postSp := bank.Spk[f.Post[si]] != 0

		if preSp {
			f.PreTrace[si] += 1.0
		}
		if postSp {
			f.PostTrace[si] += 1.0
		}

		dw := 0.0
		if postSp {
			dw += learningRate * aPlus * f.PreTrace[si] * mod
		}
		if preSp {
			dw -= learningRate * aMinus * f.PostTrace[si] * mod
		}

		f.W[si] = common.Clamp(f.W[si]+dw, wMin, wMax)
	}
}
