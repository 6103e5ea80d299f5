// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pufsim

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// LTFConfig describes a weighted threshold array.
//
type LTFConfig struct {
	// Weights is the k×m weight matrix, one row per parallel unit, without
	// the bias column. Required.
	Weights *mat.Dense
	// Bias holds one bias weight per unit. If nil, all biases are zero. If
	// set, its length must equal the number of weight rows.
	Bias []float64
	// Transform maps challenge batches to feature batches. Required.
	Transform Transform
	// SigmaNoise is the standard deviation of the additive weight noise
	// applied on every evaluation call. Zero disables noise.
	SigmaNoise float64
	// NoiseSeed seeds the noise stream. Only used when SigmaNoise > 0.
	NoiseSeed uint64
}

// LTFArray is an array of k linear threshold units evaluated in parallel over
// the same challenge batch. Each unit computes the dot product of the
// transformed challenge with its weight row plus its bias weight; the array
// value of a challenge is the product of the k unit values and the response
// is its sign.
//
// Weights are immutable during evaluation, except for the ephemeral per-call
// perturbation of the noise model, which is never persisted.
//
type LTFArray struct {
	weights   *mat.Dense // k × (m+1), bias in the last column
	transform Transform
	noise     *distuv.Normal // nil when noiseless
	k, m      int
}

// NewLTFArray builds a weighted threshold array from cfg.
//
func NewLTFArray(cfg LTFConfig) (*LTFArray, error) {
	if cfg.Weights == nil {
		return nil, errors.New("missing weight matrix")
	}
	if cfg.Transform == nil {
		return nil, errors.New("missing challenge transform")
	}
	k, m := cfg.Weights.Dims()
	if cfg.Bias != nil && len(cfg.Bias) != k {
		return nil, errors.Errorf("bias vector has length %d, want one bias per unit (%d)", len(cfg.Bias), k)
	}
	w := mat.NewDense(k, m+1, nil)
	for i := 0; i < k; i++ {
		for j := 0; j < m; j++ {
			w.Set(i, j, cfg.Weights.At(i, j))
		}
		if cfg.Bias != nil {
			w.Set(i, m, cfg.Bias[i])
		}
	}
	a := &LTFArray{weights: w, transform: cfg.Transform, k: k, m: m}
	if cfg.SigmaNoise > 0 {
		a.noise = &distuv.Normal{Mu: 0, Sigma: cfg.SigmaNoise, Src: rand.NewSource(cfg.NoiseSeed)}
	}
	return a, nil
}

// ChallengeLength returns the number of challenge positions consumed by each
// unit.
func (a *LTFArray) ChallengeLength() int { return a.m }

// Units returns the number of parallel units k.
func (a *LTFArray) Units() int { return a.k }

// WeightArray returns the live k×(m+1) weight matrix, bias weights in the
// last column. Mutating it rewires the device; intended for test fixtures.
func (a *LTFArray) WeightArray() *mat.Dense { return a.weights }

// evalWeights returns the weight matrix to use for one evaluation call:
// either the weights themselves or a noisy copy.
func (a *LTFArray) evalWeights() *mat.Dense {
	if a.noise == nil {
		return a.weights
	}
	w := mat.DenseCopyOf(a.weights)
	for i := 0; i < a.k; i++ {
		for j := 0; j <= a.m; j++ {
			w.Set(i, j, w.At(i, j)+a.noise.Rand())
		}
	}
	return w
}

// Val evaluates a batch of challenges and returns the raw real-valued sums,
// the product across the k units of each unit's weighted feature sum. Unlike
// Eval it applies no threshold, so exact zeros stay observable.
//
func (a *LTFArray) Val(challenges [][]int8) ([]float64, error) {
	N, err := checkBatch(challenges, a.m)
	if err != nil {
		return nil, err
	}
	if N == 0 {
		return nil, nil
	}
	f, err := a.transform(challenges)
	if err != nil {
		return nil, errors.Wrap(err, "challenge transform")
	}
	fr, fc := f.Dims()
	if fr != N || fc != a.m {
		return nil, errors.Errorf("transform produced a %d×%d feature batch, want %d×%d", fr, fc, N, a.m)
	}
	w := a.evalWeights()
	var sums mat.Dense
	sums.Mul(f, w.Slice(0, a.k, 0, a.m).T()) // N×k unit sums, bias excluded
	vals := make([]float64, N)
	for i := range vals {
		v := 1.0
		for j := 0; j < a.k; j++ {
			v *= sums.At(i, j) + w.At(j, a.m)
		}
		vals[i] = v
	}
	return vals, nil
}

// Eval evaluates a batch of challenges and returns the ±1 responses. A raw
// value of exactly zero thresholds to +1.
//
func (a *LTFArray) Eval(challenges [][]int8) ([]int8, error) {
	vals, err := a.Val(challenges)
	if err != nil {
		return nil, err
	}
	responses := make([]int8, len(vals))
	for i, v := range vals {
		responses[i] = sign(v)
	}
	return responses, nil
}
