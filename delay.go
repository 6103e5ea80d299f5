package pufsim

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// A Loop is a feed-forward loop of an arbiter chain. The sign of the delay
// difference accumulated over the first Start stages is fed back into the
// chain as an extra challenge bit at position End of the extended challenge.
//
type Loop struct {
	Start, End int
}

// ArbiterConfig holds the construction parameters of an arbiter chain.
// Use DefaultArbiterConfig for the usual defaults.
//
type ArbiterConfig struct {
	// N is the challenge length.
	N int
	// Seed drives all weight, bias and noise sampling of the instance.
	Seed int64
	// WeightMu and WeightSigma parametrize the normal distribution the stage
	// delay weights are drawn from.
	WeightMu, WeightSigma float64
	// Gradient, when non-zero, spreads the weight means over a symmetric
	// range of width Gradient centered at 0, overriding WeightMu. Models a
	// systematic delay skew along the chain.
	Gradient float64
	// BiasMu and BiasSigma parametrize the distribution of the trailing bias
	// weight.
	BiasMu, BiasSigma float64
	// Noisiness scales the per-evaluation weight noise. Zero disables noise.
	Noisiness float64
}

// DefaultArbiterConfig returns an ArbiterConfig with standard normal weights,
// zero bias and no noise.
//
func DefaultArbiterConfig(n int, seed int64) ArbiterConfig {
	return ArbiterConfig{N: n, Seed: seed, WeightSigma: 1}
}

// sampleWeights draws the m stage weights and the bias weight of one unit
// according to cfg, using streams derived from the label and the instance
// seed.
func sampleWeights(cfg ArbiterConfig, label string, m int) (weights, bias []float64) {
	weights = make([]float64, m)
	wseed := SeedFrom(fmt.Sprintf("%s %d weights", label, cfg.Seed))
	if cfg.Gradient != 0 {
		sampleNormalMeans(weights, gradientMeans(cfg.Gradient, m), cfg.WeightSigma, wseed)
	} else {
		sampleNormal(weights, cfg.WeightMu, cfg.WeightSigma, wseed)
	}
	bias = make([]float64, 1)
	sampleNormal(bias, cfg.BiasMu, cfg.BiasSigma, SeedFrom(fmt.Sprintf("%s %d bias", label, cfg.Seed)))
	return weights, bias
}

// sigmaNoise converts the noisiness parameter into the standard deviation of
// the per-call weight noise, scaled with the chain length and the weight
// sigma so that noisiness keeps its meaning across chain sizes.
func sigmaNoise(cfg ArbiterConfig, m int) float64 {
	return cfg.Noisiness * math.Sqrt(float64(m)) * cfg.WeightSigma
}

// ArbiterPUF is a single arbiter chain: a one-unit LTFArray over the ATF
// transform with normally distributed stage weights.
//
type ArbiterPUF struct {
	*LTFArray
}

// NewArbiterPUF builds an arbiter chain from cfg.
//
func NewArbiterPUF(cfg ArbiterConfig) (*ArbiterPUF, error) {
	if cfg.N <= 0 {
		return nil, errors.Errorf("challenge length must be positive, got %d", cfg.N)
	}
	weights, bias := sampleWeights(cfg, "ArbiterPUF", cfg.N)
	a, err := NewLTFArray(LTFConfig{
		Weights:    mat.NewDense(1, cfg.N, weights),
		Bias:       bias,
		Transform:  TransformATF,
		SigmaNoise: sigmaNoise(cfg, cfg.N),
		NoiseSeed:  SeedFrom(fmt.Sprintf("ArbiterPUF %d noise", cfg.Seed)),
	})
	if err != nil {
		return nil, err
	}
	return &ArbiterPUF{LTFArray: a}, nil
}

// FeedForwardConfig holds the construction parameters of a feed-forward
// arbiter chain: an arbiter chain plus an ordered list of loops.
//
type FeedForwardConfig struct {
	ArbiterConfig
	// Loops are applied in order; each inserts one derived bit into the
	// extended challenge, so the chain has N+len(Loops) stages.
	Loops []Loop
}

// FeedForwardArbiterPUF is an arbiter chain with feed-forward loops. Each
// loop taps the sign of the delay difference after its Start stage and feeds
// it back as the challenge bit of position End, so the evaluated challenge
// grows by one bit per loop before the final weighted sum.
//
type FeedForwardArbiterPUF struct {
	ltf   *LTFArray
	loops []Loop
	n     int
}

// NewFeedForwardArbiterPUF builds a feed-forward arbiter chain from cfg.
// The chain has cfg.N+len(cfg.Loops) weighted stages plus the bias weight.
//
func NewFeedForwardArbiterPUF(cfg FeedForwardConfig) (*FeedForwardArbiterPUF, error) {
	if cfg.N <= 0 {
		return nil, errors.Errorf("challenge length must be positive, got %d", cfg.N)
	}
	for i, l := range cfg.Loops {
		if l.Start < 0 || l.Start >= l.End {
			return nil, errors.Errorf("loop %d (%d,%d): want 0 <= start < end", i, l.Start, l.End)
		}
	}
	m := cfg.N + len(cfg.Loops)
	weights, bias := sampleWeights(cfg.ArbiterConfig, "FeedForwardArbiterPUF", m)
	a, err := NewLTFArray(LTFConfig{
		Weights:    mat.NewDense(1, m, weights),
		Bias:       bias,
		Transform:  TransformATF,
		SigmaNoise: sigmaNoise(cfg.ArbiterConfig, m),
		NoiseSeed:  SeedFrom(fmt.Sprintf("FeedForwardArbiterPUF %d noise", cfg.Seed)),
	})
	if err != nil {
		return nil, err
	}
	loops := make([]Loop, len(cfg.Loops))
	copy(loops, cfg.Loops)
	return &FeedForwardArbiterPUF{ltf: a, loops: loops, n: cfg.N}, nil
}

// ChallengeLength returns the external challenge length, excluding loop bits.
func (p *FeedForwardArbiterPUF) ChallengeLength() int { return p.n }

// Loops returns the loop specifications, in application order.
func (p *FeedForwardArbiterPUF) Loops() []Loop { return p.loops }

// WeightArray returns the live 1×(n+L+1) weight matrix of the underlying
// threshold unit, bias in the last column. Mutating it rewires the device;
// intended for test fixtures.
func (p *FeedForwardArbiterPUF) WeightArray() *mat.Dense { return p.ltf.WeightArray() }

// loopBit computes the derived bit of a loop tapping the chain after stage
// start: the sign of the summed ATF features of the first start bits of the
// extended challenge. A zero delay difference resolves to +1.
func loopBit(c []int8, start int) int8 {
	sum := 0
	p := int8(1)
	for j := start - 1; j >= 0; j-- {
		p *= c[j]
		sum += int(p)
	}
	if sum < 0 {
		return -1
	}
	return 1
}

// extend applies the loops to each challenge of the batch, growing it by one
// derived bit per loop. Loops are processed in order on the growing buffer:
// later loops observe the positions already shifted by earlier insertions.
//
func (p *FeedForwardArbiterPUF) extend(challenges [][]int8) ([][]int8, error) {
	extended := make([][]int8, len(challenges))
	for i, c := range challenges {
		buf := make([]int8, len(c), len(c)+len(p.loops))
		copy(buf, c)
		for _, l := range p.loops {
			if l.End > len(buf) {
				return nil, errors.Errorf("loop (%d,%d): feed point beyond extended challenge length %d", l.Start, l.End, len(buf))
			}
			bit := loopBit(buf, l.Start)
			buf = append(buf, 0)
			copy(buf[l.End+1:], buf[l.End:])
			buf[l.End] = bit
		}
		extended[i] = buf
	}
	return extended, nil
}

// Val evaluates a batch of challenges and returns the raw delay differences
// of the extended challenges.
//
func (p *FeedForwardArbiterPUF) Val(challenges [][]int8) ([]float64, error) {
	if _, err := checkBatch(challenges, p.n); err != nil {
		return nil, err
	}
	extended, err := p.extend(challenges)
	if err != nil {
		return nil, err
	}
	return p.ltf.Val(extended)
}

// Eval evaluates a batch of challenges and returns the ±1 responses.
//
func (p *FeedForwardArbiterPUF) Eval(challenges [][]int8) ([]int8, error) {
	vals, err := p.Val(challenges)
	if err != nil {
		return nil, err
	}
	responses := make([]int8, len(vals))
	for i, v := range vals {
		responses[i] = sign(v)
	}
	return responses, nil
}

// XORArbiterConfig holds the construction parameters of a k-chain XOR
// arbiter.
//
type XORArbiterConfig struct {
	// N is the challenge length, K the number of parallel chains.
	N, K int
	// Seed drives the weight and noise sampling of all chains.
	Seed int64
	// Noisiness scales the per-evaluation weight noise of each chain.
	Noisiness float64
}

// XORArbiterPUF is a set of k independently weighted plain arbiter chains
// whose responses are multiplied. Implemented natively as a k-unit LTFArray
// since all chains share the ATF features of the same challenge.
//
type XORArbiterPUF struct {
	*LTFArray
}

// NewXORArbiterPUF builds a k-chain XOR arbiter from cfg. The chains use
// standard normal weights and zero bias.
//
func NewXORArbiterPUF(cfg XORArbiterConfig) (*XORArbiterPUF, error) {
	if cfg.N <= 0 {
		return nil, errors.Errorf("challenge length must be positive, got %d", cfg.N)
	}
	if cfg.K <= 0 {
		return nil, errors.Errorf("chain count must be positive, got %d", cfg.K)
	}
	a, err := NewLTFArray(LTFConfig{
		Weights:    NormalWeights(cfg.N, cfg.K, 0, 1, SeedFrom(fmt.Sprintf("XORArbiterPUF %d weights", cfg.Seed))),
		Transform:  TransformATF,
		SigmaNoise: cfg.Noisiness * math.Sqrt(float64(cfg.N)),
		NoiseSeed:  SeedFrom(fmt.Sprintf("XORArbiterPUF %d noise", cfg.Seed)),
	})
	if err != nil {
		return nil, err
	}
	return &XORArbiterPUF{LTFArray: a}, nil
}

// XORFeedForwardConfig holds the construction parameters of a k-chain XOR
// feed-forward arbiter.
//
type XORFeedForwardConfig struct {
	// N is the external challenge length, K the number of chains.
	N, K int
	// Seed derives one independent seed per chain.
	Seed int64
	// Noisiness scales the per-evaluation weight noise of each chain.
	Noisiness float64
	// Loops is the loop set applied to every chain (homogeneous topology).
	Loops []Loop
	// UnitLoops, when set, gives each chain its own loop set (inhomogeneous
	// topology) and takes precedence over Loops. Its length must equal K.
	UnitLoops [][]Loop
}

// XORFeedForwardArbiterPUF is a set of k feed-forward arbiter chains, each
// independently seeded and with its own loop topology, evaluated on the same
// external challenge. Its response is the product of the chain responses.
//
type XORFeedForwardArbiterPUF struct {
	sims []*FeedForwardArbiterPUF
	n    int
}

// NewXORFeedForwardArbiterPUF builds a k-chain XOR feed-forward arbiter from
// cfg.
//
func NewXORFeedForwardArbiterPUF(cfg XORFeedForwardConfig) (*XORFeedForwardArbiterPUF, error) {
	if cfg.K <= 0 {
		return nil, errors.Errorf("chain count must be positive, got %d", cfg.K)
	}
	if cfg.UnitLoops != nil && len(cfg.UnitLoops) != cfg.K {
		return nil, errors.Errorf("got %d per-chain loop sets, want one per chain (%d)", len(cfg.UnitLoops), cfg.K)
	}
	sims := make([]*FeedForwardArbiterPUF, cfg.K)
	for i := range sims {
		loops := cfg.Loops
		if cfg.UnitLoops != nil {
			loops = cfg.UnitLoops[i]
		}
		unit := DefaultArbiterConfig(cfg.N, int64(SeedFrom(fmt.Sprintf("XORFeedForwardArbiterPUF %d unit %d", cfg.Seed, i))))
		unit.Noisiness = cfg.Noisiness
		sim, err := NewFeedForwardArbiterPUF(FeedForwardConfig{ArbiterConfig: unit, Loops: loops})
		if err != nil {
			return nil, errors.Wrapf(err, "chain %d", i)
		}
		sims[i] = sim
	}
	return &XORFeedForwardArbiterPUF{sims: sims, n: cfg.N}, nil
}

// ChallengeLength returns the external challenge length.
func (p *XORFeedForwardArbiterPUF) ChallengeLength() int { return p.n }

// Simulations returns the underlying chains, in XOR order. Mutating their
// weight arrays rewires the device; intended for test fixtures.
func (p *XORFeedForwardArbiterPUF) Simulations() []*FeedForwardArbiterPUF { return p.sims }

// Val evaluates a batch of challenges on every chain and returns the
// elementwise product of the raw chain values.
//
func (p *XORFeedForwardArbiterPUF) Val(challenges [][]int8) ([]float64, error) {
	N, err := checkBatch(challenges, p.n)
	if err != nil {
		return nil, err
	}
	vals := make([]float64, N)
	for i := range vals {
		vals[i] = 1
	}
	for _, sim := range p.sims {
		sv, err := sim.Val(challenges)
		if err != nil {
			return nil, err
		}
		for i, v := range sv {
			vals[i] *= v
		}
	}
	return vals, nil
}

// Eval evaluates every chain independently and returns the elementwise
// product of the chain responses, the arithmetic form of XOR over ±1 values.
//
func (p *XORFeedForwardArbiterPUF) Eval(challenges [][]int8) ([]int8, error) {
	N, err := checkBatch(challenges, p.n)
	if err != nil {
		return nil, err
	}
	responses := make([]int8, N)
	for i := range responses {
		responses[i] = 1
	}
	for _, sim := range p.sims {
		sr, err := sim.Eval(challenges)
		if err != nil {
			return nil, err
		}
		for i, r := range sr {
			responses[i] *= r
		}
	}
	return responses, nil
}
