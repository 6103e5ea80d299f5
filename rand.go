package pufsim

import (
	"crypto/sha256"
	"encoding/binary"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SeedFrom derives a reproducible 64 bit seed from a textual label.
//
// Independently-purposed random streams of one instance (weights, bias,
// noise) are seeded from distinct labels built around the instance seed, so
// that two instances sharing a seed draw identical sequences per purpose
// while the purposes stay uncorrelated.
//
func SeedFrom(label string) uint64 {
	h := sha256.Sum256([]byte(label))
	return binary.BigEndian.Uint64(h[:8])
}

// sampleNormal fills dst with draws mu + sigma*z, z standard normal, from a
// fresh stream seeded with seed. The mu + sigma*z form keeps draws
// bit-identical across callers that use different distribution parameters on
// the same seed.
func sampleNormal(dst []float64, mu, sigma float64, seed uint64) {
	std := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)}
	for i := range dst {
		dst[i] = mu + sigma*std.Rand()
	}
}

// sampleNormalMeans is sampleNormal with a per-position mean.
func sampleNormalMeans(dst []float64, mu []float64, sigma float64, seed uint64) {
	std := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)}
	for i := range dst {
		dst[i] = mu[i%len(mu)] + sigma*std.Rand()
	}
}

// gradientMeans returns n weight means evenly spread over a symmetric range
// of width g centered at 0, modeling a systematic delay skew along the chain.
func gradientMeans(g float64, n int) []float64 {
	mu := make([]float64, n)
	if n == 1 {
		mu[0] = -g / 2
		return mu
	}
	step := g / float64(n-1)
	for i := range mu {
		mu[i] = -g/2 + float64(i)*step
	}
	return mu
}

// NormalWeights samples a k×n weight matrix whose entries are independent
// draws from N(mu, sigma²), seeded with seed. Rows are sampled in order, so
// the first row of a k×n matrix equals a 1×n matrix sampled from the same
// seed.
//
func NormalWeights(n, k int, mu, sigma float64, seed uint64) *mat.Dense {
	data := make([]float64, k*n)
	sampleNormal(data, mu, sigma, seed)
	return mat.NewDense(k, n, data)
}
