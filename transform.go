package pufsim

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// A Transform is a pure function mapping a batch of ±1 challenges to a batch
// of feature vectors, one row per challenge. The feature count must equal the
// number of challenge positions the array's weight rows consume.
//
// TransformID and TransformATF are the built-in transforms; callers may
// supply their own with the same contract. Transforms must be total over ±1
// challenges of the declared length; behavior on other entry values is
// undefined.
//
type Transform func(challenges [][]int8) (*mat.Dense, error)

// TransformID returns the challenges unchanged as features.
//
func TransformID(challenges [][]int8) (*mat.Dense, error) {
	if len(challenges) == 0 {
		return nil, errors.New("empty challenge batch")
	}
	N, n := len(challenges), len(challenges[0])
	f := mat.NewDense(N, n, nil)
	for i, c := range challenges {
		for j, v := range c {
			f.Set(i, j, float64(v))
		}
	}
	return f, nil
}

// TransformATF computes the arbiter delay model features: feature i is the
// product of the challenge entries from position i to n−1 inclusive, i.e. a
// right-to-left cumulative product. Each stage's sign depends on the parity
// of all downstream switch settings.
//
func TransformATF(challenges [][]int8) (*mat.Dense, error) {
	if len(challenges) == 0 {
		return nil, errors.New("empty challenge batch")
	}
	N, n := len(challenges), len(challenges[0])
	f := mat.NewDense(N, n, nil)
	for i, c := range challenges {
		p := int8(1)
		for j := n - 1; j >= 0; j-- {
			p *= c[j]
			f.Set(i, j, float64(p))
		}
	}
	return f, nil
}
