// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pufsim

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// RandomInputs returns a batch of N uniformly random ±1 challenges of length
// n. The batch is a pure function of the seed: calling RandomInputs again
// with the same arguments reproduces the same batch.
//
func RandomInputs(n, N int, seed int64) ([][]int8, error) {
	if n <= 0 {
		return nil, errors.Errorf("challenge length must be positive, got %d", n)
	}
	if N <= 0 {
		return nil, errors.Errorf("batch size must be positive, got %d", N)
	}
	rng := rand.New(rand.NewSource(SeedFrom(fmt.Sprintf("random inputs %d", seed))))
	challenges := make([][]int8, N)
	for i := range challenges {
		c := make([]int8, n)
		for j := range c {
			if rng.Uint64()&1 == 0 {
				c[j] = -1
			} else {
				c[j] = 1
			}
		}
		challenges[i] = c
	}
	return challenges, nil
}
