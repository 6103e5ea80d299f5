// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pufsim

import (
	"github.com/pkg/errors"
)

// A Simulator is a challenge-response device. It accepts batches of ±1
// challenges of a fixed length and produces one ±1 response per challenge.
//
// This is the complete surface outer layers (dataset tooling, attack
// estimation, plotting) need from the engine.
//
type Simulator interface {
	// ChallengeLength returns the challenge length n the device was built for.
	ChallengeLength() int
	// Eval evaluates a batch of challenges and returns their ±1 responses.
	Eval(challenges [][]int8) ([]int8, error)
}

// sign thresholds a raw delay difference to a ±1 response. Zero maps to +1;
// the same convention applies to feed-forward loop bits.
func sign(v float64) int8 {
	if v < 0 {
		return -1
	}
	return 1
}

// checkBatch verifies that a challenge batch is rectangular with rows of
// length n and returns the batch size.
func checkBatch(challenges [][]int8, n int) (int, error) {
	for i, c := range challenges {
		if len(c) != n {
			return 0, errors.Errorf("challenge %d has length %d, want %d", i, len(c), n)
		}
	}
	return len(challenges), nil
}
