// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package metrics provides the statistical primitives used to validate
// simulated PUFs against each other and against chance.
//
package metrics

import (
	"github.com/pkg/errors"

	"github.com/db47h/pufsim"
)

// Bias evaluates the simulator on samples random challenges and returns the
// mean of its ±1 responses. 0 is the unbiased ideal; ±1 signals a constant
// device.
//
func Bias(s pufsim.Simulator, seed int64, samples int) (float64, error) {
	challenges, err := pufsim.RandomInputs(s.ChallengeLength(), samples, seed)
	if err != nil {
		return 0, err
	}
	responses, err := s.Eval(challenges)
	if err != nil {
		return 0, err
	}
	sum := 0
	for _, r := range responses {
		sum += int(r)
	}
	return float64(sum) / float64(len(responses)), nil
}

// Similarity evaluates both simulators on one shared batch of samples random
// challenges and returns the fraction of matching responses. 1 signals
// functionally identical behavior under the drawn challenges.
//
func Similarity(a, b pufsim.Simulator, seed int64, samples int) (float64, error) {
	if a.ChallengeLength() != b.ChallengeLength() {
		return 0, errors.Errorf("challenge length mismatch: %d vs %d", a.ChallengeLength(), b.ChallengeLength())
	}
	challenges, err := pufsim.RandomInputs(a.ChallengeLength(), samples, seed)
	if err != nil {
		return 0, err
	}
	ra, err := a.Eval(challenges)
	if err != nil {
		return 0, err
	}
	rb, err := b.Eval(challenges)
	if err != nil {
		return 0, err
	}
	matches := 0
	for i := range ra {
		if ra[i] == rb[i] {
			matches++
		}
	}
	return float64(matches) / float64(len(ra)), nil
}
