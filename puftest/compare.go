// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package puftest provides utility functions for testing simulated PUFs.
//
package puftest

import (
	"strconv"
	"strings"
	"testing"

	"github.com/db47h/pufsim"
)

func challengeString(c []int8) string {
	var b strings.Builder
	b.WriteRune('[')
	for i, v := range c {
		if i > 0 {
			b.WriteRune(' ')
		}
		b.WriteString(strconv.Itoa(int(v)))
	}
	b.WriteRune(']')
	return b.String()
}

// Equivalent takes two simulators of the same challenge length and compares
// their responses over batches of random challenges, failing the test on the
// first challenge they disagree on.
//
func Equivalent(t *testing.T, a, b pufsim.Simulator, seed int64) {
	t.Helper()

	if a.ChallengeLength() != b.ChallengeLength() {
		t.Fatalf("challenge length mismatch: %d vs %d", a.ChallengeLength(), b.ChallengeLength())
	}

	const batches, samples = 4, 256
	for batch := 0; batch < batches; batch++ {
		challenges, err := pufsim.RandomInputs(a.ChallengeLength(), samples, seed+int64(batch))
		if err != nil {
			t.Fatal(err)
		}
		ra, err := a.Eval(challenges)
		if err != nil {
			t.Fatal(err)
		}
		rb, err := b.Eval(challenges)
		if err != nil {
			t.Fatal(err)
		}
		for i := range ra {
			if ra[i] != rb[i] {
				t.Fatalf("\nchallenge %s\nExpected response %d\nGot %d", challengeString(challenges[i]), ra[i], rb[i])
			}
		}
	}
}
