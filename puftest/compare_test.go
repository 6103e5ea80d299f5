package puftest_test

import (
	"testing"

	ps "github.com/db47h/pufsim"
	"github.com/db47h/pufsim/puftest"
)

func TestEquivalent(t *testing.T) {
	arbiter, err := ps.NewArbiterPUF(ps.DefaultArbiterConfig(32, 1))
	if err != nil {
		t.Fatal(err)
	}
	// hand-built equivalent: the same weight stream on a plain threshold array
	plain, err := ps.NewLTFArray(ps.LTFConfig{
		Weights:   ps.NormalWeights(32, 1, 0, 1, ps.SeedFrom("ArbiterPUF 1 weights")),
		Transform: ps.TransformATF,
	})
	if err != nil {
		t.Fatal(err)
	}
	puftest.Equivalent(t, arbiter, plain, 1)
}
