package metrics_test

import (
	"testing"

	ps "github.com/db47h/pufsim"
	"github.com/db47h/pufsim/metrics"
)

func Test_similarity_self(t *testing.T) {
	puf, err := ps.NewArbiterPUF(ps.DefaultArbiterConfig(32, 1))
	if err != nil {
		t.Fatal(err)
	}
	s, err := metrics.Similarity(puf, puf, 1, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if s != 1 {
		t.Errorf("similarity = %v, want 1", s)
	}
}

func Test_similarity_length_mismatch(t *testing.T) {
	a, err := ps.NewArbiterPUF(ps.DefaultArbiterConfig(32, 1))
	if err != nil {
		t.Fatal(err)
	}
	b, err := ps.NewArbiterPUF(ps.DefaultArbiterConfig(64, 1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := metrics.Similarity(a, b, 1, 100); err == nil {
		t.Error("Similarity accepted simulators of different challenge lengths")
	}
}

func Test_similarity_distinct_seeds(t *testing.T) {
	a, err := ps.NewArbiterPUF(ps.DefaultArbiterConfig(64, 1))
	if err != nil {
		t.Fatal(err)
	}
	b, err := ps.NewArbiterPUF(ps.DefaultArbiterConfig(64, 2))
	if err != nil {
		t.Fatal(err)
	}
	s, err := metrics.Similarity(a, b, 1, 1000)
	if err != nil {
		t.Fatal(err)
	}
	// independent chains agree on roughly half the challenges
	if s <= .1 || s >= .9 {
		t.Errorf("similarity of independent chains = %v, want a value well inside (0,1)", s)
	}
}

func Test_bias(t *testing.T) {
	puf, err := ps.NewArbiterPUF(ps.DefaultArbiterConfig(32, 1))
	if err != nil {
		t.Fatal(err)
	}
	// odd sample count: the mean of ±1 responses cannot land on 0
	b, err := metrics.Bias(puf, 1, 1001)
	if err != nil {
		t.Fatal(err)
	}
	if b <= -1 || b >= 1 || b == 0 {
		t.Errorf("bias = %v, want non-zero strictly inside (-1, 1)", b)
	}
}
