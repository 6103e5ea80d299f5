package pufsim_test

import (
	"reflect"
	"testing"

	ps "github.com/db47h/pufsim"
)

func Test_random_inputs(t *testing.T) {
	a, err := ps.RandomInputs(8, 32, 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 32 || len(a[0]) != 8 {
		t.Fatalf("batch is %d×%d, want 32×8", len(a), len(a[0]))
	}
	for i, c := range a {
		for j, v := range c {
			if v != 1 && v != -1 {
				t.Fatalf("entry (%d,%d) = %d, want ±1", i, j, v)
			}
		}
	}

	b, err := ps.RandomInputs(8, 32, 42)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different batches")
	}

	c, err := ps.RandomInputs(8, 32, 43)
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds produced the same batch")
	}
}

func Test_random_inputs_errors(t *testing.T) {
	if _, err := ps.RandomInputs(0, 10, 1); err == nil {
		t.Error("accepted challenge length 0")
	}
	if _, err := ps.RandomInputs(10, 0, 1); err == nil {
		t.Error("accepted batch size 0")
	}
}

func Test_seed_from(t *testing.T) {
	if ps.SeedFrom("weights 1") != ps.SeedFrom("weights 1") {
		t.Error("SeedFrom is not deterministic")
	}
	if ps.SeedFrom("weights 1") == ps.SeedFrom("noise 1") {
		t.Error("distinct labels produced the same seed")
	}
}

func Test_normal_weights(t *testing.T) {
	w := ps.NormalWeights(16, 4, 0, 1, ps.SeedFrom("test weights"))
	r, c := w.Dims()
	if r != 4 || c != 16 {
		t.Fatalf("weights are %d×%d, want 4×16", r, c)
	}

	// reproducible, and the first row of a taller matrix matches a 1-row
	// matrix drawn from the same seed
	w1 := ps.NormalWeights(16, 1, 0, 1, ps.SeedFrom("test weights"))
	for j := 0; j < 16; j++ {
		if w.At(0, j) != w1.At(0, j) {
			t.Fatalf("weight (0,%d) differs between draws: %v vs %v", j, w.At(0, j), w1.At(0, j))
		}
	}

	// the configured mean shifts every draw
	ws := ps.NormalWeights(16, 1, 10, 1, ps.SeedFrom("test weights"))
	for j := 0; j < 16; j++ {
		if ws.At(0, j) != w1.At(0, j)+10 {
			t.Fatalf("weight (0,%d) = %v, want %v", j, ws.At(0, j), w1.At(0, j)+10)
		}
	}
}
