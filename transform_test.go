package pufsim_test

import (
	"testing"

	ps "github.com/db47h/pufsim"
)

func Test_transform_atf(t *testing.T) {
	td := []struct {
		challenge []int8
		features  []float64
	}{
		{[]int8{1}, []float64{1}},
		{[]int8{-1}, []float64{-1}},
		{[]int8{1, -1}, []float64{-1, -1}},
		{[]int8{1, 1, 1, 1}, []float64{1, 1, 1, 1}},
		{[]int8{1, -1, -1, 1}, []float64{1, 1, -1, 1}},
		{[]int8{1, -1, -1, -1, 1, 1}, []float64{-1, -1, 1, -1, 1, 1}},
	}
	for _, d := range td {
		f, err := ps.TransformATF([][]int8{d.challenge})
		if err != nil {
			t.Fatal(err)
		}
		for j, exp := range d.features {
			if got := f.At(0, j); got != exp {
				t.Errorf("TransformATF(%v)[%d] = %v, want %v", d.challenge, j, got, exp)
			}
		}
	}
}

func Test_transform_id(t *testing.T) {
	challenges := [][]int8{
		{1, -1, -1, 1},
		{-1, -1, 1, 1},
	}
	f, err := ps.TransformID(challenges)
	if err != nil {
		t.Fatal(err)
	}
	r, c := f.Dims()
	if r != 2 || c != 4 {
		t.Fatalf("feature batch is %d×%d, want 2×4", r, c)
	}
	for i, ch := range challenges {
		for j, v := range ch {
			if got := f.At(i, j); got != float64(v) {
				t.Errorf("TransformID(%v)[%d] = %v, want %v", ch, j, got, v)
			}
		}
	}
}
