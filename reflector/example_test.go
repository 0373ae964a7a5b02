package reflector_test

import (
	"fmt"

	"github.com/katalvlaran/ivpbuild/domain"
	"github.com/katalvlaran/ivpbuild/reflector"
)

// ExampleReflector approximates a line with two uniform pieces.
func ExampleReflector() {
	line := reflector.EvalFunc{
		Dom: domain.MustParse("x,0,9,10"),
		Fn:  func(v []float64) float64 { return 3*v[0] + 1 },
	}
	r, _ := reflector.New(line)
	_ = r.SetParams("uniform_amount=2")
	n, _ := r.Create(-1, -1, -1)
	fmt.Println(n, r.UniformPieceString())

	f, _ := r.ExtractFunction(true)
	lo, _ := f.Eval(0)
	hi, _ := f.Eval(9)
	fmt.Printf("%.0f %.0f\n", lo, hi)
	// Output:
	// 2 count:2, x:5, dref_pcs:0, sref_pcs:0
	// 0 100
}

// ExampleGenUnifBox shows the cell chosen for a 50-piece budget.
func ExampleGenUnifBox() {
	b := reflector.GenUnifBox(domain.MustParse("x,0,9,10:y,0,9,10"), 50)
	fmt.Println(b.Hi(0)+1, b.Hi(1)+1)
	// Output:
	// 2 2
}
