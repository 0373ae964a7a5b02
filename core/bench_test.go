package core_test

import (
	"testing"

	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/domain"
)

// tiledMap covers course x speed with 10x2 cells.
func tiledMap() *core.PDMap {
	dom := domain.MustParse("course,0,359,360:speed,0,5,26")
	var boxes []*core.Box
	for c := 0; c < 360; c += 10 {
		for s := 0; s < 26; s += 2 {
			b := core.NewBox(2, 1)
			hi := s + 1
			if hi > 25 {
				hi = 25
			}
			b.SetPts(0, c, c+9)
			b.SetPts(1, s, hi)
			b.SetWt(0, 1)
			boxes = append(boxes, b)
		}
	}
	return core.NewPDMap(dom, 1, boxes...)
}

func BenchmarkEvalLinear(b *testing.B) {
	pm := tiledMap()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pm.Eval(i%360, i%26)
	}
}

func BenchmarkEvalGrid(b *testing.B) {
	pm := tiledMap()
	pm.UpdateGrid()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pm.Eval(i%360, i%26)
	}
}
