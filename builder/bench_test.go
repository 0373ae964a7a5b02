package builder_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/ivpbuild/builder"
)

func BenchmarkBuildTransit(b *testing.B) {
	job, err := builder.LoadJob(strings.NewReader(transitJob))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := builder.Build(job); err != nil {
			b.Fatal(err)
		}
	}
}
