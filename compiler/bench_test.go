package compiler_test

import (
	"testing"

	"github.com/katalvlaran/lemnos/compiler"
	"github.com/katalvlaran/lemnos/index"
	"github.com/katalvlaran/lemnos/shape"
)

func BenchmarkCompile_Repeat(b *testing.B) {
	s, _, _ := repeatSchema(b)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = compiler.Compile(s, rowInput, index.Of(0), 64)
	}
}

func BenchmarkCompile_Conv(b *testing.B) {
	s := convSchema(b)
	in := []shape.Shape{shape.Locked(3, 32, 32)}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = compiler.Compile(s, in, index.Seeded{Seed: int64(i)}, 48)
	}
}
