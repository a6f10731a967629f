package tensor

import (
	"fmt"
	"testing"
)

func BenchmarkTensorCreation(b *testing.B) {
	backend := NewMockBackend()
	shape := Shape{100, 100}

	b.Run("Zeros", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Zeros[float32](shape, backend)
		}
	})

	b.Run("Ones", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Ones[float32](shape, backend)
		}
	})

	b.Run("Randn", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Randn[float32](shape, backend)
		}
	})
}

func BenchmarkShapeOperations(b *testing.B) {
	shape1 := Shape{2, 4, 8, 8, 8}
	shape2 := Shape{1, 4, 1, 1, 1}

	b.Run("NumElements", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = shape1.NumElements()
		}
	})

	b.Run("ComputeStrides", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = shape1.ComputeStrides()
		}
	})

	b.Run("BroadcastShapes", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _, _ = BroadcastShapes(shape1, shape2)
		}
	})
}

func BenchmarkMatMul(b *testing.B) {
	backend := NewMockBackend()
	sizes := []int{10, 50, 100}

	for _, size := range sizes {
		shape := Shape{size, size}
		x := Randn[float32](shape, backend)
		y := Randn[float32](shape, backend)

		b.Run(fmt.Sprintf("MatMul-%dx%d", size, size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = x.MatMul(y)
			}
		})
	}
}

func BenchmarkConv3DPipeline(b *testing.B) {
	backend := NewMockBackend()

	input := Randn[float32](Shape{1, 4, 8, 8, 8}, backend)
	kernel := Randn[float32](Shape{4, 4, 3, 3, 3}, backend)
	elem := Randn[float32](Shape{4, 8, 8, 8}, backend)

	b.Run("Conv3D", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = backend.Conv3D(input.Raw(), kernel.Raw(), [3]int{1, 1, 1}, [3]int{0, 0, 0})
		}
	})

	b.Run("Pad3D", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = backend.Pad3D(elem.Raw(), [3]int{1, 1, 1})
		}
	})

	b.Run("Unfold3D", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = backend.Unfold3D(elem.Raw(), [3]int{3, 3, 3}, [3]int{1, 1, 1})
		}
	})
}

func BenchmarkTensorAccess(b *testing.B) {
	backend := NewMockBackend()
	tensor := Randn[float32](Shape{100, 100}, backend)

	b.Run("At", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = tensor.At(50, 50)
		}
	})

	b.Run("Set", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			tensor.Set(1.0, 50, 50)
		}
	})

	b.Run("Data", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = tensor.Data()
		}
	})
}
