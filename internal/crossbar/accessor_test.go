package crossbar

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arsalan1374/MemTorch/internal/memristor"
)

// rebuildFromTiles flattens a tiled conductance view back into one
// row-major matrix.
func rebuildFromTiles(c Conductances) []float64 {
	th, tw := c.TileShape[0], c.TileShape[1]
	full := make([]float64, c.Rows*c.Cols)
	for tr, mapRow := range c.TileMap {
		for tc, idx := range mapRow {
			tile := c.Tiles[idx]
			for i := 0; i < min(th, c.Rows-tr*th); i++ {
				for j := 0; j < min(tw, c.Cols-tc*tw); j++ {
					full[(tr*th+i)*c.Cols+tc*tw+j] = tile[i*tw+j]
				}
			}
		}
	}
	return full
}

func TestReadConductances_TiledMatchesMonolithic(t *testing.T) {
	w := []float64{0.5, -1.0, 1.5, 0.25, -0.75, 0}

	for _, scheme := range []Scheme{DoubleColumn, SingleColumn} {
		t.Run(scheme.String(), func(t *testing.T) {
			_, mono := Build(w, 3, 2, idealModel(), Config{Scheme: scheme, Transistor: true})
			_, tiled := Build(w, 3, 2, idealModel(), Config{Scheme: scheme, Transistor: true, TileShape: [2]int{2, 2}})

			want := mono.ReadConductances()
			got := tiled.ReadConductances()
			require.True(t, got.Tiled())

			flat := rebuildFromTiles(got)
			for i := range want.Matrix {
				assert.InDelta(t, want.Matrix[i], flat[i], 1e-15, "cell %d", i)
			}
		})
	}
}

func TestReadConductances_TiledPaddingFoldsToZero(t *testing.T) {
	// 3x3 weights under 2x2 tiles leave padded cells on every edge
	// tile. The single-column fold subtracts the reference conductance
	// from populated cells only; padding must stay exactly zero.
	w := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	_, acc := Build(w, 3, 3, idealModel(), Config{Scheme: SingleColumn, Transistor: true, TileShape: [2]int{2, 2}})

	c := acc.ReadConductances()
	require.True(t, c.Tiled())

	right := c.Tiles[c.TileMap[0][1]]
	assert.Equal(t, 0.0, right[1], "padded column cell")
	assert.Equal(t, 0.0, right[3], "padded column cell")

	bottom := c.Tiles[c.TileMap[1][0]]
	assert.Equal(t, 0.0, bottom[2], "padded row cell")
	assert.Equal(t, 0.0, bottom[3], "padded row cell")
}

func TestSimulate_IdealMatchesDense(t *testing.T) {
	const rows, cols, n = 3, 2, 2
	w := []float64{0.5, -1.0, 1.5, 0.25, -0.75, 0}
	v := []float64{1, 0, -0.5, 0.3, 2, 1}

	// Dense reference in weight units.
	want := make([]float64, n*cols)
	for p := 0; p < n; p++ {
		for j := 0; j < cols; j++ {
			for i := 0; i < rows; i++ {
				want[p*cols+j] += v[p*rows+i] * w[i*cols+j]
			}
		}
	}

	for _, scheme := range []Scheme{DoubleColumn, SingleColumn} {
		for _, tileShape := range [][2]int{{0, 0}, {2, 2}} {
			name := fmt.Sprintf("%v_tile%dx%d", scheme, tileShape[0], tileShape[1])
			t.Run(name, func(t *testing.T) {
				cfg := Config{Scheme: scheme, Transistor: true, TileShape: tileShape}
				set, acc := Build(w, rows, cols, idealModel(), cfg)

				got := acc.Simulate(v, n)
				require.Len(t, got, len(want))
				for i := range want {
					assert.InDelta(t, want[i], got[i]*set.Scale, 1e-9, "value %d", i)
				}
			})
		}
	}
}

func TestSimulate_NonLinearConvergesToIdeal(t *testing.T) {
	w := []float64{0.5, -1.0, 1.5, 0.25, -0.75, 0}
	v := []float64{1, 0.2, -0.5, 0.3, 0.8, 1}

	ideal, idealAcc := Build(w, 3, 2, idealModel(), Config{Transistor: true})
	wantRaw := idealAcc.Simulate(v, 2)

	// A huge knee voltage flattens sinh into its linear regime.
	linearish := memristor.NewStanfordPKU(memristor.DefaultROn, memristor.DefaultROff, 1e6)
	set, acc := Build(w, 3, 2, linearish, Config{Transistor: true})
	got := acc.Simulate(v, 2)

	require.Equal(t, ideal.Scale, set.Scale)
	for i := range wantRaw {
		assert.InDelta(t, wantRaw[i]*ideal.Scale, got[i]*set.Scale, 1e-9, "value %d", i)
	}
}

func TestSimulate_NonLinearDeviates(t *testing.T) {
	w := []float64{0.5, -1.0, 1.5, 0.25, -0.75, 0.8}
	v := []float64{1, 0.9, -0.5}

	_, idealAcc := Build(w, 3, 2, idealModel(), Config{Transistor: true})
	want := idealAcc.Simulate(v, 1)

	nonlinear := memristor.NewStanfordPKU(memristor.DefaultROn, memristor.DefaultROff, memristor.DefaultV0)
	_, acc := Build(w, 3, 2, nonlinear, Config{Transistor: true})
	got := acc.Simulate(v, 1)

	// At a 0.25V knee, volt-scale inputs drive sinh far superlinear.
	var maxRel float64
	for i := range want {
		if want[i] == 0 {
			continue
		}
		rel := math.Abs(got[i]-want[i]) / math.Abs(want[i])
		if rel > maxRel {
			maxRel = rel
		}
	}
	assert.Greater(t, maxRel, 1.0, "sinh response should deviate strongly from ohmic")
}

func TestSimulate_VoltageShapeMismatch(t *testing.T) {
	w := []float64{1, 2}
	_, acc := Build(w, 2, 1, idealModel(), Config{Transistor: true})
	assert.Panics(t, func() { acc.Simulate([]float64{1, 2, 3}, 1) })

	_, tiled := Build(w, 2, 1, idealModel(), Config{Transistor: true, TileShape: [2]int{1, 1}})
	assert.Panics(t, func() { tiled.Simulate([]float64{1, 2, 3}, 1) })
}
