package crossbar

import (
	"fmt"

	"github.com/arsalan1374/MemTorch/internal/memristor"
	"github.com/arsalan1374/MemTorch/internal/parallel"
	"github.com/arsalan1374/MemTorch/internal/quant"
)

// ADC describes the readout conversion applied to raw crossbar
// currents. A Method of quant.None leaves the readout analog.
type ADC struct {
	Bits         int
	OverflowRate float64
	Method       quant.Method
}

// Apply quantizes a burst of read currents in place.
func (a ADC) Apply(currents []float64) {
	if a.Method == quant.None {
		return
	}
	quant.Apply(currents, a.Bits, a.OverflowRate, a.Method)
}

// Conductances is the folded readout view of a Set: the differential
// pair (or reference offset) collapsed into one signed matrix, in
// weight order. Exactly one of Matrix or Tiles is populated.
type Conductances struct {
	Rows, Cols int

	// Matrix holds the monolithic folded conductances, row-major.
	Matrix []float64

	// Tiles, TileMap and TileShape hold the tiled folded view. Edge
	// tiles are zero-padded; padding folds to zero in both schemes.
	Tiles     [][]float64
	TileMap   [][]int
	TileShape [2]int
}

// Tiled reports whether the conductances are stored as tiles.
func (c Conductances) Tiled() bool {
	return c.Tiles != nil
}

// Accessor folds operations across the crossbars of a Set without
// exposing how they are stored. The two operations are fixed: read the
// folded conductance view, or push voltages through the device model.
type Accessor interface {
	// ReadConductances returns the folded conductance view.
	ReadConductances() Conductances

	// Simulate computes per-cell device read currents for a voltage
	// matrix of n rows (row-major [n, Rows]) and returns the folded
	// column currents [n, Cols]. The readout passes through the ADC
	// configured at Build time; the caller still owes the Set's Scale.
	Simulate(voltages []float64, n int) []float64
}

// MatMul multiplies a voltage matrix (row-major [n, Rows]) against a
// monolithic folded conductance matrix and returns the raw column
// currents [n, Cols]. Quantization and scaling are the caller's.
func MatMul(voltages []float64, n int, c Conductances) []float64 {
	if c.Tiled() {
		panic("crossbar: matmul needs a monolithic conductance matrix, got tiles")
	}
	if len(voltages) != n*c.Rows {
		panic(fmt.Sprintf("crossbar: voltage matrix has %d values, want %d rows x %d wordlines", len(voltages), n, c.Rows))
	}
	out := make([]float64, n*c.Cols)
	for p := 0; p < n; p++ {
		row := voltages[p*c.Rows : (p+1)*c.Rows]
		o := out[p*c.Cols : (p+1)*c.Cols]
		for i, vi := range row {
			if vi == 0 {
				continue
			}
			g := c.Matrix[i*c.Cols : (i+1)*c.Cols]
			for j := range o {
				o[j] += vi * g[j]
			}
		}
	}
	return out
}

type monolithicAccessor struct {
	set   *Set
	model memristor.Model
	adc   ADC
	par   parallel.Config
}

type tiledAccessor struct {
	set   *Set
	model memristor.Model
	adc   ADC
	par   parallel.Config
}

func (a *monolithicAccessor) ReadConductances() Conductances {
	s := a.set
	folded := make([]float64, s.Rows*s.Cols)
	switch s.Scheme {
	case DoubleColumn:
		pos, neg := s.Crossbars[0].G, s.Crossbars[1].G
		for i := range folded {
			folded[i] = pos[i] - neg[i]
		}
	case SingleColumn:
		g := s.Crossbars[0].G
		for i := range folded {
			folded[i] = g[i] - s.GRef
		}
	}
	return Conductances{Rows: s.Rows, Cols: s.Cols, Matrix: folded}
}

func (a *monolithicAccessor) Simulate(voltages []float64, n int) []float64 {
	s := a.set
	if len(voltages) != n*s.Rows {
		panic(fmt.Sprintf("crossbar: voltage matrix has %d values, want %d rows x %d wordlines", len(voltages), n, s.Rows))
	}
	out := make([]float64, n*s.Cols)
	parallel.For(n, func(p int) {
		row := voltages[p*s.Rows : (p+1)*s.Rows]
		o := out[p*s.Cols : (p+1)*s.Cols]
		switch s.Scheme {
		case DoubleColumn:
			pos, neg := s.Crossbars[0].G, s.Crossbars[1].G
			for i, vi := range row {
				// No voltage, no current; padded positions are common.
				if vi == 0 {
					continue
				}
				base := i * s.Cols
				for j := range o {
					o[j] += a.model.Current(pos[base+j], vi) - a.model.Current(neg[base+j], vi)
				}
			}
		case SingleColumn:
			g := s.Crossbars[0].G
			for i, vi := range row {
				if vi == 0 {
					continue
				}
				ref := a.model.Current(s.GRef, vi)
				base := i * s.Cols
				for j := range o {
					o[j] += a.model.Current(g[base+j], vi) - ref
				}
			}
		}
	}, a.par)
	a.adc.Apply(out)
	return out
}

func (a *tiledAccessor) ReadConductances() Conductances {
	s := a.set
	cb := s.Crossbars[0]
	th, tw := cb.TileShape[0], cb.TileShape[1]
	folded := make([][]float64, len(cb.Tiles))
	for b, mapRow := range cb.TileMap {
		rows := min(th, s.Rows-b*th)
		for tc, idx := range mapRow {
			cols := min(tw, s.Cols-tc*tw)
			tile := make([]float64, th*tw)
			switch s.Scheme {
			case DoubleColumn:
				pos, neg := s.Crossbars[0].Tiles[idx], s.Crossbars[1].Tiles[idx]
				for i := 0; i < rows; i++ {
					for j := 0; j < cols; j++ {
						k := i*tw + j
						tile[k] = pos[k] - neg[k]
					}
				}
			case SingleColumn:
				g := s.Crossbars[0].Tiles[idx]
				for i := 0; i < rows; i++ {
					for j := 0; j < cols; j++ {
						k := i*tw + j
						tile[k] = g[k] - s.GRef
					}
				}
			}
			folded[idx] = tile
		}
	}
	return Conductances{
		Rows:      s.Rows,
		Cols:      s.Cols,
		Tiles:     folded,
		TileMap:   cb.TileMap,
		TileShape: cb.TileShape,
	}
}

func (a *tiledAccessor) Simulate(voltages []float64, n int) []float64 {
	s := a.set
	if len(voltages) != n*s.Rows {
		panic(fmt.Sprintf("crossbar: voltage matrix has %d values, want %d rows x %d wordlines", len(voltages), n, s.Rows))
	}
	cb := s.Crossbars[0]
	th, tw := cb.TileShape[0], cb.TileShape[1]
	tilesDown := len(cb.TileMap)
	tilesAcross := len(cb.TileMap[0])
	out := make([]float64, n*s.Cols)
	parallel.ForGrid(n, tilesAcross, func(p, tc int) {
		colOff := tc * tw
		// Unpopulated bitlines on edge tiles carry no cells and are
		// excluded from the readout burst.
		burst := make([]float64, min(tw, s.Cols-colOff))
		row := voltages[p*s.Rows : (p+1)*s.Rows]
		for b := 0; b < tilesDown; b++ {
			for j := range burst {
				burst[j] = 0
			}
			rowOff := b * th
			idx := cb.TileMap[b][tc]
			switch s.Scheme {
			case DoubleColumn:
				pos := s.Crossbars[0].Tiles[idx]
				neg := s.Crossbars[1].Tiles[idx]
				for i := 0; i < min(th, s.Rows-rowOff); i++ {
					vi := row[rowOff+i]
					if vi == 0 {
						continue
					}
					base := i * tw
					for j := range burst {
						burst[j] += a.model.Current(pos[base+j], vi) - a.model.Current(neg[base+j], vi)
					}
				}
			case SingleColumn:
				g := s.Crossbars[0].Tiles[idx]
				for i := 0; i < min(th, s.Rows-rowOff); i++ {
					vi := row[rowOff+i]
					if vi == 0 {
						continue
					}
					ref := a.model.Current(s.GRef, vi)
					base := i * tw
					for j := range burst {
						burst[j] += a.model.Current(g[base+j], vi) - ref
					}
				}
			}
			a.adc.Apply(burst)
			o := out[p*s.Cols+colOff:]
			for j := range burst {
				o[j] += burst[j]
			}
		}
	}, a.par)
	return out
}
