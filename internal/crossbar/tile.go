package crossbar

import (
	"fmt"

	"github.com/arsalan1374/MemTorch/internal/parallel"
)

// GenTiles splits a row-major matrix into fixed-shape tiles and a
// placement map. Edge tiles are zero-padded to the full tile shape;
// tileMap[r][c] indexes the tile covering row block r and column
// block c.
func GenTiles(m []float64, rows, cols int, shape [2]int) ([][]float64, [][]int) {
	th, tw := shape[0], shape[1]
	if th < 1 || tw < 1 {
		panic(fmt.Sprintf("crossbar: tile shape extents must be positive, got %v", shape))
	}
	if len(m) != rows*cols {
		panic(fmt.Sprintf("crossbar: matrix has %d values, want %d rows x %d cols", len(m), rows, cols))
	}
	tilesDown := (rows + th - 1) / th
	tilesAcross := (cols + tw - 1) / tw
	tiles := make([][]float64, 0, tilesDown*tilesAcross)
	tileMap := make([][]int, tilesDown)
	for tr := range tileMap {
		tileMap[tr] = make([]int, tilesAcross)
		for tc := 0; tc < tilesAcross; tc++ {
			tile := make([]float64, th*tw)
			rowOff, colOff := tr*th, tc*tw
			width := min(tw, cols-colOff)
			for i := 0; i < min(th, rows-rowOff); i++ {
				src := (rowOff+i)*cols + colOff
				copy(tile[i*tw:i*tw+width], m[src:src+width])
			}
			tileMap[tr][tc] = len(tiles)
			tiles = append(tiles, tile)
		}
	}
	return tiles, tileMap
}

// Dense returns the crossbar's conductances as one monolithic
// row-major [Rows, Cols] matrix, reassembling tiled storage and
// dropping the edge padding.
func (c *Crossbar) Dense() []float64 {
	if c.G != nil {
		return append([]float64(nil), c.G...)
	}
	th, tw := c.TileShape[0], c.TileShape[1]
	out := make([]float64, c.Rows*c.Cols)
	for tr, rowTiles := range c.TileMap {
		rowOff := tr * th
		for tc, idx := range rowTiles {
			colOff := tc * tw
			tile := c.Tiles[idx]
			width := min(tw, c.Cols-colOff)
			for i := 0; i < min(th, c.Rows-rowOff); i++ {
				dst := (rowOff+i)*c.Cols + colOff
				copy(out[dst:dst+width], tile[i*tw:i*tw+width])
			}
		}
	}
	return out
}

// TileMatMul multiplies a voltage matrix (row-major [n, Rows]) against
// a tiled folded conductance view and returns the column currents
// [n, Cols] in weight order. Every tile readout (one voltage row
// against one tile) passes through the ADC before the partial products
// are accumulated digitally; scaling is the caller's.
func TileMatMul(voltages []float64, n int, c Conductances, adc ADC, par parallel.Config) []float64 {
	if !c.Tiled() {
		panic("crossbar: tile matmul needs tiled conductances, got a monolithic matrix")
	}
	if len(voltages) != n*c.Rows {
		panic(fmt.Sprintf("crossbar: voltage matrix has %d values, want %d rows x %d wordlines", len(voltages), n, c.Rows))
	}
	th, tw := c.TileShape[0], c.TileShape[1]
	tilesDown := len(c.TileMap)
	tilesAcross := len(c.TileMap[0])
	out := make([]float64, n*c.Cols)
	parallel.ForGrid(n, tilesAcross, func(p, tc int) {
		colOff := tc * tw
		burst := make([]float64, min(tw, c.Cols-colOff))
		row := voltages[p*c.Rows : (p+1)*c.Rows]
		for b := 0; b < tilesDown; b++ {
			for j := range burst {
				burst[j] = 0
			}
			rowOff := b * th
			tile := c.Tiles[c.TileMap[b][tc]]
			for i := 0; i < min(th, c.Rows-rowOff); i++ {
				vi := row[rowOff+i]
				if vi == 0 {
					continue
				}
				base := i * tw
				for j := range burst {
					burst[j] += vi * tile[base+j]
				}
			}
			adc.Apply(burst)
			o := out[p*c.Cols+colOff:]
			for j := range burst {
				o[j] += burst[j]
			}
		}
	}, par)
	return out
}
