package hsccat

import(
	"fmt"
	"log"
)

const(
	ColRA        = "ra"
	ColDec       = "dec"
	ColObjectID  = "object_id"
	ColBOCenter  = "iflags_pixel_bright_object_center"
	ColBOAny     = "iflags_pixel_bright_object_any"
)

// A Catalog holds the per-object columns the clustering scripts need
type Catalog struct {
	Filename  string
	RA        []float64
	Dec       []float64
	Mark      []float64   // photo-z point estimate used for binning
	MC        []float64   // Monte-Carlo draw, histogrammed into N(z)
}

func (c Catalog)Len() int { return len(c.RA) }

func (c Catalog)String() string {
	return fmt.Sprintf("Catalog[%s, %d objects]", c.Filename, c.Len())
}

// ReadCatalog loads the clean galaxy catalog (HDU 1). Unless noBOCut is
// set, objects flagged by the bright-object mask are dropped.
func ReadCatalog(filename string, pz PZType, mark PZMark, noBOCut bool) (Catalog, error) {
	colMark := MarkColumn(mark, pz)
	colMC := MCColumn(pz)

	names := []string{ColRA, ColDec, colMark}
	if colMC != colMark {
		names = append(names, colMC)
	}
	if !noBOCut {
		names = append(names, ColBOCenter, ColBOAny)
	}

	cols, err := ReadColumns(filename, 1, names...)
	if err != nil {
		return Catalog{}, err
	}

	c := Catalog{Filename: filename}
	n := len(cols[ColRA])
	for i:=0; i<n; i++ {
		if !noBOCut && (cols[ColBOCenter][i] != 0 || cols[ColBOAny][i] != 0) {
			continue
		}
		c.RA = append(c.RA, cols[ColRA][i])
		c.Dec = append(c.Dec, cols[ColDec][i])
		c.Mark = append(c.Mark, cols[colMark][i])
		c.MC = append(c.MC, cols[colMC][i])
	}

	log.Printf("Read %s using %s (%d of %d objects kept)", c, colMark, c.Len(), n)
	return c, nil
}

// SelectZ returns the objects whose Mark lies in (zi, zf]
func (c Catalog)SelectZ(zi, zf float64) Catalog {
	sub := Catalog{Filename: c.Filename}
	for i := range c.Mark {
		if c.Mark[i] > zi && c.Mark[i] <= zf {
			sub.RA = append(sub.RA, c.RA[i])
			sub.Dec = append(sub.Dec, c.Dec[i])
			sub.Mark = append(sub.Mark, c.Mark[i])
			sub.MC = append(sub.MC, c.MC[i])
		}
	}
	return sub
}
