package sampler

import(
	"fmt"
	"log"

	"github.com/astrogo/fitsio"

	"github.com/abworrall/hsc-lss/pkg/emath"
	"github.com/abworrall/hsc-lss/pkg/flatmap"
	"github.com/abworrall/hsc-lss/pkg/hsccat"
)

var NzColumns = []fitsio.Column{
	{Name: "z_i", Format: "E"},
	{Name: "z_f", Format: "E"},
	{Name: "n_z", Format: "E"},
}

// A Sampler splits a galaxy catalog into photo-z bins, and builds a
// counts map and an N(z) for each.
type Sampler struct {
	Config

	Catalog  hsccat.Catalog
	Info     flatmap.FlatMapInfo  // the pixelization of the output maps
	Bins     []hsccat.ZBin

	Maps     []flatmap.FlatMap    // one per bin
	Nzs      []Nz                 // one per bin
}

func NewSampler(cfg Config) Sampler {
	return Sampler{Config: cfg}
}

func (s Sampler)String() string {
	str := fmt.Sprintf("Sampler %s, %s [\n", s.Catalog, s.Info)
	for i, b := range s.Bins {
		str += fmt.Sprintf("  bin %d %s", i+1, b)
		if i < len(s.Nzs) {
			str += fmt.Sprintf(": %.0f galaxies", s.Nzs[i].Total())
		}
		str += "\n"
	}
	return str + "]\n"
}

// Load reads the catalog, the pixelization template and the bins. The
// config must have been finalized.
func (s *Sampler)Load() error {
	var err error

	if s.Catalog, err = hsccat.ReadCatalog(s.CatalogFile, s.PZ, s.Mark, s.NoBOCut); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	sample, err := flatmap.ReadFlatMap(s.MapSample, 0)
	if err != nil {
		return fmt.Errorf("load map sample: %w", err)
	}
	s.Info = sample.FlatMapInfo

	if s.Bins, err = hsccat.ReadZBins(s.BinsFile); err != nil {
		return fmt.Errorf("load bins: %w", err)
	}

	return nil
}

// Sample builds the per-bin maps and N(z)s
func (s *Sampler)Sample() error {
	log.Printf("Sampling %d objects into %d bins", s.Catalog.Len(), len(s.Bins))
	s.Maps = []flatmap.FlatMap{}
	s.Nzs = []Nz{}

	for i, b := range s.Bins {
		sub := s.Catalog.SelectZ(b.Zi, b.Zf)

		m, err := flatmap.CountsMap(sub.RA, sub.Dec, s.Info)
		if err != nil {
			return fmt.Errorf("bin %d: %w", i+1, err)
		}
		if len(m.Values) != s.Info.Npix() {
			return fmt.Errorf("bin %d: %w", i+1, flatmap.ErrShapeMismatch)
		}
		m.Descr = fmt.Sprintf("Ngal, bin %d", i+1)

		s.Maps = append(s.Maps, m)
		s.Nzs = append(s.Nzs, NewNz(sub.MC))

		if s.Verbosity > 0 {
			log.Printf("bin %d %s: galaxies per pixel %v", i+1, b, flatmap.CountsHistogram(m))
		}
	}

	log.Printf("Sampled: %s", s)
	return nil
}

// Write stores a map HDU followed by an N(z) table HDU for each bin.
func (s *Sampler)Write() error {
	w, err := flatmap.Create(s.OutputFile)
	if err != nil {
		return err
	}

	for i := range s.Maps {
		if err := w.WriteMap(s.Maps[i]); err != nil {
			w.Close()
			return err
		}
		if err := w.WriteTable(fmt.Sprintf("NZ_BIN%d", i+1), NzColumns, s.Nzs[i].Rows()); err != nil {
			w.Close()
			return err
		}
	}

	if err := w.Close(); err != nil {
		return err
	}
	log.Printf("Wrote %d maps + N(z)s to '%s'\n", len(s.Maps), s.OutputFile)
	return nil
}

// DumpMaps writes a quick-look PNG of each counts map, and of their sum
func (s *Sampler)DumpMaps(prefix string) error {
	var total *emath.FloatGrid
	for i, m := range s.Maps {
		g, err := m.Grid()
		if err != nil {
			return err
		}
		log.Printf("bin %d: %s", i+1, g.Stats())
		if err := g.ToImg(m.Descr, fmt.Sprintf("%s-bin%02d.png", prefix, i+1)); err != nil {
			return err
		}

		if total == nil {
			total = g.Copy()
		} else if err := total.Add(g); err != nil {
			return err
		}
	}

	if total == nil {
		return nil
	}
	return total.ToImg("Ngal, all bins", prefix + "-all.png")
}
