package sysmaps

import(
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/abworrall/hsc-lss/pkg/flatmap"
)

// An Analysis checks each redshift bin's density map against each
// contaminant map, writing an archive and a plot per pair.
type Analysis struct {
	Config

	Mask       []float64          // total weight map
	MaskInfo   flatmap.FlatMapInfo
	NumZBins   int
}

func NewAnalysis(cfg Config) Analysis {
	return Analysis{Config: cfg}
}

// LoadMask builds the total mask from the depth map (HDU 2) and the
// masked fraction map, and works out how many redshift bins the density
// file holds.
func (a *Analysis)LoadMask() error {
	nhdu, err := flatmap.CountHDUs(a.MapPath)
	if err != nil {
		return err
	}
	if nhdu % 2 != 0 {
		return fmt.Errorf("'%s' should have two HDUs per map, has %d", a.MapPath, nhdu)
	}
	a.NumZBins = nhdu / 2

	log.Printf("Reading mask")
	depth, err := flatmap.ReadFlatMap(a.DepthFile(), 2)
	if err != nil {
		return fmt.Errorf("depth map: %w", err)
	}
	mskfrac, err := flatmap.ReadFlatMap(a.MaskedFractionFile(), 0)
	if err != nil {
		return fmt.Errorf("masked fraction: %w", err)
	}
	if err := flatmap.CompareInfos(depth.FlatMapInfo, mskfrac.FlatMapInfo); err != nil {
		return err
	}

	a.MaskInfo = mskfrac.FlatMapInfo
	a.Mask = TotalMask(mskfrac.Values, depth.Values, a.DepthCut, a.MaskThreshold)
	return nil
}

// Run goes over every (bin, contaminant) pair; the first error aborts.
func (a *Analysis)Run() error {
	if a.OutputPrefix != "" {
		if err := os.MkdirAll(a.OutputPrefix, 0755); err != nil {
			return fmt.Errorf("mkdir '%s': %w", a.OutputPrefix, err)
		}
	}

	for ibin:=0; ibin<a.NumZBins; ibin++ {
		log.Printf("Bin %d", ibin)
		data, err := flatmap.ReadFlatMap(a.MapPath, 2*ibin)
		if err != nil {
			return fmt.Errorf("density map, bin %d: %w", ibin, err)
		}

		for _, cm := range a.Contaminants {
			log.Printf(" %s", cm.Name)
			if err := a.RunOne(data, ibin, cm); err != nil {
				return fmt.Errorf("bin %d, %s: %w", ibin, cm.Name, err)
			}
		}
	}
	return nil
}

func (a *Analysis)RunOne(data flatmap.FlatMap, ibin int, cm Contaminant) error {
	sr, err := CheckSys(data, a.ContaminantFile(cm), a.Mask, a.NSysBins, a.Stats)
	if err != nil {
		return err
	}
	sr.Name = cm.Name

	if a.Verbosity > 0 {
		log.Printf("%s", sr)
	}

	prefix := filepath.Join(a.OutputPrefix, fmt.Sprintf("%s_bin_%d", cm.Name, ibin))
	if err := WritePlot(prefix + ".pdf", sr, cm.Label, a.Bands); err != nil {
		return err
	}
	return WriteArchive(prefix + ".npz", sr)
}
