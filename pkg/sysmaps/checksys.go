package sysmaps

import(
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/abworrall/hsc-lss/pkg/flatmap"
)

// StatsOptions are the knobs passed through to StatsOnSysmap
type StatsOptions struct {
	BinType  BinType
	Perc0    float64
	NJk      int
}

func DefaultStatsOptions() StatsOptions {
	return StatsOptions{BinType: BinEqual, Perc0: 0, NJk: DefaultNJackknife}
}

// A SysResult holds the binned statistics of one galaxy density map
// against every sub-map (usually one per band) of one systematics file.
type SysResult struct {
	Name   string      // the contaminant, e.g. oc_seeing
	Bands  []SysStats  // indexed by sub-map
}

func (sr SysResult)NumMaps() int { return len(sr.Bands) }

func (sr SysResult)String() string {
	str := fmt.Sprintf("SysResult %s [\n", sr.Name)
	for i, ss := range sr.Bands {
		str += fmt.Sprintf(" sub-map %d:\n%s", i, ss)
	}
	return str + "]\n"
}

// Stack arranges one field of every sub-map's stats as the rows of a
// matrix (sub-maps x bins). Nil if there is nothing to stack.
func (sr SysResult)Stack(field func(SysStats) []float64) *mat.Dense {
	if len(sr.Bands) == 0 {
		return nil
	}
	nbins := len(field(sr.Bands[0]))
	if nbins == 0 {
		return nil
	}
	data := make([]float64, 0, len(sr.Bands)*nbins)
	for _, ss := range sr.Bands {
		data = append(data, field(ss)...)
	}
	return mat.NewDense(len(sr.Bands), nbins, data)
}

func FieldCenters(ss SysStats) []float64         { return ss.Centers }
func FieldCentersRescaled(ss SysStats) []float64 { return ss.CentersRescaled }
func FieldMean(ss SysStats) []float64            { return ss.Mean }
func FieldErr(ss SysStats) []float64             { return ss.Err }

// CheckSys loads every sub-map in the systematics file at sysPath, and
// measures the density map against each in turn. Any failure aborts.
func CheckSys(data flatmap.FlatMap, sysPath string, mask []float64, nbins int, opts StatsOptions) (SysResult, error) {
	sysMaps, err := flatmap.ReadFlatMaps(sysPath)
	if err != nil {
		return SysResult{}, fmt.Errorf("CheckSys: %w", err)
	}

	return CheckSysMaps(data, sysMaps, mask, nbins, opts)
}

// CheckSysMaps is CheckSys for maps already in memory
func CheckSysMaps(data flatmap.FlatMap, sysMaps []flatmap.FlatMap, mask []float64, nbins int, opts StatsOptions) (SysResult, error) {
	sr := SysResult{}
	for i, sm := range sysMaps {
		ss, err := StatsOnSysmap(sm.Values, mask, data.Values, nbins, opts.BinType, opts.Perc0, opts.NJk)
		if err != nil {
			return SysResult{}, fmt.Errorf("CheckSys sub-map %d: %w", i, err)
		}
		sr.Bands = append(sr.Bands, ss)
	}
	return sr, nil
}
