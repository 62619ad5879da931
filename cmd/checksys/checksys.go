package main

import(
	"flag"
	"log"
	"strings"

	"github.com/abworrall/hsc-lss/pkg/sysmaps"
)

var(
	fVerbosity int
	fInputPrefix string
	fOutputPrefix string
	fMapPath string
	fNSysBins int
	fDepthCut float64
	fMaskThreshold float64
	fBinType string
	fPerc0 float64
	fNJk int
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fInputPrefix, "input-prefix", "", "prefix of the processed field data")
	flag.StringVar(&fOutputPrefix, "output-prefix", "", "directory for the plots and archives")
	flag.StringVar(&fMapPath, "map-path", "", "galaxy density maps, as written by catsampler")
	flag.IntVar(&fNSysBins, "nsys-bins", 0, "number of bins in each systematics map")
	flag.Float64Var(&fDepthCut, "depth-cut", 0, "pixels shallower than this are masked")
	flag.Float64Var(&fMaskThreshold, "mask-threshold", 0, "pixels with a smaller masked fraction are masked")
	flag.StringVar(&fBinType, "bintype", "", "how to bin the systematics: percentiles, equal or log")
	flag.Float64Var(&fPerc0, "perc0", -1, "percentile trimmed off each end, for percentile bins")
	flag.IntVar(&fNJk, "njk", 0, "number of jackknife resamples")
	flag.Parse()

	log.Printf("checksys starting\n")
}

func main() {
	cfg := sysmaps.NewConfig()
	for _, arg := range flag.Args() {
		if strings.HasSuffix(arg, ".yaml") {
			var err error
			if cfg, err = sysmaps.LoadConfig(arg); err != nil {
				log.Fatal(err)
			}
		}
	}

	if fInputPrefix != "" { cfg.InputPrefix = fInputPrefix }
	if fOutputPrefix != "" { cfg.OutputPrefix = fOutputPrefix }
	if fMapPath != "" { cfg.MapPath = fMapPath }
	if fNSysBins > 0 { cfg.NSysBins = fNSysBins }
	if fDepthCut > 0 { cfg.DepthCut = fDepthCut }
	if fMaskThreshold > 0 { cfg.MaskThreshold = fMaskThreshold }
	if fPerc0 >= 0 { cfg.Stats.Perc0 = fPerc0 }
	if fNJk > 0 { cfg.Stats.NJk = fNJk }
	if fVerbosity > 0 { cfg.Verbosity = fVerbosity }
	if fBinType != "" {
		bt, err := sysmaps.ParseBinType(fBinType)
		if err != nil {
			log.Fatal(err)
		}
		cfg.Stats.BinType = bt
	}

	if err := cfg.Finalize(); err != nil {
		log.Fatal(err)
	}
	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	a := sysmaps.NewAnalysis(cfg)
	if err := a.LoadMask(); err != nil {
		log.Fatal(err)
	}
	if err := a.Run(); err != nil {
		log.Fatal(err)
	}
}
