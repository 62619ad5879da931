package main

import(
	"flag"
	"log"
	"strings"

	"github.com/abworrall/hsc-lss/pkg/sampler"
)

var(
	fVerbosity int
	fInputPrefix string
	fOutputFile string
	fNoBOCut bool
	fPZType string
	fPZMark string
	fPZBins string
	fMapSample string
	fBand string
	fDepthCut float64
	fDumpPrefix string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fInputPrefix, "input-prefix", "", "prefix of the processed field data")
	flag.StringVar(&fOutputFile, "output-file", "", "output FITS file (default <prefix>_bins_<binsfile>.fits)")
	flag.BoolVar(&fNoBOCut, "no-bo-cut", false, "don't apply the bright-object mask")
	flag.StringVar(&fPZType, "pz-type", "", "photo-z code: ephor_ab, frankenz or nnpz")
	flag.StringVar(&fPZMark, "pz-mark", "", "point estimate to bin on: best, mean, mode or mc")
	flag.StringVar(&fPZBins, "pz-bins", "", "text file of redshift bin edges, one bin per line")
	flag.StringVar(&fMapSample, "map-sample", "", "FITS map whose pixelization the output maps use")
	flag.StringVar(&fBand, "analysis-band", "", "band the depth cut applies to")
	flag.Float64Var(&fDepthCut, "depth-cut", 0, "limiting magnitude of the catalog")
	flag.StringVar(&fDumpPrefix, "dump", "", "if set, write a PNG of each counts map with this prefix")
	flag.Parse()

	log.Printf("catsampler starting\n")
}

func main() {
	cfg := sampler.NewConfig()
	for _, arg := range flag.Args() {
		if strings.HasSuffix(arg, ".yaml") {
			var err error
			if cfg, err = sampler.LoadConfig(arg); err != nil {
				log.Fatal(err)
			}
		}
	}

	// Override the config file with command line args, if relevant
	if fInputPrefix != "" { cfg.InputPrefix = fInputPrefix }
	if fOutputFile != "" { cfg.OutputFile = fOutputFile }
	if fPZType != "" { cfg.PZType = fPZType }
	if fPZMark != "" { cfg.PZMark = fPZMark }
	if fPZBins != "" { cfg.BinsFile = fPZBins }
	if fMapSample != "" { cfg.MapSample = fMapSample }
	if fBand != "" { cfg.Band = fBand }
	if fDepthCut > 0 { cfg.DepthCut = fDepthCut }
	if fNoBOCut { cfg.NoBOCut = true }
	if fVerbosity > 0 { cfg.Verbosity = fVerbosity }

	if err := cfg.Finalize(); err != nil {
		log.Fatal(err)
	}
	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	s := sampler.NewSampler(cfg)
	if err := s.Load(); err != nil {
		log.Fatal(err)
	}
	if err := s.Sample(); err != nil {
		log.Fatal(err)
	}
	if err := s.Write(); err != nil {
		log.Fatal(err)
	}

	if fDumpPrefix != "" {
		if err := s.DumpMaps(fDumpPrefix); err != nil {
			log.Fatal(err)
		}
	}
}
