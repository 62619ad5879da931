package main

import(
	"flag"
	"log"
	"os"
	"strings"

	"github.com/abworrall/hsc-lss/pkg/pzbins"
)

var(
	fVerbosity int
	fDataPath string
	fPDFsPath string
	fFields string
	fPZAlgs string
	fOutDir string
	fNBin int
	fZType string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fDataPath, "cat_data_main_path", "", "directory holding one folder of processed data per field")
	flag.StringVar(&fPDFsPath, "pdfs_main_path", "", "directory holding the matched photo-z PDFs")
	flag.StringVar(&fFields, "fields", "", "comma-separated fields to process")
	flag.StringVar(&fPZAlgs, "PZalg", "", "comma-separated photo-z codes: ephor_ab, frankenz, nnpz")
	flag.StringVar(&fOutDir, "outDir", "", "where the summaries and plots go")
	flag.IntVar(&fNBin, "nbin", 0, "try every bin count from 1 up to this")
	flag.StringVar(&fZType, "z_type", "", "point estimate to bin on: mc, mode or best")
	flag.Parse()

	log.Printf("snbins starting\n")
}

func main() {
	cfg := pzbins.NewConfig()
	for _, arg := range flag.Args() {
		if strings.HasSuffix(arg, ".yaml") {
			var err error
			if cfg, err = pzbins.LoadConfig(arg); err != nil {
				log.Fatal(err)
			}
		}
	}

	if fDataPath != "" { cfg.DataPath = fDataPath }
	if fPDFsPath != "" { cfg.PDFsPath = fPDFsPath }
	if fFields != "" { cfg.Fields = pzbins.SplitList(fFields) }
	if fPZAlgs != "" { cfg.PZAlgs = pzbins.SplitList(fPZAlgs) }
	if fOutDir != "" { cfg.OutDir = fOutDir }
	if fNBin > 0 { cfg.MaxNBin = fNBin }
	if fZType != "" { cfg.ZType = fZType }
	if fVerbosity > 0 { cfg.Verbosity = fVerbosity }

	if err := cfg.Finalize(); err != nil {
		log.Fatal(err)
	}
	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		log.Fatal(err)
	}

	for _, field := range cfg.Fields {
		fs, err := pzbins.RunField(cfg, field)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("%s", fs)
		if err := fs.Write(cfg.OutDir); err != nil {
			log.Fatal(err)
		}
	}
}
