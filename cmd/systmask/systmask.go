package main

import(
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/abworrall/hsc-lss/pkg/maskplot"
)

var(
	fDataPath string
	fSystMaskDir string
	fFields string
	fOutDir string
	fQuickLook bool
)

func init() {
	flag.StringVar(&fDataPath, "data-path", "", "directory of processed data; maps at <path>/<FIELD>/<FIELD>_MaskedFraction.fits")
	flag.StringVar(&fSystMaskDir, "syst-mask-dir", "", "directory of systematics masks, <dir>/<field>_systMask.fits")
	flag.StringVar(&fFields, "fields", "wide_aegis,wide_gama09h,wide_gama15h,wide_hectomap,wide_vvds,wide_wide12h,wide_xmmlss", "comma-separated fields to plot")
	flag.StringVar(&fOutDir, "outDir", ".", "where the plots go")
	flag.BoolVar(&fQuickLook, "png", false, "also write a grayscale PNG of each overlay")
	flag.Parse()

	log.Printf("systmask starting\n")
}

func main() {
	if fDataPath == "" || fSystMaskDir == "" {
		log.Fatal("need both --data-path and --syst-mask-dir")
	}

	for _, field := range strings.Split(fFields, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		upper := strings.ToUpper(field)
		mskfracFile := filepath.Join(fDataPath, upper, upper + "_MaskedFraction.fits")
		systMaskFile := filepath.Join(fSystMaskDir, field + "_systMask.fits")

		o, err := maskplot.LoadOverlay(field, mskfracFile, systMaskFile)
		if err != nil {
			log.Fatal(err)
		}
		if err := o.WritePlot(filepath.Join(fOutDir, fmt.Sprintf("maskOverlay_%s.pdf", field))); err != nil {
			log.Fatal(err)
		}
		if fQuickLook {
			if err := o.WriteQuickLook(filepath.Join(fOutDir, fmt.Sprintf("maskOverlay_%s.png", field))); err != nil {
				log.Fatal(err)
			}
		}
	}
}
