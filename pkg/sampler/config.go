package sampler

import(
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/hsc-lss/pkg/hsccat"
)

/* Example config file ...

inputprefix: /data/HSC/WIDE_GAMA09H
band: i
depthcut: 24.5
pztype: nnpz
pzmark: best
binsfile: bins_z.txt

*/

type Config struct {
	Verbosity     int

	InputPrefix   string  // catalog is <prefix>_Catalog_<band><depth>.fits
	OutputFile    string
	NoBOCut       bool    // keep objects inside the bright-object mask
	PZType        string
	PZMark        string
	BinsFile      string
	MapSample     string  // pixelization template, defaults to the masked fraction map
	Band          string
	DepthCut      float64

	// Values we figure out in Finalize
	CatalogFile   string         `yaml:"-"`
	PZ            hsccat.PZType  `yaml:"-"`
	Mark          hsccat.PZMark  `yaml:"-"`
}

func NewConfig() Config {
	return Config{
		PZType:   "nnpz",
		PZMark:   "best",
		Band:     "i",
		DepthCut: 24.5,
	}
}

func LoadConfig(filename string) (Config, error) {
	c := NewConfig()

	if contents,err := ioutil.ReadFile(filename); err != nil {
		return c, fmt.Errorf("config read '%s': %w", filename, err)
	} else if err := yaml.Unmarshal(contents, &c); err != nil {
		return c, fmt.Errorf("config parse '%s': %w", filename, err)
	}
	return c, nil
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// Finalize fills in the derived paths, resolves the photo-z choices,
// and checks the input files exist.
func (c *Config)Finalize() error {
	var err error

	c.CatalogFile = fmt.Sprintf("%s_Catalog_%s%.2f.fits", c.InputPrefix, c.Band, c.DepthCut)
	if !fileExists(c.CatalogFile) {
		return fmt.Errorf("file %s doesn't exist: %w", c.CatalogFile, hsccat.ErrMissingFile)
	}

	if c.MapSample == "" {
		c.MapSample = c.InputPrefix + "_MaskedFraction.fits"
	}
	if !fileExists(c.MapSample) {
		return fmt.Errorf("file %s doesn't exist: %w", c.MapSample, hsccat.ErrMissingFile)
	}

	if c.BinsFile == "" || !fileExists(c.BinsFile) {
		return fmt.Errorf("can't find bins file '%s': %w", c.BinsFile, hsccat.ErrMissingFile)
	}

	if c.OutputFile == "" {
		c.OutputFile = c.InputPrefix + "_bins_" + filepath.Base(c.BinsFile) + ".fits"
	}

	if c.PZ, err = hsccat.ParsePZType(c.PZType); err != nil {
		return err
	}
	if c.Mark, err = hsccat.ParsePZMark(c.PZMark); err != nil {
		return err
	}

	return nil
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}
