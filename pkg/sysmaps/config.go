package sysmaps

import(
	"fmt"
	"io/ioutil"
	"log"

	"gopkg.in/yaml.v2"
)

/* Example config file ...

inputprefix: /data/HSC/HSC_processed/WIDE_GAMA09H/WIDE_GAMA09H
outputprefix: out/sys_gama09h
mappath: /data/HSC/WIDE_GAMA09H_bins_nz.fits
nsysbins: 7
stats:
  bintype: percentiles
  perc0: 0
  njk: 50
contaminants:
  - name: oc_seeing
    label: Seeing [pixels]
  - name: syst_dust
    label: Extinction

*/

// A Contaminant is a systematics map, found at <inputprefix>_<name>.fits
type Contaminant struct {
	Name   string
	Label  string  // x axis label for plots
}

type Config struct {
	Verbosity      int

	InputPrefix    string
	OutputPrefix   string  // a directory; created if needed
	MapPath        string  // galaxy density maps, as written by catsampler
	NSysBins       int
	DepthCut       float64
	MaskThreshold  float64 // minimum masked fraction for a pixel to be used

	Stats          StatsOptions
	Contaminants   []Contaminant
	Bands          []string
}

var(
	DefaultContaminants = []Contaminant{
		{"oc_airmass",        "Airmass"},
		{"oc_ccdtemp",        "CCD Temperature [C]"},
		{"oc_ellipt",         "PSF Ellipticity"},
		{"oc_exptime",        "Exposure Time [s]"},
		{"oc_nvisit",         "Number of visits"},
		{"oc_seeing",         "Seeing [pixels]"},
		{"oc_sigma_sky",      "Sky noise [ADU]"},
		{"oc_skylevel",       "Sky level [ADU]"},
		{"syst_dust",         "Extinction"},
		{"syst_nstar_i24.50", "Stars per pixel"},
	}
	DefaultBands = []string{"g", "r", "i", "z", "y"}
)

func NewConfig() Config {
	return Config{
		NSysBins:      7,
		DepthCut:      24.5,
		MaskThreshold: 0.5,
		Stats:         DefaultStatsOptions(),
		Contaminants:  append([]Contaminant{}, DefaultContaminants...),
		Bands:         append([]string{}, DefaultBands...),
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

// Paths to the inputs, all hung off the input prefix
func (c Config)DepthFile() string          { return c.InputPrefix + "_10s_depth_mean_fluxerr.fits" }
func (c Config)MaskedFractionFile() string { return c.InputPrefix + "_MaskedFraction.fits" }
func (c Config)ContaminantFile(cm Contaminant) string { return fmt.Sprintf("%s_%s.fits", c.InputPrefix, cm.Name) }

// Finalize does sanity checks
func (c *Config)Finalize() error {
	if c.MapPath == "" {
		return fmt.Errorf("no density map path given")
	}
	if err := c.Stats.BinType.Validate(); err != nil {
		return err
	}
	if c.Stats.NJk < 1 {
		return fmt.Errorf("njk must be positive, got %d", c.Stats.NJk)
	}
	if len(c.Contaminants) == 0 {
		return fmt.Errorf("no contaminant maps configured")
	}
	return nil
}
