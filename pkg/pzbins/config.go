package pzbins

import(
	"fmt"
	"io/ioutil"
	"log"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/hsc-lss/pkg/hsccat"
)

type Config struct {
	Verbosity     int

	DataPath      string    // processed data, one directory per field
	PDFsPath      string    // matched PDFs, matched_pdfs_ids_bins_<field>_<alg>.fits
	Fields        []string
	PZAlgs        []string
	OutDir        string
	MaxNBin       int
	ZType         string    // which point estimate to bin on: mc, mode or best

	// Values we figure out in Finalize
	Algs          []hsccat.PZType  `yaml:"-"`
	Mark          hsccat.PZMark    `yaml:"-"`
}

var(
	DefaultFields = []string{
		"wide_aegis", "wide_gama09h", "wide_gama15h", "wide_hectomap", "wide_vvds",
		"wide_wide12h", "wide_xmmlss", "deep_cosmos", "deep_elaisn1", "deep_xmmlss", "deep_deep23",
	}
	DefaultPZAlgs = []string{"ephor_ab", "nnpz", "frankenz"}
)

func NewConfig() Config {
	return Config{
		Fields:  append([]string{}, DefaultFields...),
		PZAlgs:  append([]string{}, DefaultPZAlgs...),
		OutDir:  ".",
		MaxNBin: 6,
		ZType:   "mode",
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

// SplitList turns "a, b,c" into [a b c]
func SplitList(s string) []string {
	out := []string{}
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (c *Config)Finalize() error {
	c.Algs = []hsccat.PZType{}
	for _, name := range c.PZAlgs {
		alg, err := hsccat.ParsePZType(name)
		if err != nil {
			return fmt.Errorf("PZalg value is invalid: %w", err)
		}
		c.Algs = append(c.Algs, alg)
	}

	var err error
	if c.Mark, err = hsccat.ParsePZMark(c.ZType, hsccat.MarkMC, hsccat.MarkMode, hsccat.MarkBest); err != nil {
		return fmt.Errorf("z_type value is invalid: %w", err)
	}

	if c.MaxNBin < 1 {
		return fmt.Errorf("need at least one bin, got %d", c.MaxNBin)
	}
	if len(c.Fields) == 0 {
		return fmt.Errorf("no fields given")
	}
	return nil
}
