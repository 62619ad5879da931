package sysmaps

import(
	"errors"
	"fmt"
)

var ErrInvalidBinType = errors.New("only `percentiles`, `equal` or `log` bintypes allowed")

// A BinType says how the range of a systematics map is cut into bins
type BinType int

const(
	BinPercentiles BinType = iota  // equal-count bins, from percentiles of the map
	BinEqual                       // equal-width bins over the observed range
	BinLog                         // equal-width bins in log(value)
)

var binTypeNames = []string{"percentiles", "equal", "log"}

func ParseBinType(s string) (BinType, error) {
	for i, name := range binTypeNames {
		if s == name {
			return BinType(i), nil
		}
	}
	return 0, fmt.Errorf("bintype '%s': %w", s, ErrInvalidBinType)
}

func (bt BinType)Validate() error {
	if bt < BinPercentiles || bt > BinLog {
		return fmt.Errorf("bintype %d: %w", int(bt), ErrInvalidBinType)
	}
	return nil
}

func (bt BinType)String() string {
	if bt.Validate() != nil {
		return fmt.Sprintf("BinType(%d)", int(bt))
	}
	return binTypeNames[bt]
}

// MarshalYAML / UnmarshalYAML let configs spell out the name
func (bt BinType)MarshalYAML() (interface{}, error) { return bt.String(), nil }

func (bt *BinType)UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := ParseBinType(s)
	if err != nil {
		return err
	}
	*bt = v
	return nil
}
