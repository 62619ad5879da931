package hsccat

import(
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// A ZBin is a photo-z bin, (Zi, Zf]
type ZBin struct {
	Zi, Zf float64
}

func (b ZBin)String() string { return fmt.Sprintf("(%.3f,%.3f]", b.Zi, b.Zf) }

// ReadZBins parses a bin file: one bin per row, two whitespace
// separated columns `z_ini z_end`. Blank lines and '#' comments are
// skipped.
func ReadZBins(filename string) ([]ZBin, error) {
	f, err := os.Open(filename)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("can't find bins file %s: %w", filename, ErrMissingFile)
	} else if err != nil {
		return nil, fmt.Errorf("open+r '%s': %w", filename, err)
	}
	defer f.Close()

	bins := []ZBin{}
	scanner := bufio.NewScanner(f)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("'%s' line %d: want 2 columns, got %d", filename, lineno, len(fields))
		}

		var b ZBin
		if b.Zi, err = strconv.ParseFloat(fields[0], 64); err != nil {
			return nil, fmt.Errorf("'%s' line %d: %w", filename, lineno, err)
		}
		if b.Zf, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return nil, fmt.Errorf("'%s' line %d: %w", filename, lineno, err)
		}
		bins = append(bins, b)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("'%s': %w", filename, err)
	}
	if len(bins) == 0 {
		return nil, fmt.Errorf("'%s' holds no bins", filename)
	}

	return bins, nil
}
