package hsccat

import(
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidChoice = errors.New("invalid choice")

// A PZType is one of the photo-z codes run on the HSC catalogs
type PZType int

const(
	PZEphorAB PZType = iota
	PZFrankenz
	PZNNPZ
)

var pzTypeNames = []string{"ephor_ab", "frankenz", "nnpz"}

func ParsePZType(s string) (PZType, error) {
	for i, name := range pzTypeNames {
		if s == name {
			return PZType(i), nil
		}
	}
	return 0, fmt.Errorf("photo-z method '%s' unavailable, choose %s: %w",
		s, strings.Join(pzTypeNames, ", "), ErrInvalidChoice)
}

func (t PZType)String() string {
	if t < 0 || int(t) >= len(pzTypeNames) {
		return fmt.Sprintf("PZType(%d)", int(t))
	}
	return pzTypeNames[t]
}

// Code is the short tag used in catalog column names
func (t PZType)Code() string {
	switch t {
	case PZEphorAB: return "eab"
	case PZFrankenz: return "frz"
	case PZNNPZ:     return "nnz"
	}
	panic(fmt.Sprintf("no column code for %s", t))
}

// A PZMark is the summary statistic of a photo-z PDF
type PZMark int

const(
	MarkBest PZMark = iota
	MarkMean
	MarkMode
	MarkMC
)

var pzMarkNames = []string{"best", "mean", "mode", "mc"}

// ParsePZMark accepts any of `allowed`, or all marks if allowed is empty
func ParsePZMark(s string, allowed ...PZMark) (PZMark, error) {
	if len(allowed) == 0 {
		allowed = []PZMark{MarkBest, MarkMean, MarkMode, MarkMC}
	}
	names := []string{}
	for _, m := range allowed {
		if s == m.String() {
			return m, nil
		}
		names = append(names, m.String())
	}
	return 0, fmt.Errorf("photo-z mark '%s' unavailable, choose between %s: %w",
		s, strings.Join(names, ", "), ErrInvalidChoice)
}

func (m PZMark)String() string {
	if m < 0 || int(m) >= len(pzMarkNames) {
		return fmt.Sprintf("PZMark(%d)", int(m))
	}
	return pzMarkNames[m]
}

// MarkColumn is e.g. "pz_best_eab"
func MarkColumn(m PZMark, t PZType) string { return "pz_" + m.String() + "_" + t.Code() }

// MCColumn holds a Monte-Carlo draw from each object's PDF
func MCColumn(t PZType) string { return MarkColumn(MarkMC, t) }
