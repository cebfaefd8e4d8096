// Package state holds the navigation state of the section picker: which
// content section is selected, whether the picker overlay is active, and the
// cursor of the section list.
package state

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Section is one of the fixed content panes.
type Section int

const (
	Introduction Section = iota
	Gamepad
	StyleEditor

	sectionCount
)

// ErrUnknownSection is returned by ParseSection when nothing matches.
var ErrUnknownSection = errors.New("unknown section")

var sectionIDs = [sectionCount]string{"introduction", "gamepad", "style-editor"}

var sectionLabels = [sectionCount]string{"Introduction", "Gamepad", "Style Editor"}

// Sections returns every section in list order.
func Sections() []Section {
	out := make([]Section, sectionCount)
	for i := range out {
		out[i] = Section(i)
	}
	return out
}

// Valid reports whether s is a member of the enumeration.
func (s Section) Valid() bool {
	return s >= 0 && s < sectionCount
}

// ID returns the lower-case identifier used on the command line.
func (s Section) ID() string {
	if !s.Valid() {
		return "section(" + strconv.Itoa(int(s)) + ")"
	}
	return sectionIDs[s]
}

// String returns the label shown in the section list.
func (s Section) String() string {
	if !s.Valid() {
		return s.ID()
	}
	return sectionLabels[s]
}

// ParseSection resolves a section from its index, identifier or label.
// Partial input is matched fuzzily against the labels.
func ParseSection(input string) (Section, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Introduction, nil
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		if s := Section(n); s.Valid() {
			return s, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrUnknownSection, input)
	}
	for _, s := range Sections() {
		if strings.EqualFold(trimmed, s.ID()) || strings.EqualFold(trimmed, s.String()) {
			return s, nil
		}
	}
	labels := sectionLabels[:]
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSection, input)
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return Section(best.OriginalIndex), nil
}
