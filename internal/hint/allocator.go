package hint

import (
	"strings"
	"unicode"

	"github.com/kbaines/pounce/internal/accessibility"
	"github.com/kbaines/pounce/internal/perr"
)

// DefaultAlphabet is the home-row-biased label alphabet used when the
// configuration does not override it.
const DefaultAlphabet = "ASDFGHJKLQWERTYUIOPZXCVBNM"

// maxLabelLength caps label expansion. An alphabet of n characters can
// therefore address n^3 elements, far beyond any realistic window.
const maxLabelLength = 3

// Allocator generates prefix-free labels over a fixed alphabet.
type Allocator struct {
	alphabet []rune
}

// NewAllocator validates the alphabet and builds an allocator. The alphabet
// is folded to upper case; it must contain at least two distinct characters
// and no duplicates after folding.
func NewAllocator(alphabet string) (*Allocator, error) {
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	seen := make(map[rune]bool, len(alphabet))
	runes := make([]rune, 0, len(alphabet))
	for _, r := range alphabet {
		if unicode.IsSpace(r) {
			return nil, perr.Newf(perr.CodeInvalidConfig, "hint alphabet contains whitespace")
		}
		r = unicode.ToUpper(r)
		if seen[r] {
			return nil, perr.Newf(perr.CodeInvalidConfig, "hint alphabet repeats %q", r)
		}
		seen[r] = true
		runes = append(runes, r)
	}
	if len(runes) < 2 {
		return nil, perr.Newf(perr.CodeInvalidConfig, "hint alphabet needs at least 2 characters, got %d", len(runes))
	}
	return &Allocator{alphabet: runes}, nil
}

// Alphabet returns the folded alphabet as a string.
func (a *Allocator) Alphabet() string { return string(a.alphabet) }

// Capacity reports how many elements the allocator can label: alphabet
// size to the power of maxLabelLength.
func (a *Allocator) Capacity() int {
	capacity := 1
	for i := 0; i < maxLabelLength; i++ {
		capacity *= len(a.alphabet)
	}
	return capacity
}

// Labels produces count prefix-free labels in a deterministic order:
// single characters first, in alphabet order, expanding the earliest label
// into its children whenever more are needed. The result for a given
// (alphabet, count) pair never changes between calls.
func (a *Allocator) Labels(count int) ([]string, error) {
	if count < 0 {
		return nil, perr.Newf(perr.CodeInvalidInput, "label count %d is negative", count)
	}
	if count == 0 {
		return nil, nil
	}
	if count > a.Capacity() {
		return nil, perr.Newf(perr.CodeInvalidInput,
			"cannot label %d elements with a %d-character alphabet (capacity %d)",
			count, len(a.alphabet), a.Capacity())
	}

	queue := make([]string, 0, count+len(a.alphabet))
	for _, r := range a.alphabet {
		queue = append(queue, string(r))
	}
	// Expanding the front label into its |alphabet| children keeps the set
	// prefix-free and grows it by len(alphabet)-1 each round.
	for len(queue) < count {
		head := queue[0]
		queue = queue[1:]
		for _, r := range a.alphabet {
			queue = append(queue, head+string(r))
		}
	}
	return queue[:count], nil
}

// Allocate pairs the ordered elements with labels one-to-one. The same
// ordered input always yields the same assignment.
func (a *Allocator) Allocate(elements []*accessibility.Element) ([]*Hint, error) {
	labels, err := a.Labels(len(elements))
	if err != nil {
		return nil, err
	}
	hints := make([]*Hint, len(elements))
	for i, el := range elements {
		hints[i] = &Hint{Label: labels[i], Element: el}
	}
	return hints, nil
}

// NormalizeInput folds a typed character to the label alphabet's case and
// reports whether it belongs to the alphabet at all.
func (a *Allocator) NormalizeInput(r rune) (rune, bool) {
	r = unicode.ToUpper(r)
	return r, strings.ContainsRune(string(a.alphabet), r)
}
