package store

import (
	"strconv"
	"strings"
)

// SelectorKind discriminates the four shapes a variant selector takes.
type SelectorKind int

const (
	// SelectorNone is the empty selector for products bought without a variant.
	SelectorNone SelectorKind = iota
	// SelectorIndex addresses a variant by its position in Product.Variants.
	SelectorIndex
	// SelectorUID addresses a variant by its stable unique id.
	SelectorUID
	// SelectorComposite encodes one option index per variant group. It names a
	// purchasable configuration but does not map to a Variants entry.
	SelectorComposite
)

const compositePrefix = "g:"

// Selector identifies which configuration of a product a cart entry refers to.
// The zero value is SelectorNone.
type Selector struct {
	Kind    SelectorKind
	Index   int
	UID     string
	Options []int
}

// ParseSelector converts a raw selector key into its tagged form. The raw
// shapes are: "" (none), a decimal index ("2"), a composite group key
// ("g:0:2:1"), and anything else is a variant uid.
func ParseSelector(raw string) Selector {
	if raw == "" {
		return Selector{Kind: SelectorNone}
	}
	if i, err := strconv.Atoi(raw); err == nil && i >= 0 && !strings.HasPrefix(raw, "+") {
		return Selector{Kind: SelectorIndex, Index: i}
	}
	if rest, ok := strings.CutPrefix(raw, compositePrefix); ok {
		parts := strings.Split(rest, ":")
		opts := make([]int, 0, len(parts))
		for _, p := range parts {
			i, err := strconv.Atoi(p)
			if err != nil || i < 0 {
				// Not a well-formed group key; treat the whole string as a uid.
				return Selector{Kind: SelectorUID, UID: raw}
			}
			opts = append(opts, i)
		}
		return Selector{Kind: SelectorComposite, Options: opts}
	}
	return Selector{Kind: SelectorUID, UID: raw}
}

// CompositeSelector builds a selector from one option index per variant group.
func CompositeSelector(options ...int) Selector {
	return Selector{Kind: SelectorComposite, Options: options}
}

// Key returns the canonical string form used as the ledger key and on the
// wire (the backend's "size" field).
func (s Selector) Key() string {
	switch s.Kind {
	case SelectorIndex:
		return strconv.Itoa(s.Index)
	case SelectorUID:
		return s.UID
	case SelectorComposite:
		parts := make([]string, len(s.Options))
		for i, o := range s.Options {
			parts[i] = strconv.Itoa(o)
		}
		return compositePrefix + strings.Join(parts, ":")
	default:
		return ""
	}
}
