package notefield

import (
	"quill/internal/tui/components/surface"
)

// WrapSpec defines one text-wrapping command: the markers to insert around the
// selection and the placeholder used when the selection is empty.
type WrapSpec struct {
	Prefix      string
	Suffix      string
	Placeholder string
}

var (
	Bold   = WrapSpec{Prefix: "**", Suffix: "**", Placeholder: "text"}
	Italic = WrapSpec{Prefix: "*", Suffix: "*", Placeholder: "text"}
	Link   = WrapSpec{Prefix: "[", Suffix: "](https://)", Placeholder: "link"}
)

// Wrap returns a new document with the selected text wrapped in the spec's
// markers, and a selection spanning exactly the selected (or placeholder)
// text so it can be overtyped immediately. Offsets are rune offsets; an empty
// selection inserts the placeholder at the collapse point. Pure: the inputs
// are not modified.
func Wrap(doc string, sel surface.Range, spec WrapSpec) (string, surface.Range) {
	runes := []rune(doc)
	from, to := sel.Bounds()
	if from < 0 {
		from = 0
	}
	if to > len(runes) {
		to = len(runes)
	}
	if from > to {
		from = to
	}

	selected := string(runes[from:to])
	if selected == "" {
		selected = spec.Placeholder
	}

	insert := spec.Prefix + selected + spec.Suffix
	newDoc := string(runes[:from]) + insert + string(runes[to:])

	start := from + len([]rune(spec.Prefix))
	newSel := surface.Range{
		Anchor: start,
		Head:   start + len([]rune(selected)),
	}
	return newDoc, newSel
}
