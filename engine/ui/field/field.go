// Package field holds the editing state of single-line text inputs,
// independent of how they are drawn.
package field

import "unicode"

// Field is a single-line text input. The caret always sits at the end.
type Field struct {
	Label string
	Text  string
	Max   int // maximum length in runes, 0 for no limit
}

// Insert appends the printable runes of rs.
func (f *Field) Insert(rs []rune) {
	n := len([]rune(f.Text))
	buf := []rune(f.Text)
	for _, r := range rs {
		if !unicode.IsPrint(r) {
			continue
		}
		if f.Max > 0 && n >= f.Max {
			break
		}
		buf = append(buf, r)
		n++
	}
	f.Text = string(buf)
}

// Backspace removes the last rune.
func (f *Field) Backspace() {
	r := []rune(f.Text)
	if len(r) == 0 {
		return
	}
	f.Text = string(r[:len(r)-1])
}

// Tail returns the last n runes of the text, or all of it when it is
// shorter. Used to keep the caret end visible in a narrow box.
func (f *Field) Tail(n int) string {
	if n <= 0 {
		return f.Text
	}
	r := []rune(f.Text)
	if len(r) <= n {
		return f.Text
	}
	return string(r[len(r)-n:])
}

// Ring cycles keyboard focus through fields. Focus is -1 when no field has
// focus.
type Ring struct {
	Fields []*Field
	Focus  int
}

func NewRing(fields ...*Field) *Ring {
	return &Ring{Fields: fields, Focus: -1}
}

// Focused returns the field with focus, or nil.
func (r *Ring) Focused() *Field {
	if r.Focus < 0 || r.Focus >= len(r.Fields) {
		return nil
	}
	return r.Fields[r.Focus]
}

// Next moves focus forward, wrapping; from no focus it goes to the first
// field.
func (r *Ring) Next() {
	if len(r.Fields) == 0 {
		return
	}
	r.Focus = (r.Focus + 1) % len(r.Fields)
}

// Prev moves focus backward, wrapping.
func (r *Ring) Prev() {
	if len(r.Fields) == 0 {
		return
	}
	if r.Focus <= 0 {
		r.Focus = len(r.Fields) - 1
		return
	}
	r.Focus--
}

// Blur clears focus.
func (r *Ring) Blur() { r.Focus = -1 }
