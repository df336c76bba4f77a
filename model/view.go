package model

// View is a read-only window onto one region of a blob, holding signed
// 8-bit values. The zero View is unresolved.
type View struct {
	data     []byte
	resolved bool
}

// Resolved is true if the view passed its bounds check.
func (v View) Resolved() bool {
	return v.resolved
}

// Len is the number of values in the view.
func (v View) Len() int {
	return len(v.data)
}

// At returns the i'th value. Only valid on a resolved view with i < Len().
func (v View) At(i int) int8 {
	return int8(v.data[i])
}

// Int8s returns a copy of the view's values.
func (v View) Int8s() (values []int8) {
	if !v.resolved {
		return
	}

	values = make([]int8, len(v.data))
	for n, b := range v.data {
		values[n] = int8(b)
	}

	return
}
