package entity

import "slices"

// TransitionTable describe, para cada estado, los estados destino permitidos.
// Un estado sin destinos es terminal; repetir el estado actual siempre es válido.
type TransitionTable[S ~string] map[S][]S

// Allows indica si se puede pasar de from a to.
func (t TransitionTable[S]) Allows(from, to S) bool {
	if !t.Valid(from) || !t.Valid(to) {
		return false
	}
	return from == to || slices.Contains(t[from], to)
}

// Valid indica si s es un estado conocido.
func (t TransitionTable[S]) Valid(s S) bool {
	_, ok := t[s]
	return ok
}

// States devuelve los estados ordenados alfabéticamente.
func (t TransitionTable[S]) States() []string {
	out := make([]string, 0, len(t))
	for s := range t {
		out = append(out, string(s))
	}
	slices.Sort(out)
	return out
}
