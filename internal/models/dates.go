package models

import "time"

// SameLocalDay reports whether t falls on the same calendar day as ref in
// ref's time zone. Used to derive the menu freshness flag from the stored
// update timestamp.
func SameLocalDay(t, ref time.Time) bool {
	if t.IsZero() {
		return false
	}
	t = t.In(ref.Location())
	ty, tm, td := t.Date()
	ry, rm, rd := ref.Date()
	return ty == ry && tm == rm && td == rd
}

// MenuFresh reports whether a menu update timestamp counts as "updated
// today" relative to now.
func MenuFresh(updatedAt, now time.Time) bool {
	return SameLocalDay(updatedAt, now)
}
