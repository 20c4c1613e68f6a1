// Package combat holds the battle roster rules: building combatants from
// characters and creatures, ordering the roster by initiative, and resolving
// heal, damage and temporary hit point changes.
//
// Every function here is pure. Callers own the current roster and decide when
// a computed roster becomes the visible one, normally after the store has
// confirmed the save.
package combat
