package store

import "strings"

// IncorrectFill occurs when a fill would take a Consumable over its
// maximum.  The store is unchanged.
type IncorrectFill struct {
	Consumable Consumable
	Amount     uint64
	Current    uint64
}

func (e *IncorrectFill) Error() string {
	return "Too much " + e.Consumable.String()
}

// NotEnoughIngredient occurs when a purchase needs more of one or
// more Consumables than the store has.  The store is unchanged.
//
// Short lists every insufficient Consumable in fill order.
type NotEnoughIngredient struct {
	Short []Consumable
}

func (e *NotEnoughIngredient) Error() string {
	names := make([]string, len(e.Short))
	for i, c := range e.Short {
		names[i] = c.String()
	}
	return "Not enough " + strings.Join(names, ", ")
}

// BadLevel occurs when NewWith is given a quantity above its cap.
type BadLevel struct {
	Consumable Consumable
	Level      uint64
}

func (e *BadLevel) Error() string {
	return "level for " + e.Consumable.String() + " exceeds maximum"
}
