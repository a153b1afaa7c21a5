package store

import (
	"fmt"
	"strings"
)

// Consumable is one of the finite, capped resources that purchases
// consume and fills replenish.
type Consumable int

const (
	Water Consumable = iota
	Milk
	Beans
	Cups
)

// Consumables lists every Consumable in fill order.
var Consumables = []Consumable{Water, Milk, Beans, Cups}

// Maximum quantities.
const (
	MaxWater uint64 = 10000
	MaxMilk  uint64 = 10000
	MaxBeans uint64 = 1000
	MaxCups  uint64 = 100
)

var consumableNames = [...]string{"water", "milk", "beans", "cups"}

func (c Consumable) String() string {
	if c < 0 || int(c) >= len(consumableNames) {
		return fmt.Sprintf("Consumable(%d)", int(c))
	}
	return consumableNames[c]
}

// Unit gives the unit used when reporting quantities.  Cups are just
// counted.
func (c Consumable) Unit() string {
	switch c {
	case Water, Milk:
		return "ml"
	case Beans:
		return "mg"
	}
	return ""
}

// Max returns the cap for this Consumable.
func (c Consumable) Max() uint64 {
	switch c {
	case Water:
		return MaxWater
	case Milk:
		return MaxMilk
	case Beans:
		return MaxBeans
	case Cups:
		return MaxCups
	}
	return 0
}

// ParseConsumable is the inverse of String.
func ParseConsumable(s string) (Consumable, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range consumableNames {
		if name == s {
			return Consumable(i), nil
		}
	}
	return 0, fmt.Errorf("unknown consumable %q", s)
}

func (c Consumable) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Consumable) UnmarshalText(bs []byte) error {
	x, err := ParseConsumable(string(bs))
	if err != nil {
		return err
	}
	*c = x
	return nil
}
