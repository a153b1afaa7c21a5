/* Copyright 2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package store is the inventory of a vending machine: four capped
// consumables and the money collected so far.
//
// Every operation either applies completely or leaves the Store
// untouched.  A Store is not safe for concurrent use; see Guarded.
package store

import (
	"fmt"
	"strings"

	"github.com/Comcast/vend/catalog"
)

// Levels is a snapshot of a Store.
type Levels struct {
	Water uint64 `json:"water"`
	Milk  uint64 `json:"milk"`
	Beans uint64 `json:"beans"`
	Cups  uint64 `json:"cups"`
	Money uint64 `json:"money"`
}

// DefaultLevels are the quantities of a new Store.
var DefaultLevels = Levels{
	Water: 400,
	Milk:  540,
	Beans: 120,
	Cups:  9,
	Money: 550,
}

// Get returns the quantity of the given Consumable.
func (l Levels) Get(c Consumable) uint64 {
	switch c {
	case Water:
		return l.Water
	case Milk:
		return l.Milk
	case Beans:
		return l.Beans
	case Cups:
		return l.Cups
	}
	return 0
}

func (l *Levels) ptr(c Consumable) *uint64 {
	switch c {
	case Water:
		return &l.Water
	case Milk:
		return &l.Milk
	case Beans:
		return &l.Beans
	case Cups:
		return &l.Cups
	}
	return nil
}

// String renders the "remaining" report.
func (l Levels) String() string {
	var b strings.Builder
	b.WriteString("I have:\n")
	for _, c := range Consumables {
		if u := c.Unit(); u != "" {
			fmt.Fprintf(&b, "%d %s of %s\n", l.Get(c), u, c)
		} else {
			fmt.Fprintf(&b, "%d %s\n", l.Get(c), c)
		}
	}
	fmt.Fprintf(&b, "%d$ money", l.Money)
	return b.String()
}

// Store holds the machine's consumables and money.
type Store struct {
	levels Levels
}

// New makes a Store with DefaultLevels.
func New() *Store {
	return &Store{levels: DefaultLevels}
}

// NewWith makes a Store with the given Levels, which must respect
// every Consumable's maximum.
func NewWith(l Levels) (*Store, error) {
	for _, c := range Consumables {
		if q := l.Get(c); c.Max() < q {
			return nil, &BadLevel{Consumable: c, Level: q}
		}
	}
	return &Store{levels: l}, nil
}

// Levels returns the current quantities.
func (s *Store) Levels() Levels {
	return s.levels
}

func (s *Store) String() string {
	return s.levels.String()
}

// Fill adds amount to the given Consumable.
//
// If the result would exceed the Consumable's maximum, Fill returns
// an *IncorrectFill and changes nothing.  A zero amount is accepted.
func (s *Store) Fill(c Consumable, amount uint64) error {
	p := s.levels.ptr(c)
	if p == nil {
		return fmt.Errorf("unknown consumable %d", int(c))
	}
	// Written this way so that a huge amount can't wrap around.
	if c.Max()-*p < amount {
		return &IncorrectFill{
			Consumable: c,
			Amount:     amount,
			Current:    *p,
		}
	}
	*p += amount
	return nil
}

func (s *Store) FillWater(amount uint64) error { return s.Fill(Water, amount) }
func (s *Store) FillMilk(amount uint64) error  { return s.Fill(Milk, amount) }
func (s *Store) FillBeans(amount uint64) error { return s.Fill(Beans, amount) }
func (s *Store) FillCups(amount uint64) error  { return s.Fill(Cups, amount) }

// TakeMoney empties the cash box and returns what was in it.
func (s *Store) TakeMoney() uint64 {
	money := s.levels.Money
	s.levels.Money = 0
	return money
}

// Requirements returns what the recipe needs of each Consumable.
func Requirements(r catalog.Recipe) Levels {
	return Levels{
		Water: r.Water,
		Milk:  r.Milk,
		Beans: r.Beans,
		Cups:  r.Cups,
	}
}

// Short reports which Consumables the Store lacks for the recipe.
// The result is nil when the recipe can be made.
func (s *Store) Short(r catalog.Recipe) []Consumable {
	var (
		need  = Requirements(r)
		short []Consumable
	)
	for _, c := range Consumables {
		if s.levels.Get(c) < need.Get(c) {
			short = append(short, c)
		}
	}
	return short
}

// ProcessPurchase makes the recipe.
//
// When any Consumable is short, it returns a *NotEnoughIngredient
// that lists all of them, and the Store is unchanged.  Otherwise every
// requirement is deducted and the recipe's cost is credited.
func (s *Store) ProcessPurchase(r catalog.Recipe) error {
	if short := s.Short(r); short != nil {
		return &NotEnoughIngredient{Short: short}
	}

	next := s.levels
	next.Water -= r.Water
	next.Milk -= r.Milk
	next.Beans -= r.Beans
	next.Cups -= r.Cups
	next.Money += r.Cost
	s.levels = next

	return nil
}
