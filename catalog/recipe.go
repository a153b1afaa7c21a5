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

// Package catalog provides the recipes a machine can make.
//
// A Catalog is loaded once at startup and never changes afterwards.
// Loading is all-or-nothing: a single bad line (or YAML entry) fails
// the whole load with a *LoadError.
package catalog

// Recipe is one purchasable drink.
//
// Water and Milk are in millilitres, Beans in milligrams, Cups is a
// count, and Cost is in money units.
type Recipe struct {
	Name  string `json:"name" yaml:"name"`
	Water uint64 `json:"water" yaml:"water"`
	Milk  uint64 `json:"milk" yaml:"milk"`
	Beans uint64 `json:"beans" yaml:"beans"`
	Cups  uint64 `json:"cups" yaml:"cups"`
	Cost  uint64 `json:"cost" yaml:"cost"`
}

// Catalog is an ordered list of Recipes.
type Catalog []Recipe

// Len returns the number of recipes.
func (c Catalog) Len() int {
	return len(c)
}

// At returns the i-th (zero-based) recipe.
//
// Panics if i is out of range, just like a slice index.
func (c Catalog) At(i int) Recipe {
	return c[i]
}

// Names returns the recipe names in order.
func (c Catalog) Names() []string {
	acc := make([]string, len(c))
	for i, r := range c {
		acc[i] = r.Name
	}
	return acc
}

// Default returns the built-in catalog, which is used when no recipe
// file is given.
func Default() Catalog {
	return Catalog{
		{Name: "Espresso", Water: 250, Milk: 0, Beans: 16, Cups: 1, Cost: 4},
		{Name: "Latte", Water: 350, Milk: 75, Beans: 20, Cups: 1, Cost: 7},
		{Name: "Cappuccino", Water: 200, Milk: 100, Beans: 12, Cups: 1, Cost: 6},
	}
}
