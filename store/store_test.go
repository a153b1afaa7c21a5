package store

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"sync"
	"testing"

	"github.com/Comcast/vend/catalog"
)

func TestDefaults(t *testing.T) {
	s := New()
	want := Levels{Water: 400, Milk: 540, Beans: 120, Cups: 9, Money: 550}
	if got := s.Levels(); got != want {
		t.Fatalf("got %+v", got)
	}
}

func TestRemainingReport(t *testing.T) {
	want := "I have:\n400 ml of water\n540 ml of milk\n120 mg of beans\n9 cups\n550$ money"
	if got := New().String(); got != want {
		t.Fatalf("got\n%s", got)
	}
}

func TestFill(t *testing.T) {
	tests := []struct {
		name   string
		c      Consumable
		amount uint64
		ok     bool
	}{
		{"water ok", Water, 9000, true},
		{"water to the brim", Water, 9600, true},
		{"water over", Water, 9601, false},
		{"milk ok", Milk, 9460, true},
		{"milk over", Milk, 9461, false},
		{"beans ok", Beans, 880, true},
		{"beans over", Beans, 881, false},
		{"cups ok", Cups, 91, true},
		{"cups over", Cups, 92, false},
		{"zero", Cups, 0, true},
		{"huge", Water, math.MaxUint64, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			before := s.Levels()
			err := s.Fill(tt.c, tt.amount)
			after := s.Levels()
			if tt.ok {
				if err != nil {
					t.Fatal(err)
				}
				if after.Get(tt.c) != before.Get(tt.c)+tt.amount {
					t.Fatalf("%s: %d -> %d", tt.c, before.Get(tt.c), after.Get(tt.c))
				}
				return
			}
			var fe *IncorrectFill
			if !errors.As(err, &fe) {
				t.Fatalf("expected *IncorrectFill, got %v", err)
			}
			if fe.Consumable != tt.c {
				t.Fatalf("consumable %s != %s", fe.Consumable, tt.c)
			}
			if after != before {
				t.Fatalf("store changed: %+v -> %+v", before, after)
			}
		})
	}
}

func TestFillByName(t *testing.T) {
	s := New()
	for _, f := range []func(uint64) error{s.FillWater, s.FillMilk, s.FillBeans, s.FillCups} {
		if err := f(1); err != nil {
			t.Fatal(err)
		}
	}
	want := Levels{Water: 401, Milk: 541, Beans: 121, Cups: 10, Money: 550}
	if got := s.Levels(); got != want {
		t.Fatalf("got %+v", got)
	}
	if err := s.FillWater(9700); err == nil || err.Error() != "Too much water" {
		t.Fatalf("unexpected %v", err)
	}
}

// TestFillNeverExceeds throws random fills at a store.
func TestFillNeverExceeds(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	s := New()
	for i := 0; i < 10000; i++ {
		c := Consumables[r.Intn(len(Consumables))]
		amount := uint64(r.Intn(int(c.Max()) / 4))
		before := s.Levels().Get(c)
		err := s.Fill(c, amount)
		after := s.Levels().Get(c)
		if c.Max() < after {
			t.Fatalf("%s is %d", c, after)
		}
		if err == nil && after != before+amount {
			t.Fatalf("%s: %d + %d != %d", c, before, amount, after)
		}
		if err != nil && after != before {
			t.Fatalf("%s changed on failure", c)
		}
		if 0 == i%17 {
			s.ProcessPurchase(catalog.Default().At(r.Intn(3)))
		}
	}
}

func TestTakeMoney(t *testing.T) {
	s := New()
	if got := s.TakeMoney(); got != 550 {
		t.Fatalf("first take %d", got)
	}
	if got := s.TakeMoney(); got != 0 {
		t.Fatalf("second take %d", got)
	}
	if got := s.Levels().Money; got != 0 {
		t.Fatalf("money %d", got)
	}
}

func TestPurchaseEspresso(t *testing.T) {
	s := New()
	espresso := catalog.Recipe{Name: "Espresso", Water: 250, Milk: 0, Beans: 16, Cups: 1, Cost: 4}
	if err := s.ProcessPurchase(espresso); err != nil {
		t.Fatal(err)
	}
	want := Levels{Water: 150, Milk: 540, Beans: 104, Cups: 8, Money: 554}
	if got := s.Levels(); got != want {
		t.Fatalf("got %+v", got)
	}
}

func TestPurchaseShort(t *testing.T) {
	tests := []struct {
		name   string
		recipe catalog.Recipe
		short  []Consumable
	}{
		{"cups", catalog.Recipe{Name: "Party", Cups: 20, Cost: 1}, []Consumable{Cups}},
		{"water and cups", catalog.Recipe{Water: 401, Cups: 10}, []Consumable{Water, Cups}},
		{"all", catalog.Recipe{Water: 401, Milk: 541, Beans: 121, Cups: 10}, Consumables},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			before := s.Levels()
			err := s.ProcessPurchase(tt.recipe)
			var ne *NotEnoughIngredient
			if !errors.As(err, &ne) {
				t.Fatalf("expected *NotEnoughIngredient, got %v", err)
			}
			if !reflect.DeepEqual(ne.Short, tt.short) {
				t.Fatalf("short %v != %v", ne.Short, tt.short)
			}
			if s.Levels() != before {
				t.Fatalf("store changed")
			}
		})
	}

	err := New().ProcessPurchase(catalog.Recipe{Water: 401, Cups: 10})
	if got := err.Error(); got != "Not enough water, cups" {
		t.Fatalf("message %q", got)
	}
}

// TestPurchaseAtomic checks that every purchase either applies exactly
// or not at all.
func TestPurchaseAtomic(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		l := Levels{
			Water: uint64(r.Intn(int(MaxWater) + 1)),
			Milk:  uint64(r.Intn(int(MaxMilk) + 1)),
			Beans: uint64(r.Intn(int(MaxBeans) + 1)),
			Cups:  uint64(r.Intn(int(MaxCups) + 1)),
			Money: uint64(r.Intn(1000)),
		}
		s, err := NewWith(l)
		if err != nil {
			t.Fatal(err)
		}
		rec := catalog.Recipe{
			Water: uint64(r.Intn(2000)),
			Milk:  uint64(r.Intn(2000)),
			Beans: uint64(r.Intn(200)),
			Cups:  uint64(r.Intn(20)),
			Cost:  uint64(r.Intn(10)),
		}
		err = s.ProcessPurchase(rec)
		got := s.Levels()
		if err != nil {
			if got != l {
				t.Fatalf("partial deduction: %+v -> %+v", l, got)
			}
			continue
		}
		want := Levels{
			Water: l.Water - rec.Water,
			Milk:  l.Milk - rec.Milk,
			Beans: l.Beans - rec.Beans,
			Cups:  l.Cups - rec.Cups,
			Money: l.Money + rec.Cost,
		}
		if got != want {
			t.Fatalf("got %+v want %+v", got, want)
		}
	}
}

func TestNewWith(t *testing.T) {
	if _, err := NewWith(Levels{Beans: MaxBeans + 1}); err == nil {
		t.Fatal("expected an error")
	}
	s, err := NewWith(Levels{Water: MaxWater, Money: 1 << 40})
	if err != nil {
		t.Fatal(err)
	}
	if err = s.FillWater(1); err == nil {
		t.Fatal("expected an error")
	}
}

func TestConsumableText(t *testing.T) {
	for _, c := range Consumables {
		bs, err := c.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var d Consumable
		if err = d.UnmarshalText(bs); err != nil {
			t.Fatal(err)
		}
		if d != c {
			t.Fatalf("%s != %s", d, c)
		}
	}
	if _, err := ParseConsumable("sugar"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestGuarded(t *testing.T) {
	g := NewGuarded(New())
	latte := catalog.Default().At(1)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		made int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := g.ProcessPurchase(latte); err == nil {
				mu.Lock()
				made++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// 400 ml of water is enough for exactly one latte.
	if made != 1 {
		t.Fatalf("made %d lattes", made)
	}
	l := g.Levels()
	if l.Water != 50 || l.Money != 557 {
		t.Fatalf("got %+v", l)
	}

	if got := g.TakeMoney(); got != 557 {
		t.Fatalf("took %d", got)
	}
	if err := g.Fill(Cups, 1000); err == nil {
		t.Fatal("expected an error")
	}
	err := g.Do(func(s *Store) error {
		return s.FillCups(1)
	})
	if err != nil {
		t.Fatal(err)
	}
}
