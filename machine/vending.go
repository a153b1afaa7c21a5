package machine

import (
	"context"
	"fmt"

	"github.com/Comcast/vend/store"
)

// Messages reported to the operator.
var (
	MsgBadAction = "Incorrect input"
	MsgBadChoice = "Input correct number or back"
	MsgBadAmount = "Input only number"
	MsgMade      = "I make you a coffee!"
	MsgGoodbye   = "Goodbye!"
)

var (
	takeAction = &Action{
		Name: "take",
		F: func(ctx context.Context, m *Machine, bs Bindings) (*Execution, error) {
			money := m.store.TakeMoney()
			exe := &Execution{
				Output: fmt.Sprintf("I give you %d$", money),
			}
			exe.Emit(Event{
				Kind:   EventTake,
				Money:  money,
				Levels: m.store.Levels(),
			})
			return exe, nil
		},
	}

	remainingAction = &Action{
		Name: "remaining",
		F: func(ctx context.Context, m *Machine, bs Bindings) (*Execution, error) {
			return &Execution{
				Output: m.store.Levels().String(),
			}, nil
		},
	}

	buyAction = &Action{
		Name: "buy",
		F: func(ctx context.Context, m *Machine, bs Bindings) (*Execution, error) {
			n := bs["n"]
			if n == 0 || uint64(m.recipes.Len()) < n {
				return nil, &InvalidInput{
					Input: fmt.Sprintf("%d", n),
					Msg:   MsgBadChoice,
				}
			}
			r := m.recipes.At(int(n - 1))
			if err := m.store.ProcessPurchase(r); err != nil {
				return nil, err
			}
			exe := &Execution{
				Output: MsgMade,
			}
			exe.Emit(Event{
				Kind:   EventPurchase,
				Recipe: r.Name,
				Money:  r.Cost,
				Levels: m.store.Levels(),
			})
			return exe, nil
		},
	}

	goodbyeAction = &Action{
		Name: "goodbye",
		F: func(ctx context.Context, m *Machine, bs Bindings) (*Execution, error) {
			return &Execution{
				Output: MsgGoodbye,
			}, nil
		},
	}
)

// fillAction makes the Action for a fill stage.
func fillAction(c store.Consumable) *Action {
	return &Action{
		Name: "fill " + c.String(),
		F: func(ctx context.Context, m *Machine, bs Bindings) (*Execution, error) {
			amount := bs["amount"]
			if err := m.store.Fill(c, amount); err != nil {
				return nil, err
			}
			exe := &Execution{}
			if 0 < amount {
				exe.Emit(Event{
					Kind:       EventFill,
					Consumable: c.String(),
					Amount:     amount,
					Levels:     m.store.Levels(),
				})
			}
			return exe, nil
		},
	}
}

// fillNode makes the Node for a fill stage, which advances to next
// on success and stays put on failure.
func fillNode(at, next State, c store.Consumable, prompt string) *Node {
	return &Node{
		Doc:    "Refill " + c.String() + ".",
		Prompt: prompt,
		Branches: []*Branch{
			{
				Pattern:     "?amount",
				Action:      fillAction(c),
				Target:      next,
				ErrorTarget: at,
			},
		},
		Otherwise: &Otherwise{
			Message: MsgBadAmount,
			Target:  at,
		},
	}
}

// VendingSpec makes the standard vending-machine Spec (compiled).
func VendingSpec() (*Spec, error) {
	spec := &Spec{
		Name: "vending",
		Doc: "A drink vending machine.\n\n" +
			"From the main menu, an operator can **buy** a drink, **fill** the " +
			"consumables (water, milk, beans, then cups), **take** the money, " +
			"see what's **remaining**, or **exit**.",
		Initial: MainMenu,
		Nodes: map[State]*Node{
			MainMenu: {
				Doc:    "Wait for an action.",
				Prompt: "Write action (buy, fill, take, remaining, exit): ",
				Branches: []*Branch{
					{Pattern: "buy", Target: BuyMenu},
					{Pattern: "fill", Target: FillWater},
					{Pattern: "take", Action: takeAction, Target: MainMenu, ErrorTarget: MainMenu},
					{Pattern: "remaining", Action: remainingAction, Target: MainMenu, ErrorTarget: MainMenu},
					{Pattern: "exit", Target: Exit},
				},
				Otherwise: &Otherwise{
					Message: MsgBadAction,
					Target:  MainMenu,
				},
			},
			BuyMenu: {
				Doc: "Choose a drink by its 1-based number.  " +
					"Any outcome returns to the main menu.",
				Prompt: "Choose coffee ({recipes}, back): ",
				Branches: []*Branch{
					{Pattern: "back", Target: MainMenu},
					{Pattern: "?n", Action: buyAction, Target: MainMenu, ErrorTarget: MainMenu},
				},
				Otherwise: &Otherwise{
					Message: MsgBadChoice,
					Target:  MainMenu,
				},
			},
			FillWater: fillNode(FillWater, FillMilk, store.Water,
				fmt.Sprintf("Input water in millilitres (%d max): ", store.MaxWater)),
			FillMilk: fillNode(FillMilk, FillBeans, store.Milk,
				fmt.Sprintf("Input milk in millilitres (%d max): ", store.MaxMilk)),
			FillBeans: fillNode(FillBeans, FillCups, store.Beans,
				fmt.Sprintf("Input beans in milligrams (%d max): ", store.MaxBeans)),
			FillCups: fillNode(FillCups, MainMenu, store.Cups,
				fmt.Sprintf("Input cups count (%d max): ", store.MaxCups)),
			Exit: {
				Doc:    "Terminal.  Input is acknowledged and ignored.",
				Prompt: MsgGoodbye,
				Branches: []*Branch{
					{Pattern: "", Action: goodbyeAction, Target: Exit, ErrorTarget: Exit},
				},
			},
		},
	}

	if err := spec.Compile(); err != nil {
		return nil, err
	}

	return spec, nil
}
