package testutil

import (
	"reflect"
	"testing"
)

type Recipe struct {
	Name string `json:"name"`
	Cost int    `json:"cost"`
}

func TestJS(t *testing.T) {
	tests := []struct {
		name string
		arg  interface{}
		want string
	}{
		{
			name: "simple struct",
			arg:  Recipe{"Espresso", 4},
			want: `{"name":"Espresso","cost":4}`,
		},
		{
			name: "nested struct",
			arg: struct {
				Recipe Recipe
				ID     int
			}{Recipe{"Latte", 7}, 1},
			want: `{"Recipe":{"name":"Latte","cost":7},"ID":1}`,
		},
		{
			name: "unmarshalable",
			arg:  make(chan int),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JS(tt.arg)
			if tt.want == "" {
				if got == "" {
					t.Errorf("JS() gave nothing")
				}
				return
			}
			if got != tt.want {
				t.Errorf("JS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDwimjs(t *testing.T) {
	tests := []struct {
		name string
		arg  interface{}
		want interface{}
	}{
		{
			name: "valid JSON string",
			arg:  `{"name":"Espresso","cost":4}`,
			want: map[string]interface{}{"name": "Espresso", "cost": float64(4)},
		},
		{
			name: "valid JSON bytes",
			arg:  []byte(`{"name":"Latte","cost":7}`),
			want: map[string]interface{}{"name": "Latte", "cost": float64(7)},
		},
		{
			name: "non-JSON string",
			arg:  "hello world",
			want: "hello world",
		},
		{
			name: "non-string, non-byte-slice type",
			arg:  12345,
			want: 12345,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dwimjs(tt.arg); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Dwimjs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSameJSON(t *testing.T) {
	r := Recipe{"Cappuccino", 6}
	if !SameJSON(r, `{"cost":6,"name":"Cappuccino"}`) {
		t.Fatal("string form")
	}
	if !SameJSON(r, map[string]interface{}{"name": "Cappuccino", "cost": 6}) {
		t.Fatal("map form")
	}
	if SameJSON(r, `{"name":"Cappuccino"}`) {
		t.Fatal("missing property")
	}
}
