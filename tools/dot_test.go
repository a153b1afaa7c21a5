/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
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

package tools

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Comcast/vend/machine"
)

func vendingSpec(t *testing.T) *machine.Spec {
	spec, err := machine.VendingSpec()
	if err != nil {
		t.Fatal(err)
	}
	return spec
}

func TestDot(t *testing.T) {
	var (
		spec = vendingSpec(t)
		out  = &bytes.Buffer{}
	)

	if err := Dot(spec, out, machine.MainMenu, machine.BuyMenu); err != nil {
		t.Fatal(err)
	}

	dot := out.String()
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Fatal(dot)
	}
	for _, want := range []string{
		`mainMenu -> buyMenu [ color="red"`,
		`buyMenu -> mainMenu`,
		`fillCups -> mainMenu`,
		`exit -> exit`,
		`fill water`,
	} {
		if !strings.Contains(dot, want) {
			t.Fatalf("missing %q in\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `mainMenu -> fillWater [ color="red"`) {
		t.Fatal("wrong edge highlighted")
	}
}
