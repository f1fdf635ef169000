// SPDX-License-Identifier: MPL-2.0

package script

import (
	"github.com/sebo83910/litex-axi-converter/internal/catalog"
)

// EmitBusDefinitions produces the script creating the custom bus definitions.
// XML files are written to dir, relative to the tool's working directory.
func EmitBusDefinitions(defs []catalog.BusDefinition, dir string) *Script {
	b := NewBuilder()
	for _, d := range defs {
		b.Add(DefinitionDeclaration{Definition: d, Dir: dir})
	}
	return b.Build()
}
