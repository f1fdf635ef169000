// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/sebo83910/litex-axi-converter/cmd/axiconv"

func main() {
	cmd.Execute()
}
