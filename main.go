// unitconv converts quantities between units, including calendar and clock
// arithmetic for time.
package main

import (
	"fmt"
	"os"

	"github.com/jparise/unitconv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
