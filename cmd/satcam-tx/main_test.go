package main

import (
	satcam "github.com/psat2/satcam/src"
)

func Example_modes() {
	satcam.RunTx("satcam-tx", []string{"modes"})
	// Output:
	// MODE        ID  VIS     LINES
	// Robot36     36  0x88    240
	// Robot72     72  0xc     240
	// MP73        73  0x2523  256
	// MP115      115  0x2923  256
}
