// satcam-tx sends a picture, text or Morse message.
package main

import (
	satcam "github.com/psat2/satcam/src"
)

func main() {
	satcam.TxMain()
}
