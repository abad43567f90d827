// satcam-thumbs builds the thumbnail storage image.
package main

import (
	satcam "github.com/psat2/satcam/src"
)

func main() {
	satcam.ThumbsMain()
}
