// Command shapefit fits transformations from point correspondences and
// applies them to points and rectangles.
package main

import "shape-transformer/cmd/shapefit/cmd"

func main() {
	cmd.Execute()
}
