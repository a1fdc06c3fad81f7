// Command traits declares, composes and invokes traits stored in a catalog.
package main

import "github.com/mesh-intelligence/traits/internal/cli"

func main() {
	cli.Execute()
}
