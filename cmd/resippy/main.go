// Command resippy keeps a household's recipe menu and weekly meal plan.
package main

import "github.com/mesh-intelligence/resippy/internal/cli"

func main() {
	cli.Execute()
}
