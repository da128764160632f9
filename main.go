// Command cinelink resolves catalog titles into provider stream links.
package main

import (
	"github.com/cinelink/cinelink/cmd"
	"github.com/cinelink/cinelink/config"
	"github.com/cinelink/cinelink/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
