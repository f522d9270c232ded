// Package main is the entry point of the downify client.
package main

import (
	"github.com/downify/downify/cmd"
	"github.com/downify/downify/config"
	"github.com/downify/downify/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
