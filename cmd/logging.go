package cmd

import (
	"github.com/FluffyLoaf254/swirlix/log"
	"github.com/urfave/cli"
)

var logger = log.New("swirlix")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
