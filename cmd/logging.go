package cmd

import (
	"github.com/horenderer/pathtracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("pathtracer")

func setupLogging(ctx *cli.Context) {
	count := 0
	if ctx.GlobalBool("v") {
		count = 1
	}
	if ctx.GlobalBool("vv") {
		count = 2
	}
	log.SetLevel(log.Verbosity(count))
}
