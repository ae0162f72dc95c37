package main

import (
	"os"

	"github.com/horenderer/pathtracer/cmd"
	"github.com/horenderer/pathtracer/pkg/log"
)

func main() {
	if err := cmd.NewApp().Run(os.Args); err != nil {
		log.New("pathtracer").Error(err)
		os.Exit(1)
	}
}
