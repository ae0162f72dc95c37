package cmd

import (
	"bytes"

	"github.com/horenderer/pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes logs a table of the built-in scenes
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Name", "Description"})
	for _, info := range scene.List() {
		table.Append([]string{info.ID, info.DisplayName, info.Description})
	}
	table.Render()

	logger.Noticef("built-in scenes\n%s", buf.String())
	return nil
}
