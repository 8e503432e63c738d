package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/FluffyLoaf254/swirlix/scene"
	"github.com/FluffyLoaf254/swirlix/sculpt"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Print buffer statistics for a sculpt archive.
func Info(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing sculpt file argument")
	}

	sc, err := scene.Read(ctx.Args().First())
	if err != nil {
		return err
	}

	snap, err := sculpt.DecodeSnapshot(sc.Sculpt)
	if err != nil {
		return err
	}
	stats := snap.Stats()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Property", "Value"})
	table.Append([]string{"Resolution", fmt.Sprintf("%d", snap.Resolution())})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", snap.MaxDepth())})
	table.Append([]string{"Buffer words", fmt.Sprintf("%d", stats.TotalWords)})
	table.Append([]string{"Interior nodes", fmt.Sprintf("%d", stats.NodeCount)})
	table.Append([]string{"Filled leaves", fmt.Sprintf("%d", stats.LeafCount)})
	table.Append([]string{"Far pointers", fmt.Sprintf("%d", stats.FarPointerCount)})
	table.Append([]string{"Max filled depth", fmt.Sprintf("%d", stats.MaxFilledDepth)})
	table.Append([]string{"Materials", fmt.Sprintf("%d", stats.MaterialCount)})
	table.Render()

	logger.Noticef("sculpt statistics\n%s", buf.String())
	return nil
}
