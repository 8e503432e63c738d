package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/FluffyLoaf254/swirlix/brush"
	"github.com/FluffyLoaf254/swirlix/scene"
	"github.com/FluffyLoaf254/swirlix/sculpt"
	"github.com/FluffyLoaf254/swirlix/types"
	"github.com/urfave/cli"
)

// Apply brush strokes to a sculpt archive, creating it if needed.
func Carve(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing sculpt file argument")
	}
	sculptFile := ctx.Args().First()

	sc, bld, err := loadOrCreateSculpt(sculptFile, uint32(ctx.Int("res")))
	if err != nil {
		return err
	}

	tip, exists := brush.TipByName(ctx.String("brush"))
	if !exists {
		return fmt.Errorf("unknown brush %q", ctx.String("brush"))
	}

	material, err := parseMaterial(ctx.String("material"))
	if err != nil {
		return err
	}

	b := brush.Brush{
		Tip:      tip,
		Size:     float32(ctx.Float64("size")),
		Material: bld.AddMaterial(material),
	}

	strokes := ctx.StringSlice("at")
	if len(strokes) == 0 {
		return errors.New("missing stroke positions; pass at least one --at x,y,z")
	}

	remove := ctx.Bool("remove")
	for _, stroke := range strokes {
		at, err := parseVec3(stroke)
		if err != nil {
			return err
		}

		if remove {
			err = b.Remove(bld, at)
		} else {
			err = b.Add(bld, at)
		}
		if err != nil {
			return err
		}
		logger.Infof("applied %s stroke at %v", b.Tip.Name(), at)
	}

	sc.Sculpt = bld.Encode()

	outFile := ctx.String("out")
	if outFile == "" {
		outFile = sculptFile
	}
	return scene.Write(outFile, sc)
}

// Load a sculpt archive for editing, or start a fresh one when the file
// does not exist yet.
func loadOrCreateSculpt(sculptFile string, resolution uint32) (*scene.Scene, *sculpt.Builder, error) {
	if _, err := os.Stat(sculptFile); err != nil {
		if !os.IsNotExist(err) {
			return nil, nil, err
		}

		logger.Noticef("creating new sculpt with resolution %d", resolution)
		bld, err := sculpt.NewBuilder(sculpt.Config{Resolution: resolution})
		if err != nil {
			return nil, nil, err
		}
		return scene.NewScene(bld.Encode()), bld, nil
	}

	sc, err := scene.Read(sculptFile)
	if err != nil {
		return nil, nil, err
	}
	bld, err := sculpt.DecodeBuilder(sc.Sculpt)
	if err != nil {
		return nil, nil, err
	}
	return sc, bld, nil
}

// Parse a comma separated point, e.g. "0.5,0.5,0.5".
func parseVec3(val string) (types.Vec3, error) {
	fields := strings.Split(val, ",")
	if len(fields) != 3 {
		return types.Vec3{}, fmt.Errorf("expected 3 comma separated values; got %q", val)
	}

	var out types.Vec3
	for idx, field := range fields {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
		if err != nil {
			return types.Vec3{}, fmt.Errorf("could not parse %q as a number", field)
		}
		out[idx] = float32(parsed)
	}
	return out, nil
}

// Parse a material as "r,g,b[,a[,roughness[,metallic]]]" with all values
// in [0, 1].
func parseMaterial(val string) (sculpt.Material, error) {
	out := sculpt.DefaultMaterial
	if val == "" {
		return out, nil
	}

	fields := strings.Split(val, ",")
	if len(fields) < 3 || len(fields) > 6 {
		return out, fmt.Errorf("expected 3 to 6 comma separated values; got %q", val)
	}

	parsed := make([]float32, len(fields))
	for idx, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
		if err != nil || v < 0 || v > 1 {
			return out, fmt.Errorf("material values must be numbers in [0, 1]; got %q", field)
		}
		parsed[idx] = float32(v)
	}

	out.Color = types.XYZW(parsed[0], parsed[1], parsed[2], 1)
	if len(parsed) > 3 {
		out.Color[3] = parsed[3]
	}
	if len(parsed) > 4 {
		out.Roughness = parsed[4]
	}
	if len(parsed) > 5 {
		out.Metallic = parsed[5]
	}
	return out, nil
}
