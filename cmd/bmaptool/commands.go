package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"golang.design/x/clipboard"

	"bolo-mapkit/internal/config"
	"bolo-mapkit/internal/query"
	"bolo-mapkit/pkg/bmap"
	"bolo-mapkit/pkg/geom"
	"bolo-mapkit/pkg/tiles"
)

var errUsage = errors.New("usage")

// fileArg returns the command's single map path.
func fileArg(cmd *cli.Command) (string, error) {
	if cmd.NArg() != 1 {
		return "", fmt.Errorf("%w: %s %s", errUsage, cmd.FullName(), cmd.ArgsUsage)
	}
	return cmd.Args().First(), nil
}

// outPath is --out when given, otherwise the input path.
func outPath(cmd *cli.Command, in string) string {
	if out := cmd.String("out"); out != "" {
		return out
	}
	return in
}

func (a *app) info(ctx context.Context, cmd *cli.Command) error {
	path, err := fileArg(cmd)
	if err != nil {
		return err
	}
	m, err := a.loadMap(path)
	if err != nil {
		return err
	}
	st, err := m.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", path)
	fmt.Printf("  pills %d  bases %d  starts %d\n", m.Pills.Len(), m.Bases.Len(), m.Starts.Len())
	fmt.Printf("  runs %d (%d bytes)  file %d bytes\n", st.Runs, st.RunBytes, st.Size)
	for i, isl := range m.Islands() {
		fmt.Printf("  island %d: %d cells in %v, %d pills, %d bases\n", i, isl.Cells, isl.Bounds, isl.Pills, isl.Bases)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for t, n := range st.TileCount {
		if n > 0 {
			fmt.Fprintf(w, "  %s\t%d\n", tiles.Tile(t), n)
		}
	}
	return w.Flush()
}

func (a *app) dump(ctx context.Context, cmd *cli.Command) error {
	path, err := fileArg(cmd)
	if err != nil {
		return err
	}
	r := tiles.SeaRect
	if s := cmd.String("rect"); s != "" {
		if r, err = parseRect(s); err != nil {
			return err
		}
	}
	legend, err := bmap.DefaultLegend.With(a.cfg.Legend)
	if err != nil {
		return fmt.Errorf("config legend: %w", err)
	}

	m, err := a.loadMap(path)
	if err != nil {
		return err
	}
	fmt.Print(m.DebugRect(r, legend))
	return nil
}

func (a *app) repair(ctx context.Context, cmd *cli.Command) error {
	path, err := fileArg(cmd)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	m, report, err := bmap.Codec{}.Load(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if len(report) == 0 {
		log.Printf("%s: nothing to repair", path)
	}
	for _, r := range report {
		log.Printf("%s: %s", path, r)
	}
	out := outPath(cmd, path)
	if len(report) == 0 && out == path {
		return nil
	}
	return a.saveMap(out, m)
}

func (a *app) newMap(ctx context.Context, cmd *cli.Command) error {
	path, err := fileArg(cmd)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if !cmd.IsSet("islands") {
		return a.saveMap(path, bmap.New())
	}

	opts := bmap.DefaultGeneratorOptions()
	opts.Islands = cmd.Int("islands")
	opts.IslandSize = cmd.Int("island-size")
	opts.Seed = cmd.Uint64("seed")

	g := bmap.NewGenerator(opts)
	m := g.Generate()
	log.Printf("Generated %d islands (seed %d)", len(m.Islands()), g.Options().Seed)
	return a.saveMap(path, m)
}

func (a *app) objects(ctx context.Context, cmd *cli.Command) error {
	path, err := fileArg(cmd)
	if err != nil {
		return err
	}
	f, err := query.Compile(cmd.String("where"))
	if err != nil {
		return err
	}
	m, err := a.loadMap(path)
	if err != nil {
		return err
	}
	objs, err := f.Select(m)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\t#\tX\tY\tOWNER\tDETAIL\tTILE")
	for _, o := range objs {
		owner := strconv.Itoa(o.Owner)
		if o.Neutral {
			owner = "-"
		}
		var detail string
		switch o.Kind {
		case bmap.KindPill.String():
			detail = fmt.Sprintf("armour %d speed %d", o.Armour, o.Speed)
		case bmap.KindBase.String():
			detail = fmt.Sprintf("armour %d shells %d mines %d", o.Armour, o.Shells, o.Mines)
		case bmap.KindStart.String():
			detail = fmt.Sprintf("dir %d", o.Dir)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\t%s\n", o.Kind, o.Index, o.X, o.Y, owner, detail, o.Tile)
	}
	return w.Flush()
}

func (a *app) addCommand(kind string) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "at", Usage: "position as x,y", Required: true},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write to this file instead of in place"},
	}
	if kind == "start" {
		flags = append(flags, &cli.IntFlag{Name: "dir", Usage: "direction towards land, 0-15", Validator: intRange(0, 15)})
	}
	return &cli.Command{
		Name:      kind,
		Usage:     "add a " + kind,
		ArgsUsage: "<file>",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return a.add(cmd, kind)
		},
	}
}

func (a *app) add(cmd *cli.Command, kind string) error {
	path, err := fileArg(cmd)
	if err != nil {
		return err
	}
	p, err := parsePoint(cmd.String("at"))
	if err != nil {
		return err
	}
	m, err := a.loadMap(path)
	if err != nil {
		return err
	}

	owner := uint8(a.cfg.DefaultOwner)
	var i int
	switch kind {
	case "pill":
		if i, err = m.CreatePillAt(p); err == nil {
			pill := m.Pills.At(i)
			pill.Owner = owner
			err = m.SetPill(i, pill)
		}
	case "base":
		if i, err = m.CreateBaseAt(p); err == nil {
			base := m.Bases.At(i)
			base.Owner = owner
			err = m.SetBase(i, base)
		}
	case "start":
		i, err = m.CreateStartAt(p, uint8(cmd.Int("dir")))
	}
	if err != nil {
		return fmt.Errorf("add %s at %v: %w", kind, p, err)
	}
	log.Printf("Added %s %d at %v", kind, i, p)
	return a.saveMap(outPath(cmd, path), m)
}

func (a *app) copyTiles(ctx context.Context, cmd *cli.Command) error {
	path, err := fileArg(cmd)
	if err != nil {
		return err
	}
	r, err := parseRect(cmd.String("rect"))
	if err != nil {
		return err
	}
	m, err := a.loadMap(path)
	if err != nil {
		return err
	}
	text, err := m.TilesInRect(r).MarshalText()
	if err != nil {
		return err
	}

	os.Stdout.Write(text)

	if err := clipboard.Init(); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	changed := clipboard.Write(clipboard.FmtText, text)
	log.Printf("Copied %v; holding the clipboard until something else is copied", r)

	// On X11 the selection lives only as long as this process.
	select {
	case <-changed:
	case <-ctx.Done():
	}
	return nil
}

func (a *app) paste(ctx context.Context, cmd *cli.Command) error {
	path, err := fileArg(cmd)
	if err != nil {
		return err
	}
	if err := clipboard.Init(); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	var tr bmap.TileRect
	if err := tr.UnmarshalText(clipboard.Read(clipboard.FmtText)); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	if s := cmd.String("at"); s != "" {
		p, err := parsePoint(s)
		if err != nil {
			return err
		}
		tr.SetOrigin(p)
	}

	m, err := a.loadMap(path)
	if err != nil {
		return err
	}
	if err := m.SetTileRect(&tr); err != nil {
		return err
	}
	m.SetAppropriateTilesForObjectsInRect(tr.Rect)
	log.Printf("Pasted %v", tr.Rect)
	return a.saveMap(outPath(cmd, path), m)
}

func (a *app) showConfig(ctx context.Context, cmd *cli.Command) error {
	data, err := json.MarshalIndent(a.cfg, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func (a *app) saveConfig(ctx context.Context, cmd *cli.Command) error {
	if err := a.cfg.Save(); err != nil {
		return err
	}
	path, _ := config.Path()
	log.Printf("Saved config to %s", path)
	return nil
}

func (a *app) configPath(ctx context.Context, cmd *cli.Command) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// intRange returns a flag validator accepting lo through hi.
func intRange(lo, hi int) func(int) error {
	return func(v int) error {
		if v < lo || v > hi {
			return fmt.Errorf("must be %d-%d, got %d", lo, hi, v)
		}
		return nil
	}
}

// parsePoint parses "x,y".
func parsePoint(s string) (geom.Point, error) {
	v, err := parseInts(s, 2)
	if err != nil {
		return geom.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return geom.Pt(v[0], v[1]), nil
}

// parseRect parses "x,y,w,h".
func parseRect(s string) (geom.Rect, error) {
	v, err := parseInts(s, 4)
	if err != nil {
		return geom.Rect{}, fmt.Errorf("rect %q: %w", s, err)
	}
	if v[2] <= 0 || v[3] <= 0 {
		return geom.Rect{}, fmt.Errorf("rect %q: width and height must be positive", s)
	}
	return geom.MakeRect(v[0], v[1], v[2], v[3]), nil
}

func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated numbers", n)
	}
	v := make([]int, n)
	for i, p := range parts {
		x, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		v[i] = x
	}
	return v, nil
}
