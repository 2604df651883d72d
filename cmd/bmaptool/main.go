// Command bmaptool inspects, repairs and edits Bolo map files.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"bolo-mapkit/internal/config"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	a := &app{}
	cmd := &cli.Command{
		Name:  "bmaptool",
		Usage: "inspect, repair and edit Bolo map files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "profile",
				Usage:   "config profile to use",
				Sources: cli.EnvVars("BMAP_PROFILE"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log repairs and print error traces",
				Sources: cli.EnvVars("BMAP_VERBOSE"),
			},
			&cli.BoolFlag{
				Name:    "backup",
				Usage:   "write <file>.bak before overwriting a map",
				Sources: cli.EnvVars("BMAP_BACKUP"),
			},
		},
		Before: a.setup,
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "print object counts and encoding statistics",
				ArgsUsage: "<file>",
				Action:    a.info,
			},
			{
				Name:      "dump",
				Usage:     "draw the map as text",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "rect", Usage: "area to draw as x,y,w,h (default: the sea)"},
				},
				Action: a.dump,
			},
			{
				Name:      "repair",
				Usage:     "load a map, fix what is invalid and save it",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write to this file instead of in place"},
				},
				Action: a.repair,
			},
			{
				Name:      "new",
				Usage:     "write a new map, empty or with generated islands",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "islands", Usage: "generate this many islands (default: an empty map)", Validator: intRange(1, 12)},
					&cli.IntFlag{Name: "island-size", Usage: "target land cells per island", Value: 600, Validator: intRange(50, 4000)},
					&cli.Uint64Flag{Name: "seed", Usage: "generator seed (default: from the clock)"},
				},
				Action: a.newMap,
			},
			{
				Name:      "objects",
				Usage:     "list pillboxes, bases and starts",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "where", Aliases: []string{"w"}, Usage: `filter, e.g. 'Kind == "pill" && Armour < 10'`},
				},
				Action: a.objects,
			},
			{
				Name:  "add",
				Usage: "place an object",
				Commands: []*cli.Command{
					a.addCommand("pill"),
					a.addCommand("base"),
					a.addCommand("start"),
				},
			},
			{
				Name:      "copy",
				Usage:     "copy a block of tiles to the clipboard",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "rect", Usage: "area to copy as x,y,w,h", Required: true},
				},
				Action: a.copyTiles,
			},
			{
				Name:      "paste",
				Usage:     "stamp the clipboard's tiles into a map",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "at", Usage: "top-left corner as x,y (default: where it was copied from)"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write to this file instead of in place"},
				},
				Action: a.paste,
			},
			{
				Name:   "config",
				Usage:  "print the effective configuration",
				Action: a.showConfig,
				Commands: []*cli.Command{
					{
						Name:   "save",
						Usage:  "persist the effective configuration",
						Action: a.saveConfig,
					},
					{
						Name:   "path",
						Usage:  "print the config file location",
						Action: a.configPath,
					},
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.Run(ctx, os.Args)
	stop()
	if err != nil {
		log.Fatalf("bmaptool: %v", err)
	}
}

// app carries state shared by every command.
type app struct {
	cfg *config.Config
}

// setup loads the config file for the selected profile and applies flag
// overrides on top of it.
func (a *app) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	config.SetProfile(cmd.String("profile"))

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
	}
	if cmd.IsSet("verbose") {
		cfg.Verbose = cmd.Bool("verbose")
	}
	if cmd.IsSet("backup") {
		cfg.Backup = cmd.Bool("backup")
	}
	a.cfg = cfg

	if cfg.Verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(0)
	}
	return ctx, nil
}
