// Command stockdoge inspects chess positions: move lists, check detection,
// perft counts and diagrams, from a console, an HTTP server or one-shot
// sub-commands.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/schollz/progressbar/v3"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/M1Va1/Stockdoge/internal/api"
	"github.com/M1Va1/Stockdoge/internal/board"
	"github.com/M1Va1/Stockdoge/internal/config"
	"github.com/M1Va1/Stockdoge/internal/console"
	"github.com/M1Va1/Stockdoge/internal/diagram"
	"github.com/M1Va1/Stockdoge/internal/magicstore"
	"github.com/M1Va1/Stockdoge/internal/perft"
)

const usage = `usage: stockdoge [-config file] [-cpuprofile file] <command> [flags]

commands:
  console   read commands from stdin
  serve     run the HTTP API
  perft     count legal move paths
  magics    build and store magic multipliers
  diagram   write a board diagram (.svg or .png)
`

func main() {
	os.Exit(run())
}

func run() int {
	fs := flag.NewFlagSet("stockdoge", flag.ExitOnError)
	configFile := fs.String("config", "", "the config file")
	cpuprofile := fs.String("cpuprofile", "", "write cpu profile to file")
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	fs.Parse(os.Args[1:])

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	c, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logx.MustSetup(c.Log)
	defer logx.Close()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			logx.Errorf("could not create CPU profile: %v", err)
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			logx.Errorf("could not start CPU profile: %v", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, args := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "console":
		err = runConsole(ctx, c)
	case "serve":
		err = runServe(ctx, c)
	case "perft":
		err = runPerft(ctx, c, args)
	case "magics":
		err = runMagics(ctx, c, args)
	case "diagram":
		err = runDiagram(ctx, c, args)
	default:
		fs.Usage()
		return 2
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logx.Errorf("%s: %v", cmd, err)
		return 1
	}
	return 0
}

// openMagics opens the configured store and builds the attack tables.
func openMagics(ctx context.Context, c config.Config) (*board.Magics, *magicstore.Store, error) {
	dir := ""
	if !c.Magic.NoCache {
		dir = c.Magic.CacheDir
		if dir == "" {
			var err error
			if dir, err = magicstore.DefaultDir(); err != nil {
				return nil, nil, err
			}
		}
	}

	store, err := magicstore.Open(dir)
	if err != nil {
		return nil, nil, err
	}
	magics, err := magicstore.LoadOrBuild(ctx, store, c.MagicConfig())
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return magics, store, nil
}

func runConsole(ctx context.Context, c config.Config) error {
	magics, store, err := openMagics(ctx, c)
	if err != nil {
		return err
	}
	defer store.Close()

	return console.New(os.Stdin, os.Stdout, magics).Run(ctx)
}

func runServe(ctx context.Context, c config.Config) error {
	magics, store, err := openMagics(ctx, c)
	if err != nil {
		return err
	}
	defer store.Close()

	return api.NewServer(c.HTTP, magics, store).Run(ctx)
}

type perftReport struct {
	FEN       string        `json:"fen"`
	Depth     int           `json:"depth"`
	Nodes     uint64        `json:"nodes"`
	ElapsedMS int64         `json:"elapsed_ms"`
	NPS       uint64        `json:"nps"`
	Divide    []perft.Entry `json:"divide,omitempty"`
}

func runPerft(ctx context.Context, c config.Config, args []string) error {
	fs := flag.NewFlagSet("perft", flag.ExitOnError)
	fen := fs.String("fen", board.StartFEN, "position to count from")
	depth := fs.Int("depth", 4, "search depth")
	divide := fs.Bool("divide", false, "print the node count below each root move")
	asJSON := fs.Bool("json", false, "print a JSON report")
	fs.Parse(args)

	if *depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", *depth)
	}

	magics, store, err := openMagics(ctx, c)
	if err != nil {
		return err
	}
	defer store.Close()

	b, side, err := board.ParseFEN(*fen, magics)
	if err != nil {
		return err
	}

	report := perftReport{FEN: b.FEN(side), Depth: *depth}
	start := time.Now()
	if *divide {
		var bar *progressbar.ProgressBar
		report.Divide = perft.Divide(b, side, *depth, func(done, total int) {
			if bar == nil {
				bar = newBar(total, fmt.Sprintf("perft %d", *depth))
			}
			bar.Set(done)
		})
		if bar != nil {
			bar.Finish()
			fmt.Fprintln(os.Stderr)
		}
		report.Nodes = perft.Total(report.Divide)
	} else {
		report.Nodes = perft.Count(b, side, *depth)
	}
	elapsed := time.Since(start)
	report.ElapsedMS = elapsed.Milliseconds()
	if elapsed > 0 {
		report.NPS = uint64(float64(report.Nodes) / elapsed.Seconds())
	}
	logx.WithContext(ctx).WithDuration(elapsed).Infof("perft %d: %d nodes", *depth, report.Nodes)

	if *asJSON {
		out, err := sonic.ConfigDefault.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	for _, e := range report.Divide {
		fmt.Printf("%s: %d\n", e.Move, e.Nodes)
	}
	if len(report.Divide) > 0 {
		fmt.Println()
	}
	fmt.Printf("Nodes: %d\nTime: %v\nNPS: %d\n", report.Nodes, elapsed, report.NPS)
	return nil
}

func runMagics(ctx context.Context, c config.Config, args []string) error {
	fs := flag.NewFlagSet("magics", flag.ExitOnError)
	dump := fs.Bool("print", false, "print the multipliers as JSON")
	fs.Parse(args)

	magics, store, err := openMagics(ctx, c)
	if err != nil {
		return err
	}
	defer store.Close()

	logx.Infof("%d squares searched, %d table entries", magics.Searched(), magics.TableSize())
	if *dump {
		out, err := sonic.ConfigDefault.MarshalIndent(magics.Numbers(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}
	return nil
}

func runDiagram(ctx context.Context, c config.Config, args []string) error {
	fs := flag.NewFlagSet("diagram", flag.ExitOnError)
	fen := fs.String("fen", board.StartFEN, "position to draw")
	out := fs.String("o", "board.png", "output file, .svg or .png")
	size := fs.Int("size", 0, "PNG edge in pixels")
	flip := fs.Bool("flip", false, "draw from black's side")
	coords := fs.Bool("coords", true, "draw file and rank labels")
	fs.Parse(args)

	magics, store, err := openMagics(ctx, c)
	if err != nil {
		return err
	}
	defer store.Close()

	b, _, err := board.ParseFEN(*fen, magics)
	if err != nil {
		return err
	}
	opts := diagram.Options{Size: *size, Flip: *flip, Coordinates: *coords}
	if m := b.LastMove(); m != board.NoMove {
		opts.Highlight = board.SquareBB(m.From()) | board.SquareBB(m.To())
	}

	write := diagram.WritePNG
	switch ext := strings.ToLower(filepath.Ext(*out)); ext {
	case ".png":
	case ".svg":
		write = diagram.WriteSVG
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := write(f, b, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logx.Infof("wrote %s", *out)
	return nil
}
