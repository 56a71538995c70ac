package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lmittmann/tint"
	"q.log/gomory/instance"
	"q.log/gomory/model"
	"q.log/gomory/simplex"
)

func main() {
	integer := flag.Bool("integer", false, "require an integer solution (Gomory cuts)")
	minimize := flag.Bool("min", false, "minimize instead of the file's direction")
	trace := flag.Bool("trace", false, "print every tableau, not only the final one")
	verbose := flag.Bool("v", false, "log every pivot")
	maxIter := flag.Int("max-iter", 0, "stop after this many pivots and cuts (0: no limit)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] problem.{mps,yaml}\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		}),
	))

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	filename := flag.Arg(0)

	m, err := load(filename)
	if err != nil {
		slog.Error("cannot load problem", "file", filename, "err", err)
		os.Exit(1)
	}
	if *integer {
		m.Integer = true
	}
	if *minimize {
		m.Direction = model.Minimize
	}

	m.PrintC(os.Stdout)
	m.PrintA(os.Stdout)
	m.PrintB(os.Stdout)

	s, err := simplex.New(m, simplex.WithLogger(slog.Default()), simplex.WithMaxIterations(*maxIter))
	if err != nil {
		slog.Error("invalid problem", "err", err)
		os.Exit(1)
	}

	res, err := s.Solve()
	if res != nil {
		for _, e := range res.History {
			switch {
			case e.Snapshot == nil:
				fmt.Println(e.Note)
			case *trace:
				e.Snapshot.Print(os.Stdout)
			}
		}
		if !*trace {
			if last := res.History.Last(); last != nil {
				last.Print(os.Stdout)
			}
		}
	}
	if err != nil {
		slog.Error("no solution", "status", res.Status, "err", err)
		os.Exit(1)
	}
}

func load(filename string) (*model.Model, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return model.LoadYAML(filename)
	default:
		return instance.NewReader(filename).ConstructModelFromFile()
	}
}
