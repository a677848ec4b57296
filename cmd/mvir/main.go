// Command mvir is the developer front end for the Move IR parser:
// syntax-check sources, optionally watching for changes, or dump the AST.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"

	"github.com/naolduga/mvir/internal/cache"
	"github.com/naolduga/mvir/pkg/ast"
	"github.com/naolduga/mvir/pkg/parser"
	"github.com/naolduga/mvir/pkg/visitors"
)

func main() {
	app := &cli.App{
		Name:  "mvir",
		Usage: "parse Move IR sources",
		Commands: []*cli.Command{
			checkCommand(),
			dumpCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func unitFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "unit",
		Value: "auto",
		Usage: "compilation unit to expect: program, script, module or auto",
	}
}

// parseUnit dispatches to the parser entry point for the requested unit.
func parseUnit(unit, path, source string) (ast.ASTNode, error) {
	switch unit {
	case "program":
		return asNode(parser.ParseProgram(path, source))
	case "script":
		return asNode(parser.ParseScript(path, source))
	case "module":
		return asNode(parser.ParseModule(path, source))
	case "auto":
		return asNode(parser.ParseScriptOrModule(path, source))
	}
	return nil, fmt.Errorf("unknown unit %q", unit)
}

func asNode[T ast.ASTNode](node T, err error) (ast.ASTNode, error) {
	if err != nil {
		return nil, err
	}
	return node, nil
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "syntax-check source files",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			unitFlag(),
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "keep running and re-check files as they change",
			},
			&cli.StringFlag{
				Name:  "cache",
				Usage: "path to a check cache; unchanged files are skipped",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "report failures only",
			},
		},
		Action: runCheck,
	}
}

func runCheck(c *cli.Context) error {
	files := c.Args().Slice()
	if len(files) == 0 {
		return cli.Exit("no input files", 64)
	}

	var store *cache.Cache
	if path := c.String("cache"); path != "" {
		var err error
		store, err = cache.Load(path)
		if err != nil {
			return err
		}
	}

	checkAll := func() bool {
		ok := true
		for _, file := range files {
			if !checkFile(c, store, file) {
				ok = false
			}
		}
		if store != nil {
			if err := store.Save(); err != nil {
				fmt.Fprintln(c.App.ErrWriter, err)
			}
		}
		return ok
	}

	if !c.Bool("watch") {
		if !checkAll() {
			return cli.Exit("", 1)
		}
		return nil
	}

	checkAll()
	return watch(c, files, checkAll)
}

// checkFile parses one file and reports the outcome. With a cache, files
// whose content already parsed cleanly are skipped.
func checkFile(c *cli.Context, store *cache.Cache, file string) bool {
	if store != nil {
		changed, err := store.Changed(file)
		if err == nil && !changed {
			if !c.Bool("quiet") {
				fmt.Fprintf(c.App.Writer, "%s: unchanged\n", file)
			}
			return true
		}
	}
	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintln(c.App.ErrWriter, err)
		return false
	}
	if _, err := parseUnit(c.String("unit"), file, string(data)); err != nil {
		fmt.Fprintln(c.App.ErrWriter, err)
		if store != nil {
			store.Remove(file)
		}
		return false
	}
	if !c.Bool("quiet") {
		fmt.Fprintf(c.App.Writer, "%s: ok\n", file)
	}
	if store != nil {
		if err := store.MarkClean(file); err != nil {
			fmt.Fprintln(c.App.ErrWriter, err)
		}
	}
	return true
}

// watch re-runs the check whenever one of the files is written. The
// watches sit on the parent directories so editors that replace files
// on save keep being picked up.
func watch(c *cli.Context, files []string, check func() bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(files))
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return err
		}
		watched[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return err
		}
	}

	fmt.Fprintln(c.App.Writer, "watching for changes...")
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !watched[abs] {
				continue
			}
			check()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(c.App.ErrWriter, err)
		}
	}
}

func dumpCommand() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "print the AST of a source file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			unitFlag(),
			&cli.BoolFlag{
				Name:  "spans",
				Usage: "include byte spans in the output",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return cli.Exit("expected exactly one input file", 64)
			}
			file := c.Args().First()
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			node, err := parseUnit(c.String("unit"), file, string(data))
			if err != nil {
				return err
			}
			printer := visitors.NewDebugPrinter()
			printer.WithSpans = c.Bool("spans")
			node.Accept(printer)
			fmt.Fprint(c.App.Writer, printer.String())
			return nil
		},
	}
}
