// Command msdscript reads an msdscript expression from a file or from
// standard input, and interprets or prints it.
//
//	$ echo 'let x = 5 in x * (x+1)' | msdscript
//	30
//	$ echo 'let x = 5 in x * (x+1)' | msdscript --print
//	(let x = 5 in (x*(x+1)))
//
// "msdscript repl" starts an interactive session.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jcgregorio/logger"
	"github.com/kr/pretty"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/magical/msdscript/bytecode"
	"github.com/magical/msdscript/expr"
)

// Exit statuses.
const (
	exitOK      = 0
	exitRuntime = 1
	exitParse   = 2
	exitCheck   = 3
	exitUsage   = 4
)

// modes, in the order they are listed in --help
var modes = []struct {
	name  string
	usage string
}{
	{"interp", "evaluate the expression and print its value (default)"},
	{"print", "print the expression fully parenthesized"},
	{"pretty-print", "print the expression with minimal parentheses"},
	{"check", "typecheck the expression and print its type"},
	{"dump", "print the syntax tree"},
	{"disasm", "compile the expression and print the register program"},
	{"vm", "compile the expression and run it on the register machine"},
}

var errColor = color.New(color.FgRed)

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	err := app.Run(os.Args)
	os.Exit(exitCode(err))
}

// tool holds the state shared by the command actions.
type tool struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *logger.Logger
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	t := &tool{stdin: stdin, stdout: stdout, stderr: stderr}

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log debugging information to stderr",
			EnvVars: []string{"MSDSCRIPT_VERBOSE"},
		},
		&cli.StringSliceFlag{
			Name:    "define",
			Aliases: []string{"D"},
			Usage:   "bind `NAME=EXPR` before evaluating; may be repeated",
			EnvVars: []string{"MSDSCRIPT_DEFINE"},
		},
	}
	for _, m := range modes {
		flags = append(flags, &cli.BoolFlag{Name: m.name, Usage: m.usage})
	}

	return &cli.App{
		Name:      "msdscript",
		Usage:     "interpret and print msdscript expressions",
		ArgsUsage: "[file]",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     flags,
		Before: func(c *cli.Context) error {
			t.log = newLogger(stderr, c.Bool("verbose"))
			return nil
		},
		Action: t.run,
		Commands: []*cli.Command{
			{
				Name:   "repl",
				Usage:  "start an interactive session",
				Action: t.repl,
			},
		},
		// main picks the exit status; don't let cli call os.Exit
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func newLogger(w io.Writer, verbose bool) *logger.Logger {
	sw, ok := w.(logger.SyncWriter)
	if !ok {
		sw = nopSyncer{w}
	}
	return logger.NewFromOptions(&logger.Options{
		SyncWriter:   sw,
		IncludeDebug: verbose,
	})
}

type nopSyncer struct {
	io.Writer
}

func (nopSyncer) Sync() error { return nil }

// exitCode maps an error returned by the app to a process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	// flag parsing errors and the like
	return exitUsage
}

// fail reports err on stderr and returns an error carrying the exit status.
func (t *tool) fail(code int, err error) error {
	errColor.Fprintf(t.stderr, "msdscript: %v\n", err)
	return cli.Exit(err.Error(), code)
}

func (t *tool) mode(c *cli.Context) (string, error) {
	var chosen []string
	for _, m := range modes {
		if c.Bool(m.name) {
			chosen = append(chosen, "--"+m.name)
		}
	}
	switch len(chosen) {
	case 0:
		return "interp", nil
	case 1:
		return chosen[0][2:], nil
	default:
		return "", t.fail(exitUsage, fmt.Errorf("conflicting modes %s", strings.Join(chosen, ", ")))
	}
}

// definition is a --define binding, already evaluated.
type definition struct {
	name string
	val  expr.Val
}

// definitions evaluates the --define flags in order;
// each may refer to the ones before it.
func (t *tool) definitions(c *cli.Context) ([]definition, *expr.Env, error) {
	var defs []definition
	var env *expr.Env
	for _, d := range c.StringSlice("define") {
		lhs, src, ok := strings.Cut(d, "=")
		if !ok || strings.TrimSpace(lhs) == "" {
			return nil, nil, t.fail(exitUsage, fmt.Errorf("--define %q: want NAME=EXPR", d))
		}
		name, ok := varName(lhs)
		if !ok {
			return nil, nil, t.fail(exitUsage, fmt.Errorf("--define %q: %q is not a variable name", d, strings.TrimSpace(lhs)))
		}
		e, err := expr.Parse(src)
		if err != nil {
			return nil, nil, t.fail(exitParse, errors.Wrapf(err, "--define %s", name))
		}
		v, err := expr.Eval(e, env)
		if err != nil {
			return nil, nil, t.fail(exitRuntime, errors.Wrapf(err, "--define %s", name))
		}
		if _, dup := env.Lookup(name); dup {
			t.log.Warningf("--define %s given more than once; the last one wins", name)
		}
		t.log.Debugf("define %s = %s", name, v)
		defs = append(defs, definition{name, v})
		env = env.Extend(name, v)
	}
	return defs, env, nil
}

// varName parses s as a lone variable and returns its name,
// without any surrounding space or comments.
func varName(s string) (string, bool) {
	e, err := expr.Parse(s)
	if err != nil {
		return "", false
	}
	v, ok := e.(*expr.VarExpr)
	if !ok {
		return "", false
	}
	return v.Name, true
}

// closeOver wraps e in lets for defs, so that it can be checked or
// compiled on its own. Later definitions end up innermost.
func closeOver(e expr.Expr, defs []definition) expr.Expr {
	for i := len(defs) - 1; i >= 0; i-- {
		e = expr.Let(defs[i].name, expr.ToExpr(defs[i].val), e)
	}
	return e
}

func (t *tool) readInput(c *cli.Context) (expr.Expr, error) {
	var r io.Reader = t.stdin
	name := "<stdin>"
	if c.NArg() > 1 {
		return nil, t.fail(exitUsage, fmt.Errorf("too many arguments"))
	}
	if c.NArg() == 1 {
		name = c.Args().First()
		f, err := os.Open(name)
		if err != nil {
			return nil, t.fail(exitUsage, errors.Wrap(err, "opening input"))
		}
		defer f.Close()
		r = f
	}
	start := time.Now()
	e, err := expr.ParseReader(r)
	if err != nil {
		var perr *expr.ParseError
		if errors.As(err, &perr) {
			return nil, t.fail(exitParse, fmt.Errorf("%s: %v", name, err))
		}
		return nil, t.fail(exitUsage, err)
	}
	t.log.Debugf("parsed %s in %v", name, time.Since(start))
	return e, nil
}

func (t *tool) run(c *cli.Context) error {
	mode, err := t.mode(c)
	if err != nil {
		return err
	}
	t.log.Debugf("mode %s", mode)
	defs, env, err := t.definitions(c)
	if err != nil {
		return err
	}
	e, err := t.readInput(c)
	if err != nil {
		return err
	}

	start := time.Now()
	defer func() { t.log.Debugf("%s took %v", mode, time.Since(start)) }()

	switch mode {
	case "interp":
		v, err := expr.Eval(e, env)
		if err != nil {
			return t.fail(exitRuntime, err)
		}
		fmt.Fprintln(t.stdout, v)
	case "vm":
		v, err := bytecode.Compile(closeOver(e, defs)).Run()
		if err != nil {
			return t.fail(exitRuntime, err)
		}
		fmt.Fprintln(t.stdout, v)
	case "print":
		fmt.Fprintln(t.stdout, expr.Print(e))
	case "pretty-print":
		fmt.Fprintln(t.stdout, expr.PrettyPrint(e))
	case "check":
		typ, err := expr.Typecheck(closeOver(e, defs))
		if err != nil {
			return t.fail(exitCheck, err)
		}
		fmt.Fprintln(t.stdout, typ)
	case "dump":
		pretty.Fprintf(t.stdout, "%# v\n", e)
	case "disasm":
		fmt.Fprint(t.stdout, bytecode.Compile(closeOver(e, defs)))
	default:
		panic("unhandled mode: " + mode)
	}
	return nil
}
