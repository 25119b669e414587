package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kr/pretty"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/magical/msdscript/bytecode"
	"github.com/magical/msdscript/expr"
)

const prompt = "msd> "

const replHelp = `Enter an expression to evaluate it.
Commands:
  :def NAME = EXPR   evaluate EXPR and bind it to NAME for later lines
  :print EXPR        print EXPR fully parenthesized
  :pretty EXPR       print EXPR with minimal parentheses
  :check EXPR        typecheck EXPR
  :dump EXPR         print the syntax tree of EXPR
  :disasm EXPR       print the register program for EXPR
  :env               list the current bindings
  :help              show this message
  :quit              exit
`

// session is the state of an interactive session.
// Bindings from --define and :def are kept in env and in defs, newest last.
type session struct {
	out    io.Writer
	errOut io.Writer
	env    *expr.Env
	defs   []definition
}

func (t *tool) repl(c *cli.Context) error {
	defs, env, err := t.definitions(c)
	if err != nil {
		return err
	}
	s := &session{out: t.stdout, errOut: t.stderr, env: env, defs: defs}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	hist := historyFile()
	if hist != "" {
		if f, err := os.Open(hist); err == nil {
			if _, err := line.ReadHistory(f); err != nil {
				t.log.Warningf("reading history from %s: %v", hist, err)
			}
			f.Close()
		}
	}

	for {
		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err == io.EOF {
			fmt.Fprintln(t.stdout)
			break
		}
		if err != nil {
			return t.fail(exitUsage, errors.Wrap(err, "reading input"))
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)
		if s.handle(input) {
			break
		}
	}

	if hist != "" {
		f, err := os.Create(hist)
		if err != nil {
			t.log.Warningf("saving history: %v", err)
			return nil
		}
		defer f.Close()
		if _, err := line.WriteHistory(f); err != nil {
			t.log.Warningf("saving history to %s: %v", hist, err)
		}
	}
	return nil
}

func historyFile() string {
	if p := os.Getenv("MSDSCRIPT_HISTORY"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".msdscript_history")
}

// handle runs one line of input. It reports whether the session should end.
func (s *session) handle(input string) (quit bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, ":") {
		s.eval(input)
		return false
	}

	cmd, arg, _ := strings.Cut(input[1:], " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "q", "quit", "exit":
		return true
	case "h", "help":
		fmt.Fprint(s.out, replHelp)
	case "env":
		for _, d := range s.defs {
			fmt.Fprintf(s.out, "%s = %s\n", d.name, d.val)
		}
	case "def":
		s.define(arg)
	case "print", "pretty", "dump":
		e, ok := s.parse(arg)
		if !ok {
			break
		}
		switch cmd {
		case "print":
			fmt.Fprintln(s.out, expr.Print(e))
		case "pretty":
			fmt.Fprintln(s.out, expr.PrettyPrint(e))
		case "dump":
			pretty.Fprintf(s.out, "%# v\n", e)
		}
	case "check":
		e, ok := s.parse(arg)
		if !ok {
			break
		}
		typ, err := expr.Typecheck(closeOver(e, s.defs))
		if err != nil {
			s.error(err)
			break
		}
		fmt.Fprintln(s.out, typ)
	case "disasm":
		e, ok := s.parse(arg)
		if !ok {
			break
		}
		fmt.Fprint(s.out, bytecode.Compile(closeOver(e, s.defs)))
	default:
		s.error(fmt.Errorf("unknown command :%s; try :help", cmd))
	}
	return false
}

func (s *session) error(err error) {
	errColor.Fprintf(s.errOut, "%v\n", err)
}

func (s *session) parse(src string) (expr.Expr, bool) {
	e, err := expr.Parse(src)
	if err != nil {
		s.error(err)
		return nil, false
	}
	return e, true
}

func (s *session) eval(src string) {
	e, ok := s.parse(src)
	if !ok {
		return
	}
	v, err := expr.Eval(e, s.env)
	if err != nil {
		s.error(err)
		return
	}
	fmt.Fprintln(s.out, v)
}

// :def NAME = EXPR
func (s *session) define(arg string) {
	lhs, src, ok := strings.Cut(arg, "=")
	if !ok || strings.HasPrefix(src, "=") {
		s.error(fmt.Errorf("usage: :def NAME = EXPR"))
		return
	}
	name, ok := varName(lhs)
	if !ok {
		s.error(fmt.Errorf("%q is not a variable name", strings.TrimSpace(lhs)))
		return
	}
	e, ok := s.parse(src)
	if !ok {
		return
	}
	v, err := expr.Eval(e, s.env)
	if err != nil {
		s.error(err)
		return
	}
	s.env = s.env.Extend(name, v)
	s.defs = append(s.defs, definition{name, v})
	fmt.Fprintf(s.out, "%s = %s\n", name, v)
}
