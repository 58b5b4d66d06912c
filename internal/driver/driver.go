// Package driver wires the scanner, parser, resolver and evaluator into
// the single pipeline the CLI (and tests) run a program through: scan,
// parse, resolve, evaluate, stopping at the first diagnostic any stage
// raises.
package driver

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cwbudde/pseudo9608/internal/builtins"
	"github.com/cwbudde/pseudo9608/internal/errors"
	"github.com/cwbudde/pseudo9608/internal/evaluator"
	"github.com/cwbudde/pseudo9608/internal/lexer"
	"github.com/cwbudde/pseudo9608/internal/parser"
	"github.com/cwbudde/pseudo9608/internal/resolver"
	"github.com/cwbudde/pseudo9608/internal/runtime"
)

// Exit codes per the CLI's external contract.
const (
	ExitOK      = 0
	ExitStatic  = 65 // ParseError or LogicError
	ExitRuntime = 70 // RuntimeError
)

// Result is what Run returns: the root frame once the program finished
// (useful for tests and for the printer), the captured output (always
// captured, whether or not the caller supplied its own WriteLine), the
// process exit code, and the formatted diagnostic, if any.
type Result struct {
	Frame      *runtime.Frame
	Output     string
	ExitCode   int
	Diagnostic string
}

// Options configures a Run: injectable I/O, defaulting to stdin/stdout
// and the OS filesystem when left nil, matching the source's "external
// collaborators" boundary.
type Options struct {
	ReadLine  func() (string, error)
	WriteLine func(string) error
	Files     evaluator.FileOpener
}

// osFiles opens real files on disk for OPENFILE.
type osFiles struct{}

func (osFiles) OpenRead(name string) (io.ReadCloser, error) { return os.Open(name) }

func (osFiles) OpenWrite(name string, truncate bool) (io.WriteCloser, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if truncate {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	return os.OpenFile(name, flags, 0o644)
}

func defaultReadLine() (string, error) {
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}

// Run executes source through the full pipeline. Captured output is
// always returned in Result.Output in addition to whatever a caller's
// own WriteLine did with it.
func Run(source string, opts Options) Result {
	if opts.Files == nil {
		opts.Files = osFiles{}
	}
	var captured strings.Builder
	writeLine := opts.WriteLine
	if writeLine == nil {
		writeLine = func(s string) error {
			_, err := fmt.Fprintln(os.Stdout, s)
			return err
		}
	}
	tee := func(s string) error {
		captured.WriteString(s)
		captured.WriteString("\n")
		return writeLine(s)
	}
	readLine := opts.ReadLine
	if readLine == nil {
		readLine = defaultReadLine
	}

	l := lexer.New(source)
	tokens, lexErrs := l.ScanAll()
	if len(lexErrs) > 0 {
		diag := errors.FormatAll(errors.KindParse, lexErrs, source)
		return Result{ExitCode: ExitStatic, Diagnostic: diag}
	}

	p := parser.New(tokens)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		diag := errors.FormatAll(errors.KindParse, errs, source)
		return Result{ExitCode: ExitStatic, Diagnostic: diag}
	}

	r := resolver.New()
	builtins.Register(r)
	program = r.Resolve(program)
	if errs := r.Errors(); len(errs) > 0 {
		diag := errors.FormatAll(errors.KindLogic, errs, source)
		return Result{ExitCode: ExitStatic, Diagnostic: diag}
	}

	ev := evaluator.New(readLine, tee, opts.Files)
	if err := ev.Eval(program, r.Global); err != nil {
		diag := errors.FromError(errors.KindRuntime, err, "").Format()
		return Result{Frame: r.Global, Output: captured.String(), ExitCode: ExitRuntime, Diagnostic: diag}
	}

	return Result{Frame: r.Global, Output: captured.String(), ExitCode: ExitOK}
}

// RunFile reads path and runs it, defaulting to "main.pseudo" when path
// is empty.
func RunFile(path string, opts Options) (Result, error) {
	if path == "" {
		path = "main.pseudo"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	return Run(string(data), opts), nil
}
