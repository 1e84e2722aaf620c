// Package cli implements the equa command: running .eq files, an
// interactive REPL, the AST dump, and session history.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/equalang/equa/internal/ast"
	"github.com/equalang/equa/internal/config"
	"github.com/equalang/equa/internal/evaluator"
	"github.com/equalang/equa/internal/history"
	historysqlite "github.com/equalang/equa/internal/history/sqlite"
	"github.com/equalang/equa/internal/lexer"
	"github.com/equalang/equa/internal/parser"
	"github.com/equalang/equa/internal/pipeline"
	"github.com/equalang/equa/internal/prettyprinter"
	"github.com/equalang/equa/internal/solver"
)

const usage = `usage: equa [options] [file.eq]

With no file, reads statements from stdin (interactively on a terminal).

options:
  -config <path>     configuration file (default equa.yaml)
  -dump-ast <path>   append the parsed form of each statement to a file
  -no-history        do not record session history
`

type options struct {
	configPath  string
	dumpASTPath string
	noHistory   bool
	filePath    string
	help        bool
}

// Run is the command entry point. It returns the process exit code.
func Run(args []string, out, errOut io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(errOut, err)
		fmt.Fprint(errOut, usage)
		return 2
	}
	if opts.help {
		fmt.Fprint(out, usage)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	session := &session{
		out:      out,
		errOut:   errOut,
		cfg:      cfg,
		bindings: evaluator.NewBindings(),
		solver:   solver.New(cfg.Solver),
		printer:  prettyprinter.New(),
	}

	if !opts.noHistory && !cfg.History.Disabled {
		if err := session.openHistory(cfg.History.Path); err != nil {
			// History is a convenience; a broken store must not block
			// evaluation.
			fmt.Fprintf(errOut, "history disabled: %v\n", err)
		}
		defer session.closeHistory()
	}

	if opts.dumpASTPath != "" {
		dump, err := os.OpenFile(opts.dumpASTPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		defer dump.Close()
		session.dumpAST = dump
	}

	if opts.filePath != "" {
		source, err := os.ReadFile(opts.filePath)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		if session.executeSource(opts.filePath, string(source)) {
			return 1
		}
		return 0
	}

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		session.repl(os.Stdin)
		return 0
	}

	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if session.executeSource("<stdin>", string(source)) {
		return 1
	}
	return 0
}

func parseArgs(args []string) (options, error) {
	opts := options{configPath: config.ConfigFileName}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-config", "--config":
			i++
			if i >= len(args) {
				return opts, fmt.Errorf("%s requires a path", arg)
			}
			opts.configPath = args[i]
		case "-dump-ast", "--dump-ast":
			i++
			if i >= len(args) {
				return opts, fmt.Errorf("%s requires a path", arg)
			}
			opts.dumpASTPath = args[i]
		case "-no-history", "--no-history":
			opts.noHistory = true
		case "-h", "-help", "--help":
			opts.help = true
			return opts, nil
		default:
			if strings.HasPrefix(arg, "-") {
				return opts, fmt.Errorf("unknown option %s", arg)
			}
			if opts.filePath != "" {
				return opts, fmt.Errorf("only one source file may be given")
			}
			if !isSourceFile(arg) {
				return opts, fmt.Errorf("%s: not a recognized source file (want %s)", arg, config.SourceFileExt)
			}
			opts.filePath = arg
		}
	}
	return opts, nil
}

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

type session struct {
	out    io.Writer
	errOut io.Writer
	cfg    *config.Config

	bindings evaluator.Bindings
	solver   *solver.Solver
	printer  *prettyprinter.CodePrinter

	dumpAST io.Writer

	store     history.Store
	sessionID string
}

func (s *session) openHistory(path string) error {
	store, err := historysqlite.New(path)
	if err != nil {
		return err
	}
	sess, err := store.StartSession(context.Background())
	if err != nil {
		store.Close()
		return err
	}
	s.store = store
	s.sessionID = sess.ID
	return nil
}

func (s *session) closeHistory() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *session) record(input, outcome string, isErr bool) {
	if s.store == nil {
		return
	}
	err := s.store.Record(context.Background(), &history.Entry{
		SessionID: s.sessionID,
		Input:     input,
		Outcome:   outcome,
		IsError:   isErr,
	})
	if err != nil {
		fmt.Fprintf(s.errOut, "history: %v\n", err)
	}
}

// executeSource runs a whole compilation unit. Returns true if any
// diagnostic or runtime error occurred.
func (s *session) executeSource(filePath, source string) bool {
	program, errs := s.parse(filePath, source)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(s.errOut, err)
		}
		return true
	}

	failed := false
	for _, stmt := range program.Statements {
		if !s.executeStatement(stmt) {
			failed = true
		}
	}
	return failed
}

func (s *session) parse(filePath, source string) (*ast.Program, []error) {
	ctx := &pipeline.PipelineContext{FilePath: filePath, SourceCode: source}
	ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)

	if len(ctx.Errors) > 0 {
		errs := make([]error, 0, len(ctx.Errors))
		for _, diag := range ctx.Errors {
			errs = append(errs, diag)
		}
		return nil, errs
	}

	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		return nil, []error{fmt.Errorf("%s: no program produced", filePath)}
	}
	return program, nil
}

// executeStatement runs one statement, prints its outcome and records
// it in the history. Returns false on a runtime error.
func (s *session) executeStatement(stmt ast.Statement) bool {
	input := s.printer.PrintStatement(stmt)
	s.writeDump(input)

	outcome, err := s.runStatement(stmt)
	if err != nil {
		fmt.Fprintln(s.errOut, err)
		s.record(input, err.Error(), true)
		return false
	}

	fmt.Fprintln(s.out, outcome)
	s.record(input, outcome, false)
	return true
}

func (s *session) runStatement(stmt ast.Statement) (string, error) {
	switch node := stmt.(type) {
	case *ast.AssignmentStatement:
		value, err := evaluator.Assign(node, s.bindings)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = %s", node.Name.Value, formatNumber(value)), nil

	case *ast.ExpressionStatement:
		if eq, ok := node.Expression.(*ast.Equation); ok {
			solutions, err := s.solver.Solve(eq, s.bindings)
			if err != nil {
				return "", err
			}
			parts := make([]string, 0, len(solutions))
			for _, sol := range solutions {
				parts = append(parts, fmt.Sprintf("%s = %s", sol.Name, formatNumber(sol.Value)))
			}
			return strings.Join(parts, "\n"), nil
		}

		value, err := evaluator.Eval(node.Expression, s.bindings)
		if err != nil {
			return "", err
		}
		return formatNumber(value), nil

	default:
		return "", fmt.Errorf("unsupported statement %T", stmt)
	}
}

func (s *session) writeDump(printed string) {
	if s.dumpAST == nil {
		return
	}
	fmt.Fprintln(s.dumpAST, printed)
	fmt.Fprintln(s.dumpAST, "------------------------")
}

func (s *session) repl(in io.Reader) {
	fmt.Fprintln(s.out, "equa - algebraic equation interpreter (type 'exit' to quit)")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, ">> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "exit" || line == "exit;":
			return
		case line == ":history":
			s.printHistory()
			continue
		}

		program, errs := s.parse("<repl>", line)
		if len(errs) > 0 {
			for _, err := range errs {
				fmt.Fprintln(s.errOut, err)
			}
			s.record(line, errs[0].Error(), true)
			continue
		}
		for _, stmt := range program.Statements {
			s.executeStatement(stmt)
		}
	}
}

func (s *session) printHistory() {
	if s.store == nil {
		fmt.Fprintln(s.out, "history is disabled")
		return
	}
	entries, err := s.store.Recent(context.Background(), s.sessionID, 50)
	if err != nil {
		fmt.Fprintf(s.errOut, "history: %v\n", err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "history is empty")
		return
	}
	for _, entry := range entries {
		marker := "="
		if entry.IsError {
			marker = "!"
		}
		fmt.Fprintf(s.out, "%s  %s  %s\n", entry.Input, marker, strings.ReplaceAll(entry.Outcome, "\n", "; "))
	}
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
