// Command issueql is an interactive shell for the issue search query
// language. Each entered line is registered with a project, so variable
// definitions stay in effect for the rest of the session.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/peterh/liner"

	"github.com/gorkem/vscode-github-issue-notebooks/internal/version"
	"github.com/gorkem/vscode-github-issue-notebooks/parser"
	"github.com/gorkem/vscode-github-issue-notebooks/project"
)

const (
	historyFile = ".issueql_history"
	prompt      = "issueql> "
)

const helpText = `Commands:
  :tokens   Toggle the token dump for entered lines
  :vars     Show the resolved project variables
  :help     Show this help
  :quit     Exit (Ctrl+D works too)

Anything else is parsed as a query line.`

type session struct {
	proj       *project.Project
	showTokens bool
	out        io.Writer
}

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	s := &session{
		proj: project.NewWithConfig(project.Config{Logger: logger}),
		out:  os.Stdout,
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyPath = filepath.Join(home, historyFile)
		if f, err := os.Open(historyPath); err == nil {
			if _, err := line.ReadHistory(f); err != nil {
				logger.Debug("failed to read history", "error", err)
			}
			f.Close()
		}
	}

	fmt.Fprintf(s.out, "issueql %s\nType :help for commands, Ctrl+D to exit.\n", version.Version)

	for {
		input, err := line.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if input == ":quit" {
			break
		}
		s.handle(input)
	}

	if historyPath != "" {
		if f, err := os.Create(historyPath); err == nil {
			if _, err := line.WriteHistory(f); err != nil {
				logger.Debug("failed to write history", "error", err)
			}
			f.Close()
		}
	}
}

func (s *session) handle(input string) {
	switch input {
	case ":help":
		fmt.Fprintln(s.out, helpText)
	case ":tokens":
		s.showTokens = !s.showTokens
		fmt.Fprintf(s.out, "token dump %s\n", onOff(s.showTokens))
	case ":vars":
		lines := formatVars(s.proj.Variables())
		if len(lines) == 0 {
			fmt.Fprintln(s.out, "no variables defined")
			return
		}
		for _, line := range lines {
			fmt.Fprintln(s.out, line)
		}
	default:
		s.eval(input)
	}
}

func (s *session) eval(input string) {
	if s.showTokens {
		s.dumpTokens(input)
	}

	doc, err := s.proj.Put(context.Background(), "", input)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}

	queries, err := s.proj.Queries(doc.Key)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	for _, q := range queries {
		fmt.Fprintf(s.out, "=> %s\n", q)
	}

	diags, err := s.proj.Diagnostics(doc.Key)
	if err != nil {
		return
	}
	for _, d := range diags {
		fmt.Fprintf(s.out, "   %s\n", input)
		fmt.Fprintf(s.out, "   %s\n", caretLine(input, d))
	}
}

func (s *session) dumpTokens(input string) {
	scanner := parser.NewScanner(input)
	for {
		tok := scanner.Next()
		if tok.Type == parser.TokenEOF {
			return
		}
		fmt.Fprintf(s.out, "  %-16s [%d,%d) %q\n", tok.Type, tok.Start, tok.End, scanner.Value(tok))
	}
}

// formatVars renders the variable table as "name = value" lines, sorted
// by name so the output is stable.
func formatVars(values map[string]string) []string {
	lines := make([]string, 0, len(values))
	for _, name := range slices.Sorted(maps.Keys(values)) {
		lines = append(lines, fmt.Sprintf("%s = %s", name, values[name]))
	}
	return lines
}

// caretLine marks the span of d under input. Indentation and caret width
// follow the terminal display width of the text, not its byte length, so
// markers line up under multibyte input.
func caretLine(input string, d parser.Diagnostic) string {
	start := min(d.Start, len(input))
	end := min(d.End, len(input))
	indent := runewidth.StringWidth(input[:start])
	width := runewidth.StringWidth(input[start:end])
	if width < 1 {
		width = 1
	}
	return strings.Repeat(" ", indent) + strings.Repeat("^", width) + " " + d.Message
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
