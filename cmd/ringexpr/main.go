package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/aritexpr/ringexpr/internal/expression"
	"github.com/aritexpr/ringexpr/internal/ring"
	"github.com/aritexpr/ringexpr/internal/server"
	"github.com/aritexpr/ringexpr/internal/suite"
	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"
)

type Option struct {
	File   string `short:"f" long:"file" description:"[OPTIONAL] Expression suite file (JSON or YAML)" required:"false"`
	Listen string `short:"l" long:"listen" description:"[OPTIONAL] Listen host and port for the evaluation API" required:"false"`
	JSON   bool   `long:"json" description:"[OPTIONAL] Print results as JSON" required:"false"`

	Args struct {
		Expression string `positional-arg-name:"EXPRESSION"`
	} `positional-args:"yes"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	_, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		} else {
			parser.WriteHelp(os.Stdout)
			return 1
		}
	}

	if opt.Listen != "" {
		if err := serve(opt.Listen); err != nil {
			log.Printf("failed to serve evaluation API: %v", err)
			return 1
		}
		return 0
	}

	if opt.File != "" {
		return runSuite(opt.File, opt.JSON)
	}

	if opt.Args.Expression == "" {
		parser.WriteHelp(os.Stdout)
		return 1
	}
	return evaluate(opt.Args.Expression, opt.JSON)
}

func evaluate(source string, asJSON bool) int {
	expr, err := expression.ParseInt(source)
	if err != nil {
		var parseErr *expression.ParseError
		if errors.As(err, &parseErr) {
			printCaretError(source, parseErr.Message, parseErr.Position)
		} else {
			log.Printf("failed to parse expression: %v", err)
		}
		return 1
	}

	value, err := expr.Evaluate(ring.Int)
	if err != nil {
		var evalErr *expression.EvalError
		if errors.As(err, &evalErr) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", evalErr.Message, source)
		} else {
			log.Printf("failed to evaluate expression: %v", err)
		}
		return 1
	}

	if asJSON {
		if err := dumpJSON(os.Stdout, map[string]any{"expression": source, "result": value.Int64()}); err != nil {
			log.Printf("failed to dump result: %v", err)
			return 1
		}
		return 0
	}

	fmt.Printf("Result: %s\n", value)
	return 0
}

func runSuite(filePath string, asJSON bool) int {
	s, err := loadSuite(filePath)
	if err != nil {
		log.Printf("failed to load suite: %v", err)
		return 1
	}

	results := s.Run()
	if asJSON {
		type resultJSON struct {
			Name   string `json:"name"`
			Source string `json:"source"`
			Result *int64 `json:"result,omitempty"`
			Error  string `json:"error,omitempty"`
		}
		out := make([]resultJSON, len(results))
		for i, r := range results {
			out[i] = resultJSON{Name: r.Name, Source: r.Source}
			if r.Err != nil {
				out[i].Error = r.Err.Error()
			} else {
				v := r.Value.Int64()
				out[i].Result = &v
			}
		}
		if err := dumpJSON(os.Stdout, out); err != nil {
			log.Printf("failed to dump results: %v", err)
			return 1
		}
	} else {
		for _, r := range results {
			if r.Err != nil {
				fmt.Printf("not ok %s: %v\n", r.Name, r.Err)
			} else {
				fmt.Printf("ok %s = %s\n", r.Name, r.Value)
			}
		}
	}

	if failed := suite.FailedNames(results); len(failed) != 0 {
		return 1
	}
	return 0
}

func loadSuite(filePath string) (*suite.Suite, error) {
	var parseSuite func(io.Reader) (*suite.Suite, error)
	switch filepath.Ext(filePath) {
	case ".json":
		parseSuite = suite.ParseSuiteJSON
	case ".yaml", ".yml":
		parseSuite = suite.ParseSuiteYAML
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%q): %w", filePath, err)
	}
	defer f.Close()

	s, err := parseSuite(f)
	if err != nil {
		return nil, fmt.Errorf("suite.ParseSuite: %w", err)
	}
	return s, nil
}

func serve(listen string) error {
	srv := http.Server{
		Handler: server.NewHTTPHandler(ring.Int),
		Addr:    listen,
	}

	log.Printf("Listen HTTP on %s", listen)
	if err := srv.ListenAndServe(); errors.Is(err, http.ErrServerClosed) {
		return nil
	} else if err != nil {
		return err
	}
	return nil
}

func printCaretError(source, message string, position int) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", message, source)
	fmt.Fprintf(os.Stderr, "%*s\n", len(message)+position+3, "^")
}

func dumpJSON(w io.Writer, v any) error {
	opts := []json.EncodeOptionFunc{json.DisableHTMLEscape()}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if isatty.IsTerminal(f.Fd()) {
			opts = append(opts, json.Colorize(json.DefaultColorScheme))
		}
	}

	b, err := json.MarshalIndentWithOption(v, "", "\t", opts...)
	if err != nil {
		return fmt.Errorf("json.MarshalIndentWithOption: %w", err)
	}

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
