package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aritexpr/ringexpr/internal/token"
	"github.com/jessevdk/go-flags"
	"github.com/samber/lo"
)

type Option struct {
	Args struct {
		Expression string `positional-arg-name:"EXPRESSION" required:"yes"`
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

	source := opt.Args.Expression
	tokens, err := token.Tokenize(source)
	if err != nil {
		var lexErr *token.Error
		if errors.As(err, &lexErr) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", lexErr.Message, source)
			fmt.Fprintf(os.Stderr, "%*s\n", len(lexErr.Message)+lexErr.Position+3, "^")
		} else {
			log.Printf("failed to tokenize expression: %v", err)
		}
		return 1
	}

	rendered := lo.Map(tokens, func(t token.Positioned, _ int) string {
		return t.Token.String()
	})
	fmt.Printf("Tokens: %s\n", strings.Join(rendered, " "))
	return 0
}
