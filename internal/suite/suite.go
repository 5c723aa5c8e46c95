// Package suite loads batches of expressions from YAML or JSON files,
// evaluates them concurrently, and optionally checks expected results.
package suite

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/aritexpr/ringexpr/internal/expression"
	"github.com/aritexpr/ringexpr/internal/ring"
	"github.com/goccy/go-json"
	reflect "github.com/goccy/go-reflect"
	"github.com/goccy/go-yaml"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

type suiteDef struct {
	Name        string    `json:"name" mapstructure:"name"`
	Concurrency int       `json:"concurrency" mapstructure:"concurrency"`
	Expressions []caseDef `json:"expressions" mapstructure:"expressions"`
}

type caseDef struct {
	Name     string `json:"name" mapstructure:"name"`
	Source   string `json:"source" mapstructure:"source"`
	Expected any    `json:"expected" mapstructure:"expected"`
}

// Case is one compiled expression of a suite.
type Case struct {
	Name     string
	Expr     *expression.Expr[ring.IntElement]
	Expected *int64
}

type Suite struct {
	Name        string
	Concurrency int
	Cases       []Case
}

func ParseSuiteYAML(r io.Reader) (*Suite, error) {
	yamlBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	jsonBytes, err := yaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return nil, fmt.Errorf("yaml.YAMLToJSON: %w", err)
	}

	return parseSuiteJSONBytes(jsonBytes)
}

func ParseSuiteJSON(r io.Reader) (*Suite, error) {
	jsonBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	return parseSuiteJSONBytes(jsonBytes)
}

func parseSuiteJSONBytes(jsonBytes []byte) (*Suite, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonBytes))
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	var def suiteDef
	decoderConfig := &mapstructure.DecoderConfig{
		// numbers arrive as json.Number because of UseNumber
		WeaklyTypedInput: true,
		Result:           &def,
	}
	defDecoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return nil, fmt.Errorf("mapstructure.NewDecoder: %w", err)
	}
	if err := defDecoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("mapstructure.Decode: %w", err)
	}

	return def.compile()
}

func (def *suiteDef) compile() (*Suite, error) {
	s := &Suite{
		Name:        def.Name,
		Concurrency: def.Concurrency,
		Cases:       make([]Case, len(def.Expressions)),
	}

	for i, caseDef := range def.Expressions {
		expr, err := expression.ParseInt(caseDef.Source)
		if err != nil {
			return nil, fmt.Errorf("expressions[%d] %q: %w", i, caseDef.Source, err)
		}

		name := caseDef.Name
		if name == "" {
			name = caseDef.Source
		}

		c := Case{Name: name, Expr: expr}
		if caseDef.Expected != nil {
			expected, err := coerceInt64(caseDef.Expected)
			if err != nil {
				return nil, fmt.Errorf("expressions[%d] %q: invalid expected: %w", i, caseDef.Source, err)
			}
			c.Expected = &expected
		}

		s.Cases[i] = c
	}

	return s, nil
}

// Result is the outcome of one suite case. Err is set on evaluation
// failure or expectation mismatch.
type Result struct {
	Name   string
	Source string
	Value  ring.IntElement
	Err    error
}

// Run evaluates every case over the integer ring. Results keep the suite's
// case order regardless of evaluation order.
func (s *Suite) Run() []Result {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = len(s.Cases)
	}

	results := make([]Result, len(s.Cases))

	eg := errgroup.Group{}
	eg.SetLimit(concurrency)
	for i, c := range s.Cases {
		i := i
		c := c
		eg.Go(func() error {
			results[i] = c.run()
			return nil
		})
	}
	eg.Wait()

	return results
}

func (c Case) run() Result {
	result := Result{Name: c.Name, Source: c.Expr.Source}

	ev := expression.Evaluator[ring.IntElement]{Ring: ring.Int}
	value, err := ev.Evaluate(c.Expr)
	if err != nil {
		result.Err = err
		return result
	}

	result.Value = value
	if c.Expected != nil && value.Int64() != *c.Expected {
		result.Err = fmt.Errorf("expected %d but got %d", *c.Expected, value.Int64())
	}
	return result
}

// FailedNames returns the names of failed cases, sorted.
func FailedNames(results []Result) []string {
	names := lo.FilterMap(results, func(r Result, _ int) (string, bool) {
		return r.Name, r.Err != nil
	})
	sort.Strings(names)
	return names
}

// coerceInt64 normalizes a decoded scalar to int64. The JSON/YAML decoding
// pipeline can surface numbers as json.Number, integer, or float kinds.
func coerceInt64(v any) (int64, error) {
	if n, ok := v.(json.Number); ok {
		return strconv.ParseInt(n.String(), 10, 64)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > uint64(1)<<63-1 {
			return 0, fmt.Errorf("out of int64 range: %d", u)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != float64(int64(f)) {
			return 0, fmt.Errorf("not an integer: %v", f)
		}
		return int64(f), nil
	case reflect.String:
		return strconv.ParseInt(rv.String(), 10, 64)
	default:
		return 0, fmt.Errorf("unknown expected value type: %T", v)
	}
}
