// Command dynexpr-demo builds a fixed expression tree over a built-in
// registry, evaluates it against a dataset (read from a YAML file of
// feature names and rows, or a built-in default), and prints the result
// alongside its rendered form and structural hash. It exists to
// exercise the public surface end to end, the way the teacher's own
// cmd/graft does for its merge engine, not as a production tool.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/gonvenience/neat"
	"github.com/mattn/go-isatty"
	"github.com/starkandwayne/goutils/ansi"
	"github.com/voxelbrain/goptions"
	"gopkg.in/yaml.v3"

	"github.com/wayneeseguin/dynexpr/pkg/dynexpr"
)

var getopts = func(o interface{}) {
	if err := goptions.Parse(o); err != nil {
		goptions.PrintHelp()
		os.Exit(1)
	}
}

// datasetConfig is the YAML shape for a demo dataset: one row per
// feature, in order, matching the tree's 1-based feature indices.
type datasetConfig struct {
	Features []string    `yaml:"features"`
	Rows     [][]float64 `yaml:"rows"`
}

func main() {
	var options struct {
		Color   string `goptions:"--color, description='Control color output (on/off/auto, default: auto)'"`
		Dataset string `goptions:"-f, --dataset, description='YAML file describing feature names and sample rows'"`
		Help    bool   `goptions:"--help, -h"`
	}
	getopts(&options)

	colorize := options.Color == "on" || (options.Color != "off" && isatty.IsTerminal(os.Stdout.Fd()))
	ansi.Color(colorize)

	var cfg datasetConfig
	if options.Dataset != "" {
		raw, err := os.ReadFile(options.Dataset)
		if err != nil {
			fmt.Fprintln(os.Stderr, ansi.Sprintf("@R{error:} %s", err))
			os.Exit(1)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			fmt.Fprintln(os.Stderr, ansi.Sprintf("@R{error:} %s", err))
			os.Exit(1)
		}
	} else {
		cfg = datasetConfig{
			Features: []string{"x1", "x2"},
			Rows:     [][]float64{{1.0, 2.0, 0.5}, {0.0, math.Pi, 3.2}},
		}
	}

	reg := dynexpr.NewRegistry[float64](
		[]dynexpr.Operator[float64]{{Name: "cos", Unary: math.Cos}},
		[]dynexpr.Operator[float64]{
			{Name: "+", Precedence: dynexpr.PrecedenceAdditive, Binary: func(a, b float64) float64 { return a + b }},
			{Name: "-", Precedence: dynexpr.PrecedenceAdditive, Binary: func(a, b float64) float64 { return a - b }},
			{Name: "*", Precedence: dynexpr.PrecedenceMultiplicative, Binary: func(a, b float64) float64 { return a * b }},
		},
		false,
	)

	// x1 * cos(x2 - 3.2)
	tree := dynexpr.ApplyBinary(3,
		dynexpr.MustLeafVar[float64](1),
		dynexpr.ApplyUnary(1, dynexpr.ApplyBinary(2, dynexpr.MustLeafVar[float64](2), dynexpr.LeafConst(3.2))),
	)

	if err := dynexpr.Validate(tree, reg); err != nil {
		fmt.Fprintln(os.Stderr, ansi.Sprintf("@R{validation error:} %s", err))
		os.Exit(1)
	}

	x := dynexpr.NewMatrixFromRows(cfg.Rows)
	out, complete := dynexpr.Evaluate(tree, x, reg)

	fmt.Println(ansi.Sprintf("@G{expression:} %s", dynexpr.Render(tree, reg, cfg.Features)))
	fmt.Println(ansi.Sprintf("@G{hash:}       %d", dynexpr.Hash(tree)))
	fmt.Println(ansi.Sprintf("@G{complete:}   %v", complete))

	summary := map[string]interface{}{
		"expression": dynexpr.Render(tree, reg, cfg.Features),
		"output":     out,
		"complete":   complete,
	}
	printSummary(summary, colorize)
}

// printSummary pretty-prints summary the way the teacher's CLI pretty-
// prints diff/merge results, via gonvenience/neat's YAML output
// processor, falling back to plain YAML if neat can't process the
// value (for example, an unsupported type making it into summary).
func printSummary(summary map[string]interface{}, colorize bool) {
	p := neat.NewOutputProcessor(colorize, true, nil)
	out, err := p.ToYAML(summary)
	if err != nil {
		raw, _ := yaml.Marshal(summary)
		fmt.Print(string(raw))
		return
	}
	fmt.Print(out)
}
