package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/onehot/codec"
	"github.com/wippyai/onehot/errors"
	"github.com/wippyai/onehot/schema"
	"github.com/wippyai/onehot/witschema"
)

func main() {
	var (
		witFile     = flag.String("wit", "", "Path to WIT JSON (wasm-tools component wit --json)")
		typeName    = flag.String("type", "", "Type to inspect")
		value       = flag.String("value", "", "JSON value to encode")
		params      = flag.String("params", "", "Parameter vector to score -value against (comma-separated)")
		list        = flag.Bool("list", false, "List encodable types and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log compilation details")
	)
	flag.Parse()

	if *witFile == "" || (*typeName == "" && !*list && !*interactive) {
		fmt.Fprintln(os.Stderr, "Usage: onehot -wit <types.json> -type <name> [-value JSON] [-params p0,p1,...]")
		fmt.Fprintln(os.Stderr, "       onehot -wit <types.json> -list")
		fmt.Fprintln(os.Stderr, "       onehot -wit <types.json> -i  (interactive mode)")
		os.Exit(1)
	}

	log := zap.NewNop()
	if *verbose {
		dev, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log = dev
	}
	defer func() { _ = log.Sync() }()

	reg, err := loadRegistry(*witFile, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", errors.Unsupported(errors.PhaseParse, "interactive mode needs a terminal"))
			os.Exit(1)
		}
		if err := runInteractive(*witFile, reg, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *list {
		for _, name := range reg.Names() {
			fmt.Println(name)
		}
		return
	}

	s, err := reg.Lookup(*typeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	req := request{name: *typeName, value: *value, params: *params}
	compiler := codec.NewCompilerWithConfig(&codec.Config{Logger: log})
	if err := inspect(os.Stdout, compiler, s, req, term.IsTerminal(int(os.Stdout.Fd()))); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadRegistry(path string, log *zap.Logger) (*witschema.Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindNotFound, err, "open WIT file")
	}
	defer f.Close()
	return witschema.LoadJSON(f, log)
}

type request struct {
	name   string
	value  string
	params string
}

// report is the outcome of one inspection.
type report struct {
	slots      []codec.Slot
	vec        []float64
	likelihood float64
	scored     bool
}

func evaluate(compiler *codec.Compiler, s schema.Type, req request) (*report, error) {
	slots, err := compiler.Slots(s, req.name)
	if err != nil {
		return nil, err
	}
	r := &report{slots: slots}
	if req.value == "" {
		if req.params != "" {
			return nil, errors.InvalidInput(errors.PhaseParse, "-params needs a -value to score")
		}
		return r, nil
	}

	ct, err := compiler.CompileDynamic(s)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal([]byte(req.value), &v); err != nil {
		return nil, errors.ParseFailed("value", err)
	}
	if err := codec.Check(ct, v); err != nil {
		return nil, err
	}
	r.vec = codec.Encode(ct, v)

	if req.params != "" {
		source, err := parseParams(req.params, ct.Size)
		if err != nil {
			return nil, err
		}
		r.likelihood = codec.Likelihood(ct, v, source)
		r.scored = true
	}
	return r, nil
}

func inspect(w io.Writer, compiler *codec.Compiler, s schema.Type, req request, styled bool) error {
	r, err := evaluate(compiler, s, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Type: %s\n", req.name)
	fmt.Fprintf(w, "Schema: %s\n", describe(s))
	fmt.Fprintf(w, "Size: %d\n\n", len(r.slots))
	fmt.Fprintln(w, renderSlots(r.slots, r.vec, styled))
	if r.scored {
		fmt.Fprintf(w, "\nLikelihood: %g\n", r.likelihood)
	}
	return nil
}

// parseParams reads a comma-separated vector of exactly n values.
func parseParams(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, errors.LengthMismatch(errors.PhaseParse, []string{"params"}, n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.InvalidData(errors.PhaseParse, []string{"params", "[" + strconv.Itoa(i) + "]"}, err.Error())
		}
		out[i] = v
	}
	return out, nil
}

// describe expands the top level of a named schema so its shape is visible.
func describe(s schema.Type) string {
	switch t := s.(type) {
	case *schema.Ref:
		return t.Name + " = " + describe(t.Elem)
	case *schema.Struct:
		if t.Name != "" {
			return (&schema.Struct{Fields: t.Fields}).String()
		}
	case *schema.Union:
		if t.Name != "" {
			return (&schema.Union{Variants: t.Variants}).String()
		}
	}
	return s.String()
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	hotStyle    = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#98FB98")).Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
)

// renderSlots draws the slot table. vec may be nil when no value was given.
func renderSlots(slots []codec.Slot, vec []float64, styled bool) string {
	headers := []string{"OFFSET", "PATH", "ROLE"}
	if vec != nil {
		headers = append(headers, "VALUE")
	}
	rows := make([][]string, len(slots))
	for i, s := range slots {
		row := []string{strconv.Itoa(s.Offset), s.Path, string(s.Role)}
		if vec != nil {
			row = append(row, strconv.FormatFloat(vec[s.Offset], 'g', -1, 64))
		}
		rows[i] = row
	}

	t := table.New().Headers(headers...).Rows(rows...)
	if !styled {
		return t.Border(lipgloss.ASCIIBorder()).String()
	}
	return t.
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if vec != nil && row >= 0 && row < len(slots) && vec[slots[row].Offset] != 0 {
				return hotStyle
			}
			return cellStyle
		}).
		String()
}
