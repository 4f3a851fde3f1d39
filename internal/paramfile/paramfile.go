// Package paramfile reads simulation setups for the spksim command.
//
// Two formats are accepted. The line format holds one "key = value" pair per
// line, with '#' starting a comment:
//
//	enclosure = bass-reflex
//	Re = 5
//	Bl = 19.2
//	Vb = 0.030
//	fp = 28.5
//
// The YAML format groups the same keys in sections:
//
//	driver:    {Re: 5, Bl: 19.2, Sd: 0.088, Fs: 40, Qts: 0.31, Qes: 0.33}
//	enclosure: {type: bass-reflex, Vb: 0.030, fp: 28.5, port_diameter: 0.12}
//
// Keys are case-insensitive and may carry their section as a prefix
// ("driver.Re"). All values are SI units; leak resistances accept "inf".
package paramfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrSyntax matches every malformed parameter file.
var ErrSyntax = errors.New("paramfile: syntax error")

// Format selects the file syntax.
type Format int

const (
	// FormatAuto picks YAML for .yaml/.yml files and when the content
	// starts with a section header, the line format otherwise.
	FormatAuto Format = iota
	FormatKeyValue
	FormatYAML
)

// entry is one key/value pair with its source line.
type entry struct {
	key   string
	value string
	line  int
}

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("paramfile: %w", err)
	}
	format := FormatAuto
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	}
	f, err := Parse(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse reads a parameter file in the given format.
func Parse(r io.Reader, format Format) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("paramfile: %w", err)
	}
	if format == FormatAuto {
		format = sniff(data)
	}

	var entries []entry
	switch format {
	case FormatYAML:
		entries, err = readYAML(data)
	case FormatKeyValue:
		entries, err = readKeyValue(data)
	default:
		return nil, fmt.Errorf("paramfile: unknown format %d", int(format))
	}
	if err != nil {
		return nil, err
	}
	return build(entries)
}

// sniff reports YAML unless the first significant line is a key = value
// pair.
func sniff(data []byte) Format {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(stripComment(sc.Text()))
		if line == "" {
			continue
		}
		if line == "---" || !strings.Contains(line, "=") {
			return FormatYAML
		}
		return FormatKeyValue
	}
	return FormatKeyValue
}

func stripComment(s string) string {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i]
	}
	return s
}

func readKeyValue(data []byte) ([]entry, error) {
	var out []entry
	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(stripComment(sc.Text()))
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: expected key = value, got %q", ErrSyntax, n, line)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key == "" {
			return nil, fmt.Errorf("%w: line %d: empty key", ErrSyntax, n)
		}
		out = append(out, entry{key: key, value: strings.Trim(value, `"'`), line: n})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("paramfile: %w", err)
	}
	return out, nil
}

func readYAML(data []byte) ([]entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrSyntax)
	}
	var out []entry
	if err := flatten(doc.Content[0], "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// flatten turns nested mappings into dotted keys.
func flatten(m *yaml.Node, prefix string, out *[]entry) error {
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		key := k.Value
		if prefix != "" {
			key = prefix + "." + key
		}
		switch v.Kind {
		case yaml.MappingNode:
			if prefix != "" {
				return fmt.Errorf("%w: line %d: %q nests too deep", ErrSyntax, v.Line, key)
			}
			if err := flatten(v, key, out); err != nil {
				return err
			}
		case yaml.ScalarNode:
			*out = append(*out, entry{key: key, value: v.Value, line: v.Line})
		default:
			return fmt.Errorf("%w: line %d: %q must be a scalar", ErrSyntax, v.Line, key)
		}
	}
	return nil
}

func parseFloat(e entry) (float64, error) {
	switch strings.ToLower(e.value) {
	case "inf", "+inf", "infinity", ".inf":
		return math.Inf(1), nil
	}
	v, err := strconv.ParseFloat(e.value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %s: not a number: %q", ErrSyntax, e.line, e.key, e.value)
	}
	return v, nil
}

func parseInt(e entry) (int, error) {
	v, err := strconv.Atoi(e.value)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %s: not an integer: %q", ErrSyntax, e.line, e.key, e.value)
	}
	return v, nil
}

func parseBool(e entry) (bool, error) {
	switch strings.ToLower(e.value) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	v, err := strconv.ParseBool(e.value)
	if err != nil {
		return false, fmt.Errorf("%w: line %d: %s: not a boolean: %q", ErrSyntax, e.line, e.key, e.value)
	}
	return v, nil
}
