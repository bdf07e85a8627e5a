// Package textio reads and writes the plain-text list and matrix files
// shared by the pipeline stages.
package textio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"ps-normals/internal/mathutil"
)

// ReadLines returns the trimmed, non-empty lines of a text file.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("textio: open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("textio: read %s: %w", path, err)
	}
	return lines, nil
}

// WriteLines writes one item per line, joined by '\n' with no trailing newline.
func WriteLines(path string, lines []string) error {
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("textio: write %s: %w", path, err)
	}
	return nil
}

// ReadMatrix parses a whitespace-delimited float matrix. Blank lines and
// '#' comments are skipped; every row must have the same column count.
func ReadMatrix(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("textio: open %s: %w", path, err)
	}
	defer f.Close()

	var rows [][]float64
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for i, s := range fields {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("textio: %s:%d: %w", path, lineNo, err)
			}
			row[i] = v
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("textio: %s:%d: got %d columns, want %d", path, lineNo, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("textio: read %s: %w", path, err)
	}
	return rows, nil
}

// ReadVec3s reads a 3-column matrix file as vectors. Rows are kept as
// stored; callers decide whether to normalize.
func ReadVec3s(path string) ([]mathutil.Vec3, error) {
	rows, err := ReadMatrix(path)
	if err != nil {
		return nil, err
	}
	out := make([]mathutil.Vec3, len(rows))
	for i, r := range rows {
		if len(r) != 3 {
			return nil, fmt.Errorf("textio: %s: got %d columns, want 3", path, len(r))
		}
		out[i] = mathutil.Vec3{r[0], r[1], r[2]}
	}
	return out, nil
}

// WriteVec3s writes vectors as a 3-column matrix file.
func WriteVec3s(path string, vs []mathutil.Vec3) error {
	var sb strings.Builder
	for _, v := range vs {
		fmt.Fprintf(&sb, "%.18e %.18e %.18e\n", v[0], v[1], v[2])
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("textio: write %s: %w", path, err)
	}
	return nil
}

// DumpJSON writes v as indented JSON.
func DumpJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("textio: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("textio: write %s: %w", path, err)
	}
	return nil
}

// LoadJSON decodes a JSON file into v.
func LoadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("textio: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("textio: parse %s: %w", path, err)
	}
	return nil
}

// MakeDirs creates path and any missing parents.
func MakeDirs(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("textio: mkdir %s: %w", path, err)
	}
	return nil
}
