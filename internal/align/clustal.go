package align

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// conservation lines under each Clustal block use only these characters
func isConservationLine(fields []string) bool {
	if len(fields) != 1 {
		return false
	}
	return strings.Trim(fields[0], "*:. ") == ""
}

// ReadClustal reads a Clustal-formatted alignment (the default clustalo
// output). Block structure and conservation lines are tolerated; row
// order follows first appearance.
func ReadClustal(r io.Reader) (Alignment, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return Alignment{}, fmt.Errorf("clustal: empty input")
	}
	first := strings.ToUpper(strings.TrimSpace(sc.Text()))
	if !strings.HasPrefix(first, "CLUSTAL") && !strings.HasPrefix(first, "MUSCLE") {
		return Alignment{}, fmt.Errorf("clustal: missing CLUSTAL header, got %q", sc.Text())
	}

	var (
		order []string
		rows  = map[string][]byte{}
	)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Conservation annotation lines are indented.
		if line[0] == ' ' || line[0] == '\t' {
			continue
		}
		fields := strings.Fields(line)
		if isConservationLine(fields) {
			continue
		}
		if len(fields) < 2 {
			return Alignment{}, fmt.Errorf("clustal: malformed line %q", line)
		}
		name := fields[0]
		if _, ok := rows[name]; !ok {
			order = append(order, name)
		}
		rows[name] = append(rows[name], []byte(fields[1])...)
	}
	if err := sc.Err(); err != nil {
		return Alignment{}, fmt.Errorf("clustal: %w", err)
	}

	var a Alignment
	for _, name := range order {
		a.Rows = append(a.Rows, rowRecord(name, rows[name]))
	}
	if err := a.validate(); err != nil {
		return Alignment{}, fmt.Errorf("clustal: %w", err)
	}
	return a, nil
}
