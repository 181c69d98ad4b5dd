package torrents

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIndices parses a sub-resource selector into a sorted, distinct
// index list. Selectors are comma-separated single indices and
// inclusive ranges: "3", "0-2", "0,2-4".
func ParseIndices(expr string, max int) ([]int, error) {
	if expr == "" {
		return nil, fmt.Errorf("empty indices expression")
	}
	seen := make(map[int]bool)
	for _, part := range strings.Split(expr, ",") {
		lo, hi, err := parseRange(part)
		if err != nil {
			return nil, err
		}
		for i := lo; i <= hi; i++ {
			if i < 0 || i >= max {
				return nil, fmt.Errorf("index %d out of range [0,%d)", i, max)
			}
			seen[i] = true
		}
	}
	out := make([]int, 0, len(seen))
	for i := 0; i < max; i++ {
		if seen[i] {
			out = append(out, i)
		}
	}
	return out, nil
}

func parseRange(part string) (int, int, error) {
	if lo, hi, ok := strings.Cut(part, "-"); ok {
		start, err := strconv.Atoi(lo)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid range start %q", lo)
		}
		end, err := strconv.Atoi(hi)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid range end %q", hi)
		}
		if end < start {
			return 0, 0, fmt.Errorf("inverted range %q", part)
		}
		return start, end, nil
	}
	n, err := strconv.Atoi(part)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid index %q", part)
	}
	return n, n, nil
}
