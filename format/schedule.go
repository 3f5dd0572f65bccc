package format

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/field"
)

// schedule returns fields in processing order.
//
// The first pass sorts by position, keeping insertion order for equal positions. The
// second pass repeatedly emits the earliest field whose dependencies have all been
// emitted, so value fields keep position order and a parity field follows every field
// it reads, including other parity fields.
func schedule(fields []field.DataField) ([]field.DataField, error) {
	sorted := slices.Clone(fields)
	slices.SortStableFunc(sorted, func(a, b field.DataField) int {
		return cmp.Compare(a.Position(), b.Position())
	})

	deps := make([][]int, len(sorted))
	for i, f := range sorted {
		for j, other := range sorted {
			if i != j && f.CheckFieldDependency(other) {
				deps[i] = append(deps[i], j)
			}
		}
	}

	done := make([]bool, len(sorted))
	out := make([]field.DataField, 0, len(sorted))
	for len(out) < len(sorted) {
		next := -1
		for i := range sorted {
			if !done[i] && ready(deps[i], done) {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, cycleError(sorted, done)
		}
		done[next] = true
		out = append(out, sorted[next])
	}

	return out, nil
}

func ready(deps []int, done []bool) bool {
	for _, j := range deps {
		if !done[j] {
			return false
		}
	}

	return true
}

func cycleError(sorted []field.DataField, done []bool) error {
	names := make([]string, 0, len(sorted))
	for i, f := range sorted {
		if !done[i] {
			names = append(names, f.Name())
		}
	}

	return fmt.Errorf("%w: %s", errs.ErrFieldDependencyCycle, strings.Join(names, ", "))
}
