package doc

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/graphdoc/pkg/errors"
)

// AlphaPrefix is the naming convention for alpha companion columns: a column
// "alpha:fillcolor" carries per-element opacity for the "fillcolor" column.
const AlphaPrefix = "alpha:"

// colorFamily lists the attribute columns an alpha companion may target.
var colorFamily = []string{"color", "fillcolor", "fontcolor"}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ApplyColorAlpha returns a document with alpha companion columns folded into
// their target color columns. The node and edge tables are transformed
// independently; a table without a companion column is left as-is.
//
// Per element, a named color found in the color table becomes its hex value
// followed by a two-digit alpha suffix, and a "#RRGGBB" value gets the suffix
// appended directly. Alpha is an integer percentage: 0 yields suffix "00"
// (fully transparent) and 100 yields no suffix at all, matching unsuffixed hex
// semantics. Values in neither recognized format pass through unmodified.
// The companion column is dropped from the result.
//
// Fails with a CONFIG_ERROR when a table carries more than one companion
// column, when a companion coexists with more than one color-family column
// (ambiguous target), when the companion's target column is absent, or when
// an alpha cell is not an integer in [0, 100].
func (d *Document) ApplyColorAlpha() (*Document, error) {
	out := d.clone()

	cols, err := foldAlpha(out.nodeCols, func(fn func(attrs map[string]string) error) error {
		for i := range out.nodes {
			if err := fn(out.nodes[i].Attrs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return d, err
	}
	out.nodeCols = cols

	cols, err = foldAlpha(out.edgeCols, func(fn func(attrs map[string]string) error) error {
		for i := range out.edges {
			if err := fn(out.edges[i].Attrs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return d, err
	}
	out.edgeCols = cols

	return out, nil
}

// foldAlpha resolves the alpha companion for one table. each runs a cell
// transform over every row of the table. It returns the column list with the
// companion removed, or the original list when no companion exists.
//
// Every alpha-prefixed column is accounted for: more than one companion is
// ambiguous and a companion without its target column is a dangling
// directive, both CONFIG_ERRORs.
func foldAlpha(cols []string, each func(func(attrs map[string]string) error) error) ([]string, error) {
	var companions []string
	for _, c := range cols {
		if strings.HasPrefix(c, AlphaPrefix) {
			companions = append(companions, c)
		}
	}
	if len(companions) == 0 {
		return cols, nil
	}
	if len(companions) > 1 {
		return cols, errors.New(errors.ErrCodeConfig,
			"multiple alpha companion columns (%s)", strings.Join(companions, ", "))
	}
	companion := companions[0]

	var present []string
	for _, c := range cols {
		for _, f := range colorFamily {
			if c == f {
				present = append(present, c)
			}
		}
	}
	if len(present) > 1 {
		return cols, errors.New(errors.ErrCodeConfig,
			"ambiguous alpha target: %d color columns present (%s)", len(present), strings.Join(present, ", "))
	}

	target := strings.TrimPrefix(companion, AlphaPrefix)
	if len(present) == 0 || present[0] != target {
		return cols, errors.New(errors.ErrCodeConfig, "alpha companion %q has no matching %q column", companion, target)
	}

	err := each(func(attrs map[string]string) error {
		color := attrs[target]
		raw := attrs[companion]
		delete(attrs, companion)
		if color == "" || raw == "" {
			return nil
		}

		alpha, err := strconv.Atoi(raw)
		if err != nil || alpha < 0 || alpha > 100 {
			return errors.New(errors.ErrCodeConfig, "alpha value %q is not an integer in [0, 100]", raw)
		}

		hex, named := ColorHex(color)
		switch {
		case named && alpha == 100:
			attrs[target] = hex
		case named:
			attrs[target] = hex + alphaSuffix(alpha)
		case hexColorRe.MatchString(color) && alpha < 100:
			attrs[target] = color + alphaSuffix(alpha)
		}
		return nil
	})
	if err != nil {
		return cols, err
	}

	out := make([]string, 0, len(cols)-1)
	for _, c := range cols {
		if c != companion {
			out = append(out, c)
		}
	}
	return out, nil
}

// alphaSuffix converts an alpha percentage to the two-digit hex channel value.
func alphaSuffix(alpha int) string {
	return fmt.Sprintf("%02X", int(math.Round(float64(alpha)*255.0/100.0)))
}
