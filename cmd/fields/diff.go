package main

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/signadot/datafields/debug"
	"github.com/signadot/datafields/encode"
	"github.com/signadot/datafields/format"
	"github.com/signadot/datafields/ir"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getObjFile(cfg.MainConfig, cc, args[0])
	if err != nil {
		return err
	}
	b, err := getObjFile(cfg.MainConfig, cc, args[1])
	if err != nil {
		return err
	}
	differs, err := diffInputs(cfg, cc.Out, a, b)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// diffInputs writes a line diff of the JSON forms of a and b to w and
// reports whether they differ. Object entry order is not significant.
func diffInputs(cfg *DiffConfig, w io.Writer, a, b *ir.Node) (bool, error) {
	if ir.Equal(sortKeys(a.Clone()), sortKeys(b.Clone())) {
		return false, nil
	}
	if cfg.Quiet {
		return true, nil
	}
	from, err := canonical(a)
	if err != nil {
		return false, err
	}
	to, err := canonical(b)
	if err != nil {
		return false, err
	}
	if debug.Diff() {
		debug.Logf("diff from:\n%s\ndiff to:\n%s\n", from, to)
	}
	_, err = io.WriteString(w, lineDiff(from, to, cfg.colorFor(w)))
	return true, err
}

// canonical encodes y as pretty JSON with object keys sorted.
func canonical(y *ir.Node) (string, error) {
	var buf bytes.Buffer
	if err := encode.Encode(sortKeys(y.Clone()), &buf, encode.EncodeFormat(format.JSONFormat)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func sortKeys(y *ir.Node) *ir.Node {
	switch y.Type {
	case ir.ArrayType:
		for _, v := range y.Values {
			sortKeys(v)
		}
	case ir.ObjectType:
		kvs := make([]ir.KeyVal, len(y.Fields))
		for i, f := range y.Fields {
			kvs[i] = ir.KeyVal{Key: f, Val: sortKeys(y.Values[i])}
		}
		slices.SortFunc(kvs, func(a, b ir.KeyVal) int {
			return strings.Compare(a.Key.String, b.Key.String)
		})
		return ir.FromKeyValsAt(y, kvs)
	}
	return y
}

func lineDiff(from, to string, colored bool) string {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	del, ins := fmt.Sprint, fmt.Sprint
	if colored {
		del = color.New(color.FgRed).Sprint
		ins = color.New(color.FgGreen).Sprint
	}
	var sb strings.Builder
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			switch d.Type {
			case diffpatch.DiffDelete:
				sb.WriteString(del("-" + line))
			case diffpatch.DiffInsert:
				sb.WriteString(ins("+" + line))
			default:
				sb.WriteString(" " + line)
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
