package main

import (
	"fmt"
	"io"

	"github.com/signadot/datafields/encode"

	"github.com/scott-cotton/cli"
)

func conv(cfg *ConvConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Conv.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	if len(args) > 1 && !cfg.outFormat().IsText() {
		return fmt.Errorf("%w: cbor output takes a single document", cli.ErrUsage)
	}
	return convFiles(cfg, cc, cc.Out, args)
}

func convFiles(cfg *ConvConfig, cc *cli.Context, w io.Writer, files []string) error {
	opts := cfg.encOpts(w)
	for i, file := range files {
		node, err := getObjFile(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		theLog.Debug("converting", "file", file, "type", node.Type)
		if i > 0 && cfg.outFormat().IsYAML() {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}
		if err := encode.Encode(node, w, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
		if cfg.WireOut && cfg.outFormat().IsJSON() {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}
