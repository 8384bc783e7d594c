package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/datafields/debug"
	"github.com/signadot/datafields/ir"
	"github.com/signadot/datafields/parse"

	"github.com/scott-cotton/cli"
)

// getObjFile parses the document at path, "-" meaning standard input.
func getObjFile(cfg *MainConfig, cc *cli.Context, path string) (*ir.Node, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	node, err := parse.ParseReader(r, cfg.parseOpts(path)...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	if debug.Parse() {
		debug.Logf("parsed %s:\n%v", path, node)
	}
	return node, nil
}
