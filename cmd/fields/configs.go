package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/signadot/datafields/encode"
	"github.com/signadot/datafields/format"
	"github.com/signadot/datafields/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Verbose bool `cli:"name=v desc='log debug output'"`
	Color   bool `cli:"name=color desc='encode with color'"`
	WireOut bool `cli:"name=wire desc='output in compact format'"`
	MaxSize int  `cli:"name=max desc='maximum input size in bytes, 0 for no limit'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) logLevel() slog.Level {
	if cfg.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// parseOpts returns the options for reading path. -I wins over the
// file suffix.
func (cfg *MainConfig) parseOpts(path string) []parse.ParseOption {
	fmat := format.JSONFormat
	if f, ok := format.FromPath(path); ok {
		fmat = f
	}
	if cfg.InFormat != nil {
		fmat = *cfg.InFormat
	}
	res := []parse.ParseOption{parse.ParseFormat(fmat)}
	if cfg.MaxSize > 0 {
		res = append(res, parse.ParseMaxSize(cfg.MaxSize))
	}
	return res
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return format.JSONFormat
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.colorFor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colorFor reports whether output to w is colored: -color decides when
// given, otherwise color is used on terminals.
func (cfg *MainConfig) colorFor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return false
			}
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type GenConfig struct {
	*MainConfig
	Dir       string `cli:"name=dir desc='directory to scan for Go files (default: current directory)'"`
	Recursive bool   `cli:"name=recursive desc='scan subdirectories recursively'"`
	Output    string `cli:"name=o desc='output file for generated Go code (default: <package>_fields.go)'"`
	DryRun    bool   `cli:"name=n desc='print generated code instead of writing it'"`

	Gen *cli.Command
}

type ConvConfig struct {
	*MainConfig

	Conv *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only report whether the documents differ'"`

	Diff *cli.Command
}
