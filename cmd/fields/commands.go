package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y, cbor/c (default from file suffix, else json)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y, cbor/c (default json)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "fields").
		WithSynopsis("fields [opts] command [opts]").
		WithDescription("fields generates field declarations for Go structs and works with the documents they encode to.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fieldsMain(cfg, cc, args)
		}).
		WithSubs(
			GenCommand(cfg),
			ConvCommand(cfg),
			DiffCommand(cfg))
}

func GenCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GenConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("gen").
		WithAliases("g").
		WithSynopsis("gen [-dir d] [-recursive] [-o file]").
		WithDescription(genDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return gen(cfg, cc, args)
		})
	cfg.Gen = cmd
	return cmd
}

const genDescription = `gen writes field declarations for the structs of a package.

Structs are selected by a //fields:declare line in their doc comment.
Each gets a package level schema variable and the methods Fields,
SetDefaults, EncodeValue, DecodeValue, DecodeStrict and DecodeLazy.

Fields are named by their "field" struct tag, or their Go name:

  //fields:declare
  type Server struct {
    Host    string        ` + "`" + `field:"host,default=localhost"` + "`" + `
    Timeout time.Duration ` + "`" + `field:"timeout,default=30s"` + "`" + `
    Debug   bool          ` + "`" + `field:"-"` + "`" + `
  }

Output goes to <package>_fields.go in the package directory.`

func ConvCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Conv, "conv").
		WithAliases("c").
		WithSynopsis("conv [files]").
		WithDescription("convert documents between json, yaml and cbor").
		WithRun(func(cc *cli.Context, args []string) error {
			return conv(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff a b").
		WithDescription("compare two documents, printing a line diff of their json forms when they differ").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}
