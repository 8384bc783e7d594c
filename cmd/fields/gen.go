package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/datafields/fields/codegen"
)

func gen(cfg *GenConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Gen.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: gen takes no arguments, got %v", cli.ErrUsage, args)
	}
	dir := cfg.Dir
	if dir == "" {
		dir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	packages, err := codegen.DiscoverPackages(dir, cfg.Recursive)
	if err != nil {
		return fmt.Errorf("failed to discover packages: %w", err)
	}
	if len(packages) == 0 {
		return fmt.Errorf("no Go packages found in %q", dir)
	}
	if cfg.Output != "" && len(packages) > 1 {
		return fmt.Errorf("%w: -o needs a single package, found %d", cli.ErrUsage, len(packages))
	}

	for _, pkg := range packages {
		if err := genPackage(cfg, cc, pkg); err != nil {
			return fmt.Errorf("failed to process package %q: %w", pkg.Dir, err)
		}
	}
	return nil
}

func genPackage(cfg *GenConfig, cc *cli.Context, pkg *codegen.PackageInfo) error {
	structs, err := codegen.LoadPackage(pkg)
	if err != nil {
		return err
	}
	if len(structs) == 0 {
		theLog.Debug("no declared structs", "dir", pkg.Dir)
		return nil
	}
	gcfg := &codegen.Config{
		OutputFile: cfg.Output,
		Package:    pkg,
		Logger:     theLog,
	}
	if cfg.DryRun {
		out, err := codegen.GenerateCode(structs, gcfg)
		if err != nil {
			return err
		}
		_, err = cc.Out.Write(out)
		return err
	}
	path, err := codegen.WriteCode(structs, gcfg)
	if err != nil {
		return err
	}
	theLog.Info("generated", "file", path, "structs", len(structs))
	return nil
}
