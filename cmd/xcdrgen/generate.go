package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nebuladds/xcdr-core/gen"
	"github.com/nebuladds/xcdr-core/idl"
)

var (
	genPackage      string
	genOutDir       string
	sequenceTmpl    string
	sequenceInc     string
	boundedSeqTmpl  string
	boundedSeqInc   string
	stringTmpl      string
	stringInc       string
	boundedStrTmpl  string
	boundedStrInc   string
	arrayTmpl       string
	arrayInc        string
	optionalTmpl    string
	optionalInc     string
	unionTmpl       string
	unionGetterTmpl string
	unionInc        string
)

func init() {
	cmd := newGenerateCmd()
	cmd.Flags().StringVar(&genPackage, "package", "generated", "Go package name for generated files")
	cmd.Flags().StringVar(&genOutDir, "out", ".", "output directory for generated files")

	cmd.Flags().StringVar(&sequenceTmpl, "sequence-template", "", "override the sequence<T> backing-type template")
	cmd.Flags().StringVar(&sequenceInc, "sequence-include", "", "import path paired with --sequence-template")
	cmd.Flags().StringVar(&boundedSeqTmpl, "bounded-sequence-template", "", "override the bounded sequence<T,N> backing-type template")
	cmd.Flags().StringVar(&boundedSeqInc, "bounded-sequence-include", "", "import path paired with --bounded-sequence-template")
	cmd.Flags().StringVar(&stringTmpl, "string-template", "", "override the unbounded string backing-type template")
	cmd.Flags().StringVar(&stringInc, "string-include", "", "import path paired with --string-template")
	cmd.Flags().StringVar(&boundedStrTmpl, "bounded-string-template", "", "override the bounded string backing-type template")
	cmd.Flags().StringVar(&boundedStrInc, "bounded-string-include", "", "import path paired with --bounded-string-template")
	cmd.Flags().StringVar(&arrayTmpl, "array-template", "", "override the fixed-array backing-type template")
	cmd.Flags().StringVar(&arrayInc, "array-include", "", "import path paired with --array-template")
	cmd.Flags().StringVar(&optionalTmpl, "optional-template", "", "override the optional-member backing-type template")
	cmd.Flags().StringVar(&optionalInc, "optional-include", "", "import path paired with --optional-template")
	cmd.Flags().StringVar(&unionTmpl, "union-template", "", "override the union value-type backing template")
	cmd.Flags().StringVar(&unionGetterTmpl, "union-getter-template", "", "override the union branch getter template")
	cmd.Flags().StringVar(&unionInc, "union-include", "", "import path paired with --union-template")

	rootCmd.AddCommand(cmd)
}

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <idl.json>",
		Short: "Generate Go bindings from a JSON IDL description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(args[0])
		},
	}
}

func runGenerate(idlPath string) error {
	f, err := os.Open(idlPath)
	if err != nil {
		return fmt.Errorf("opening IDL description: %w", err)
	}
	defer f.Close()

	printVerbose("loading IDL description from %s\n", idlPath)
	mod, err := idl.LoadJSON(f)
	if err != nil {
		return fmt.Errorf("loading IDL description: %w", err)
	}

	opts := gen.DefaultOptions()
	opts.PackageName = genPackage
	applyTemplateOverride(&opts.Sequence, sequenceTmpl, sequenceInc)
	applyTemplateOverride(&opts.BoundedSequence, boundedSeqTmpl, boundedSeqInc)
	applyTemplateOverride(&opts.String, stringTmpl, stringInc)
	applyTemplateOverride(&opts.BoundedString, boundedStrTmpl, boundedStrInc)
	applyTemplateOverride(&opts.Array, arrayTmpl, arrayInc)
	applyTemplateOverride(&opts.Optional, optionalTmpl, optionalInc)
	applyTemplateOverride(&opts.Union, unionTmpl, unionInc)
	applyTemplateOverride(&opts.UnionGetter, unionGetterTmpl, "")

	reg := gen.NewRegistry(mod)
	generator := gen.NewGenerator(reg, opts)

	files, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("generating bindings: %w", err)
	}

	if err := os.MkdirAll(genOutDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for name, src := range files {
		outPath := filepath.Join(genOutDir, name)
		printVerbose("writing %s\n", outPath)
		if err := os.WriteFile(outPath, []byte(src), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
	}

	if jsonOut {
		return printJSON(map[string]any{"files": len(files), "package": genPackage, "out": genOutDir})
	}
	printInfo("generated %d file(s) into %s\n", len(files), genOutDir)
	return nil
}

func applyTemplateOverride(pair *gen.TemplatePair, tmpl, include string) {
	if tmpl != "" {
		pair.Template = tmpl
	}
	if include != "" {
		pair.Import = include
	}
}
