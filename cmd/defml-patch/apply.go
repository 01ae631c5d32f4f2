package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	defml "github.com/defml-format/go-defml"
	"github.com/defml-format/go-defml/encode"
	"github.com/defml-format/go-defml/inherit"
	"github.com/defml-format/go-defml/ir"
	"github.com/defml-format/go-defml/parse"
	"github.com/defml-format/go-defml/patchop"
)

var (
	flagManifest     string
	flagCapabilities []string
	flagInherit      bool
	flagDiff         bool
	flagStrict       bool
	flagNoColor      bool
	flagOut          string
)

var applyCmd = &cobra.Command{
	Use:   "apply [base.xml patch.xml...]",
	Short: "apply patch units to a base document",
	RunE:  runApply,
}

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "list the registered operation kinds",
	Run: func(cmd *cobra.Command, args []string) {
		var names []string
		for _, s := range patchop.Symbols() {
			names = append(names, s.String())
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Println(n)
		}
	},
}

func init() {
	applyCmd.Flags().StringVarP(&flagManifest, "manifest", "m", "", "run manifest (yaml)")
	applyCmd.Flags().StringArrayVarP(&flagCapabilities, "capability", "c", nil, "present capability, repeatable")
	applyCmd.Flags().BoolVar(&flagInherit, "resolve-inheritance", false, "expand parent templates after patching")
	applyCmd.Flags().BoolVar(&flagDiff, "diff", false, "print a before/after diff instead of the document")
	applyCmd.Flags().BoolVar(&flagStrict, "strict", false, "exit nonzero when any operation failed")
	applyCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	applyCmd.Flags().StringVarP(&flagOut, "out", "o", "", "write the patched document to a file")
}

func runApply(cmd *cobra.Command, args []string) error {
	if flagNoColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	caps := slices.Clone(flagCapabilities)
	var base string
	var patchFiles []string
	if flagManifest != "" {
		m, err := loadManifest(flagManifest)
		if err != nil {
			return err
		}
		caps = append(caps, m.Capabilities...)
		has := capabilityFunc(caps)
		files, err := m.selectPatches(has)
		if err != nil {
			return err
		}
		dir := filepath.Dir(flagManifest)
		base = filepath.Join(dir, m.Base)
		for _, f := range files {
			patchFiles = append(patchFiles, filepath.Join(dir, f))
		}
	} else {
		if len(args) < 1 {
			return fmt.Errorf("need a base document (or --manifest)")
		}
		base = args[0]
		patchFiles = args[1:]
	}

	doc, err := parseFile(base)
	if err != nil {
		return err
	}
	var units []*defml.Unit
	for _, f := range patchFiles {
		r, err := os.Open(f)
		if err != nil {
			return err
		}
		u, err := defml.ReadUnit(filepath.Base(f), r)
		r.Close()
		if err != nil {
			return err
		}
		units = append(units, u)
	}

	var before string
	if flagDiff {
		before = encode.MustString(doc)
	}

	report, err := defml.Apply(doc, units, defml.WithCapabilities(capabilityFunc(caps)))
	if err != nil {
		return err
	}
	if flagInherit {
		if err := inherit.Resolve(doc); err != nil {
			return err
		}
	}

	printReport(report)
	if flagDiff {
		printDiff(before, encode.MustString(doc))
	} else if err := writeDoc(doc); err != nil {
		return err
	}
	if flagStrict && report.Failed() {
		return fmt.Errorf("%d operation(s) failed", len(report.FailedEntries()))
	}
	return nil
}

func capabilityFunc(caps []string) func(string) bool {
	set := make(map[string]bool, len(caps))
	for _, c := range caps {
		set[c] = true
	}
	return func(name string) bool { return set[name] }
}

func parseFile(path string) (*ir.Node, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	doc, err := parse.Document(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func writeDoc(doc *ir.Node) error {
	if flagOut == "" {
		return encode.Encode(doc, os.Stdout)
	}
	f, err := os.Create(flagOut)
	if err != nil {
		return err
	}
	defer f.Close()
	return encode.Encode(doc, f)
}

func printReport(report *defml.Report) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	for _, e := range report.Entries {
		status := e.Outcome.Status.String()
		switch e.Outcome.Status {
		case patchop.Applied:
			status = green(status)
		case patchop.Skipped:
			status = yellow(status)
		case patchop.Failed:
			status = red(status)
		}
		fmt.Fprintf(os.Stderr, "%s[%d] %s: %s", e.Unit, e.Index, e.Op, status)
		if e.Outcome.Reason != "" {
			fmt.Fprintf(os.Stderr, " (%s)", e.Outcome.Reason)
		}
		fmt.Fprintln(os.Stderr)
	}
}

func printDiff(before, after string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	if color.NoColor {
		fmt.Print(dmp.DiffText2(diffs))
		return
	}
	fmt.Print(dmp.DiffPrettyText(diffs))
}
