package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	brochure "github.com/alnah/go-brochure"
	"github.com/alnah/go-brochure/content"
)

// runPlan prints the page sequence of one brochure file.
func runPlan(args []string, env *Environment) error {
	f := &planFlags{}
	fs := buildPlanFlagSet(f, env.Stderr)
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: plan takes exactly one brochure file", ErrNoInput)
	}

	b, err := content.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	pages := brochure.Plan(b)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pages)
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PAGE\tKIND\tITEMS\tFLAGS")
	for _, p := range pages {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.Number, p.Kind, pageItems(p), pageFlags(p))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "\n%d pages\n", len(pages))
	}
	return nil
}

func pageItems(p brochure.PageDescriptor) string {
	switch {
	case len(p.AmenityIDs) > 0:
		return strings.Join(p.AmenityIDs, ",")
	case len(p.FloorPlanIDs) > 0:
		return strings.Join(p.FloorPlanIDs, ",")
	default:
		return "-"
	}
}

func pageFlags(p brochure.PageDescriptor) string {
	var flags []string
	if p.ShowMasterPlan {
		flags = append(flags, "master-plan")
	}
	if p.IsLastGroup {
		flags = append(flags, "last-group")
	}
	if p.ShowContact {
		flags = append(flags, "contact")
	}
	if p.ShowDisclaimer {
		flags = append(flags, "disclaimer")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}
