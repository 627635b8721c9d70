package main

import (
	"fmt"
	"sort"

	"github.com/akeil/adplan"
)

func doInfo(s settings, ref string) error {
	p, err := mustLoadPlan(s, ref)
	if err != nil {
		return err
	}

	fmt.Printf("Plan:     %v\n", p.Name)
	fmt.Printf("Format:   v%d\n", p.FormatVersion)
	fmt.Printf("Producer: %v\n", p.Producer)
	fmt.Printf("Pages:    %d\n", p.NumPages())

	for i, pg := range p.Pages {
		fmt.Printf("\n[%d] %v (%d drawables)\n", i, pg.Name, pg.Len())
		counts := make(map[adplan.Kind]int)
		for _, d := range pg.Drawables {
			counts[d.Kind()]++
		}
		kinds := make([]adplan.Kind, 0, len(counts))
		for k := range counts {
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
		for _, k := range kinds {
			fmt.Printf("  %-12v %d\n", k, counts[k])
		}
	}
	return nil
}

func doCheck(s settings, ref string) error {
	p, err := loadPlan(s, ref)
	if p == nil {
		fmt.Printf("%v %v: %v\n", crossmark, ref, adplan.Status(err))
		return err
	}
	fmt.Printf("%v decode: %v\n", mark(err), adplan.Status(err))

	failed := err != nil
	for i, pg := range p.Pages {
		verr := pg.Validate()
		failed = failed || verr != nil
		fmt.Printf("%v page %d %q: %v\n", mark(verr), i, pg.Name, adplan.Status(verr))
	}

	if failed {
		return fmt.Errorf("plan %q has errors", ref)
	}
	return nil
}

func mark(err error) string {
	if err != nil {
		return crossmark
	}
	return checkmark
}
