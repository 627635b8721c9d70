package main

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/akeil/adplan"
	"github.com/akeil/adplan/pkg/render"
)

func setupRenderContext(s settings) (*render.Context, error) {
	rc := render.NewContext(s.cfg.Render.Width, s.cfg.Render.Height)
	rc.Scale = s.cfg.Render.Scale
	bg, err := s.cfg.Render.BackgroundColor()
	if err != nil {
		return nil, err
	}
	rc.Background = bg
	rc.Resolver = render.NewDirResolver(s.cfg.ImageDir)
	return rc, nil
}

func doRender(s settings, ref, outDir string) error {
	p, err := mustLoadPlan(s, ref)
	if err != nil {
		return err
	}
	rc, err := setupRenderContext(s)
	if err != nil {
		return err
	}

	err = os.MkdirAll(outDir, 0755)
	if err != nil {
		return err
	}

	// pages are independent, render them concurrently
	var group errgroup.Group
	for i, pg := range p.Pages {
		i, pg := i, pg
		group.Go(func() error {
			return renderPng(rc, p, i, pg, outDir)
		})
	}
	return group.Wait()
}

func renderPng(rc *render.Context, p *adplan.Plan, i int, pg *adplan.Page, outDir string) error {
	path := filepath.Join(outDir, fmt.Sprintf("%v-%03d.png", p.Name, i+1))
	fmt.Printf("%v render page %d %q\n", ellipsis, i, pg.Name)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	err = rc.PNG(pg, f)
	if err != nil {
		fmt.Printf("%v Failed to render page %d: %v\n", crossmark, i, err)
		return err
	}

	fmt.Printf("%v page %d saved as %q.\n", checkmark, i, path)
	return nil
}

func doPdf(s settings, ref, out string) error {
	p, err := mustLoadPlan(s, ref)
	if err != nil {
		return err
	}
	rc, err := setupRenderContext(s)
	if err != nil {
		return err
	}

	if out == "" {
		out = p.Name + ".pdf"
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Printf("%v render %q\n", ellipsis, p.Name)
	err = rc.PDF(p, f)
	if err != nil {
		fmt.Printf("%v Failed to render %q: %v\n", crossmark, p.Name, err)
		return err
	}

	fmt.Printf("%v plan %q saved as %q.\n", checkmark, p.Name, out)
	return nil
}
