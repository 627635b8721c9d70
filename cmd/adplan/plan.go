package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/akeil/adplan"
	"github.com/akeil/adplan/pkg/codec"
	"github.com/akeil/adplan/pkg/fs"
)

func setupStorage(s settings) adplan.Storage {
	return fs.NewStorage(s.cfg.StorageDir)
}

// loadPlan reads a plan from a file path or, if no such file exists, from
// the storage. A partially decoded plan is returned with its error.
func loadPlan(s settings, ref string) (*adplan.Plan, error) {
	info, err := os.Stat(ref)
	if err == nil && !info.IsDir() {
		data, err := ioutil.ReadFile(ref)
		if err != nil {
			return nil, err
		}
		return codec.ReadPlan(data)
	}

	return setupStorage(s).Load(ref)
}

// mustLoadPlan is loadPlan, but warns about partial plans and only fails if
// nothing could be read.
func mustLoadPlan(s settings, ref string) (*adplan.Plan, error) {
	p, err := loadPlan(s, ref)
	if p == nil {
		return nil, err
	}
	if err != nil {
		fmt.Printf("%v plan %q is damaged, using what could be read: %v\n", crossmark, ref, err)
	}
	return p, nil
}

func doLs(s settings) error {
	names, err := setupStorage(s).List()
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Println("Found no plans.")
		return nil
	}

	fmt.Println("Plans")
	fmt.Println("-----")
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func doNew(s settings, name string) error {
	repo := setupStorage(s)
	_, err := repo.Load(name)
	if err == nil {
		return fmt.Errorf("plan %q already exists", name)
	}
	if !adplan.IsNotFound(err) {
		return err
	}

	p := adplan.NewPlan(name)
	p.Producer, err = s.cfg.ProducerVersion()
	if err != nil {
		return err
	}

	err = repo.Save(p)
	if err != nil {
		return err
	}
	fmt.Printf("%v created plan %q\n", checkmark, name)
	return nil
}

func doRm(s settings, name string) error {
	err := setupStorage(s).Delete(name)
	if err != nil {
		return err
	}
	fmt.Printf("%v deleted plan %q\n", checkmark, name)
	return nil
}
