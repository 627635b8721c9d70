// Package fs stores plan files in a local directory.
//
// Each plan is kept in a single file named after the plan with the
// extension ".adpn". The file content is the binary plan format from
// package codec.
package fs

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/akeil/adplan"
	"github.com/akeil/adplan/internal/logging"
	"github.com/akeil/adplan/pkg/codec"
)

// Ext is the file extension for stored plans.
const Ext = ".adpn"

type storage struct {
	base string
}

// NewStorage creates a storage for plan files in the given directory.
func NewStorage(base string) adplan.Storage {
	return &storage{base: base}
}

func (s *storage) List() ([]string, error) {
	logging.Debug("List plans from %q", s.base)
	files, err := ioutil.ReadDir(s.base)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0)
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != Ext {
			continue
		}
		names = append(names, strings.TrimSuffix(f.Name(), Ext))
	}
	sort.Strings(names)

	return names, nil
}

func (s *storage) Load(name string) (*adplan.Plan, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	logging.Debug("Load plan from %q", path)
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, adplan.NewNotFound("plan %q", name)
		}
		return nil, err
	}

	p, err := codec.ReadPlan(data)
	if err != nil {
		if p == nil {
			return nil, adplan.Wrap(err, "load plan %q", name)
		}
		logging.Warning("Plan %q loaded with errors: %v", name, err)
		return p, adplan.Wrap(err, "load plan %q", name)
	}

	return p, nil
}

func (s *storage) Save(p *adplan.Plan) error {
	path, err := s.path(p.Name)
	if err != nil {
		return err
	}

	data, err := codec.MarshalPlan(p)
	if err != nil {
		return adplan.Wrap(err, "encode plan %q", p.Name)
	}

	err = os.MkdirAll(s.base, 0755)
	if err != nil {
		return err
	}

	// write to a tempfile in the same directory, then replace the target
	f, err := ioutil.TempFile(s.base, ".adplan-*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	_, err = f.Write(data)
	if err != nil {
		f.Close()
		return err
	}
	err = f.Close()
	if err != nil {
		return err
	}

	logging.Debug("Move plan file to %q", path)
	return move(tmp, path)
}

func (s *storage) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	logging.Info("Delete plan %q", name)
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return adplan.NewNotFound("plan %q", name)
	}
	return err
}

// path returns the file path for a plan name.
// Names that would leave the base directory are rejected.
func (s *storage) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", adplan.NewValidationError("invalid plan name %q", name)
	}
	return filepath.Join(s.base, name+Ext), nil
}
