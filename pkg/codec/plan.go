package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/akeil/adplan"
	"github.com/akeil/adplan/internal/logging"
)

// MarshalPlan returns the binary representation of the plan.
func MarshalPlan(p *adplan.Plan) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := WritePlan(buf, p)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WritePlan writes the plan to the given writer, always in the current
// format version.
func WritePlan(w io.Writer, p *adplan.Plan) error {
	if len(p.Pages) > MaxPages {
		return fmt.Errorf("too many pages: %d (max %d)", len(p.Pages), MaxPages)
	}

	wr := newWriter(w)
	wr.writeBytes([]byte(Signature))
	wr.write(PlanFormatVersion)
	wr.write([]uint16{p.Producer.Major, p.Producer.Minor, p.Producer.Patch})
	wr.writeString("plan name", p.Name)
	wr.write(int32(len(p.Pages)))

	for i, pg := range p.Pages {
		// each page is length prefixed so that readers can skip it
		blob, err := MarshalPage(pg.Drawables)
		if err != nil {
			return adplan.Wrap(err, "page %d", i)
		}
		wr.writeString("page name", pg.Name)
		wr.write(int32(len(blob)))
		wr.writeBytes(blob)
	}

	return wr.err
}

// ReadPlan decodes a plan file.
//
// A bad signature, an unsupported version or a corrupt header yield no plan.
// If a page entry is truncated or corrupt, the pages before it are returned
// together with the error. Pages whose drawables cannot be fully decoded are
// kept with the drawables that could be read; their errors are joined into
// the returned error.
func ReadPlan(data []byte) (*adplan.Plan, error) {
	r := newReader(data)

	sig := make([]byte, len(Signature))
	_, err := io.ReadFull(r, sig)
	if err != nil || string(sig) != Signature {
		return nil, adplan.ErrNotAPlanFile
	}

	var version uint32
	err = r.read("plan format version", &version)
	if err != nil {
		return nil, err
	}
	if version > PlanFormatVersion {
		return nil, adplan.UnsupportedVersionError{
			What:    "plan",
			Version: int64(version),
			Max:     int64(PlanFormatVersion),
		}
	}

	p := &adplan.Plan{FormatVersion: version}
	err = r.read("producer version", &p.Producer)
	if err != nil {
		return nil, err
	}

	p.Name, err = r.readString("plan name")
	if err != nil {
		return nil, err
	}

	count, err := r.readCount("page count", MaxPages, 0)
	if err != nil {
		return nil, err
	}
	logging.Debug("Read plan %q v%d by %v with %d pages", p.Name, version, p.Producer, count)

	p.Pages = make([]*adplan.Page, 0, count)
	var pageErrs []error
	for i := 0; i < count; i++ {
		name, blob, err := readPageEntry(r)
		if err != nil {
			pageErrs = append(pageErrs, adplan.Wrap(err, "page %d", i))
			logging.Warning("Stop reading plan %q at page %d: %v", p.Name, i, err)
			return p, errors.Join(pageErrs...)
		}

		drawables, err := ReadPage(blob)
		if err != nil {
			logging.Warning("Page %d (%q) of plan %q: %v", i, name, p.Name, err)
			pageErrs = append(pageErrs, adplan.Wrap(err, "page %d (%q)", i, name))
		}
		p.Pages = append(p.Pages, &adplan.Page{Name: name, Drawables: drawables})
	}

	return p, errors.Join(pageErrs...)
}

func readPageEntry(r reader) (string, []byte, error) {
	name, err := r.readString("page name")
	if err != nil {
		return "", nil, err
	}

	n, err := r.readCount("page length", maxPageBlob, 1)
	if err != nil {
		return "", nil, err
	}

	blob := make([]byte, n)
	_, err = io.ReadFull(r, blob)
	if err != nil {
		return "", nil, truncated("page data")
	}
	return name, blob, nil
}
