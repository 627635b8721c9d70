package render

import (
	"image"
	"image/color"
	_ "image/jpeg" // register decoder for image references
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/akeil/adplan"
	"github.com/akeil/adplan/internal/logging"
)

const (
	// DefaultWidth is the page width in page units.
	DefaultWidth = 1920
	// DefaultHeight is the page height in page units.
	DefaultHeight = 1080
)

// ImageResolver loads the image behind an image reference.
type ImageResolver interface {
	Resolve(path string) (image.Image, error)
}

// Context holds parameters and cached data for rendering operations.
//
// If multiple pages are rendered, they should use the same Context.
type Context struct {
	// Width and Height give the page size in page units.
	Width  float64
	Height float64
	// Scale is the number of pixels per page unit for raster output.
	Scale      float64
	Background color.Color
	// Resolver loads referenced images. Without a resolver, image
	// references are drawn as empty boxes.
	Resolver ImageResolver
}

// NewContext sets up a rendering context for pages of the given size.
func NewContext(width, height float64) *Context {
	return &Context{
		Width:      width,
		Height:     height,
		Scale:      1,
		Background: color.White,
	}
}

// DefaultContext uses the default page size and no image resolver.
func DefaultContext() *Context {
	return NewContext(DefaultWidth, DefaultHeight)
}

func (c *Context) resolve(path string) image.Image {
	if c.Resolver == nil {
		return nil
	}
	img, err := c.Resolver.Resolve(path)
	if err != nil {
		logging.Info("Cannot resolve image %q: %v", path, err)
		return nil
	}
	return img
}

// DirResolver resolves image references relative to a base directory and
// caches decoded images.
type DirResolver struct {
	Base  string
	cache map[string]image.Image
	mx    sync.Mutex
}

// NewDirResolver creates a resolver for images below base.
func NewDirResolver(base string) *DirResolver {
	return &DirResolver{Base: base}
}

// Resolve loads and decodes the image at path.
func (d *DirResolver) Resolve(path string) (image.Image, error) {
	d.mx.Lock()
	defer d.mx.Unlock()
	if d.cache == nil {
		d.cache = make(map[string]image.Image)
	}
	cached := d.cache[path]
	if cached != nil {
		return cached, nil
	}

	p := filepath.Join(d.Base, filepath.FromSlash(filepath.Clean("/"+path)))
	logging.Debug("Read image from %q", p)
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, adplan.NewNotFound("image %q", path)
		}
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, adplan.Wrap(err, "decode image %q", path)
	}

	d.cache[path] = img
	return img, nil
}

func toRGBA(c adplan.Color) color.RGBA {
	ch := func(v float32) float32 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	a := ch(c.A)
	// color.RGBA is alpha-premultiplied
	return color.RGBA{
		R: uint8(ch(c.R)*a*255 + 0.5),
		G: uint8(ch(c.G)*a*255 + 0.5),
		B: uint8(ch(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func dash(d []float32) []float64 {
	if len(d) == 0 {
		return nil
	}
	f := make([]float64, len(d))
	for i, v := range d {
		f[i] = float64(v)
	}
	return f
}

func lineWidth(w float32) float64 {
	// hairlines for zero thickness
	if w <= 0 {
		return 0.5
	}
	return float64(w)
}
