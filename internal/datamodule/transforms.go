package datamodule

import (
	"github.com/tlarcher/geolife-go/internal/errors"
)

// Transform rewrites a patch in the dataloading pipeline. Transforms must
// not modify the input patch.
type Transform interface {
	Apply(p *Patch) (*Patch, error)
}

// Compose chains transforms left to right.
type Compose []Transform

// Apply runs every transform in order, stopping at the first error.
func (c Compose) Apply(p *Patch) (*Patch, error) {
	out := p
	var err error
	for _, t := range c {
		out, err = t.Apply(out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// SelectModalities keeps only the planes of the listed modalities, in the
// listed order.
type SelectModalities []string

func (s SelectModalities) Apply(p *Patch) (*Patch, error) {
	out := &Patch{Center: p.Center, Extent: p.Extent}
	for _, modality := range s {
		planes := p.Modality(modality)
		if len(planes) == 0 {
			return nil, errors.Newf("patch has no %q planes", modality).
				Component("datamodule").
				Category(errors.CategoryValidation).
				Build()
		}
		out.Planes = append(out.Planes, planes...)
	}
	return out, nil
}

// Normalize standardizes each plane with a per-band mean and standard
// deviation. Mean and Std lengths must match the plane count.
type Normalize struct {
	Mean []float32
	Std  []float32
}

func (n Normalize) Apply(p *Patch) (*Patch, error) {
	if len(n.Mean) != len(p.Planes) || len(n.Std) != len(p.Planes) {
		return nil, errors.Newf("normalize has %d/%d parameters for %d planes", len(n.Mean), len(n.Std), len(p.Planes)).
			Component("datamodule").
			Category(errors.CategoryValidation).
			Build()
	}
	out := &Patch{Center: p.Center, Extent: p.Extent, Planes: make([]Plane, len(p.Planes))}
	for i, plane := range p.Planes {
		if n.Std[i] == 0 {
			return nil, errors.Newf("normalize std is zero for plane %d (%q)", i, plane.Name).
				Component("datamodule").
				Category(errors.CategoryValidation).
				Build()
		}
		data := make([]float32, len(plane.Data))
		for j, v := range plane.Data {
			data[j] = (v - n.Mean[i]) / n.Std[i]
		}
		out.Planes[i] = Plane{Name: plane.Name, Width: plane.Width, Height: plane.Height, Data: data}
	}
	return out, nil
}

// FillNaN replaces non-finite values of a modality with a constant, the
// way environmental rasters carry per-layer nodata fills.
type FillNaN struct {
	Modality string
	Value    float32
}

func (f FillNaN) Apply(p *Patch) (*Patch, error) {
	out := &Patch{Center: p.Center, Extent: p.Extent, Planes: make([]Plane, len(p.Planes))}
	for i, plane := range p.Planes {
		if plane.Name != f.Modality {
			out.Planes[i] = plane
			continue
		}
		data := make([]float32, len(plane.Data))
		for j, v := range plane.Data {
			if v != v { // NaN
				data[j] = f.Value
			} else {
				data[j] = v
			}
		}
		out.Planes[i] = Plane{Name: plane.Name, Width: plane.Width, Height: plane.Height, Data: data}
	}
	return out, nil
}

// Tensor flattens a patch into a CHW float32 tensor, concatenating planes
// in order. This is the model input composition step.
func Tensor(p *Patch) ([]float32, error) {
	if len(p.Planes) == 0 {
		return nil, errors.NewStd("patch has no planes")
	}
	w, h := p.Planes[0].Width, p.Planes[0].Height
	out := make([]float32, 0, len(p.Planes)*w*h)
	for _, plane := range p.Planes {
		if plane.Width != w || plane.Height != h {
			return nil, errors.Newf("plane %q is %dx%d, expected %dx%d", plane.Name, plane.Width, plane.Height, w, h).
				Component("datamodule").
				Category(errors.CategoryValidation).
				Build()
		}
		out = append(out, plane.Data...)
	}
	return out, nil
}
