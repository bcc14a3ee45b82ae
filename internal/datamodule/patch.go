// Package datamodule assembles multi-modal patch data and dataloader
// configuration for the GeoLifeCLEF benchmark datasets.
package datamodule

import (
	"github.com/tlarcher/geolife-go/internal/errors"
	"github.com/tlarcher/geolife-go/internal/geo"
)

// Modality names of the benchmark patches.
const (
	ModalityRGB         = "rgb"
	ModalityTemperature = "temperature"
	ModalityAltitude    = "altitude"
)

// Plane is a single 2D float band of a patch.
type Plane struct {
	Name   string
	Width  int
	Height int
	Data   []float32
}

// Patch is a fixed-size multi-band raster crop centered on an observation
// location. Bands are grouped by modality name.
type Patch struct {
	// Center is the observation location the patch was extracted around.
	Center geo.Point
	// Extent is the geographic footprint of the patch.
	Extent geo.Box
	Planes []Plane
}

// Modality returns the planes whose name equals modality.
func (p *Patch) Modality(modality string) []Plane {
	var out []Plane
	for _, plane := range p.Planes {
		if plane.Name == modality {
			out = append(out, plane)
		}
	}
	return out
}

// Validate checks structural consistency: every plane has width*height
// data values, all planes share the same extent dimensions, and the patch
// footprint lies inside the dataset extent with the center in the
// footprint.
func (p *Patch) Validate(datasetExtent geo.Box) error {
	if !datasetExtent.Contains(p.Extent) {
		return errors.Newf("patch extent %+v outside dataset extent %+v", p.Extent, datasetExtent).
			Component("datamodule").
			Category(errors.CategoryValidation).
			Build()
	}
	if !p.Extent.ContainsPoint(p.Center) {
		return errors.Newf("patch center %+v outside its extent %+v", p.Center, p.Extent).
			Component("datamodule").
			Category(errors.CategoryValidation).
			Build()
	}
	if len(p.Planes) == 0 {
		return errors.NewStd("patch has no planes")
	}
	w, h := p.Planes[0].Width, p.Planes[0].Height
	for _, plane := range p.Planes {
		if plane.Width != w || plane.Height != h {
			return errors.Newf("plane %q is %dx%d, expected %dx%d", plane.Name, plane.Width, plane.Height, w, h).
				Component("datamodule").
				Category(errors.CategoryValidation).
				Build()
		}
		if len(plane.Data) != plane.Width*plane.Height {
			return errors.Newf("plane %q has %d values for %dx%d", plane.Name, len(plane.Data), plane.Width, plane.Height).
				Component("datamodule").
				Category(errors.CategoryValidation).
				Build()
		}
	}
	return nil
}
