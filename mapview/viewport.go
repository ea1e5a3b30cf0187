package mapview

import "atmlocator/model"

const (
	DefaultRegion = "Islamabad"
	LocatedZoom   = 12
	MinZoom       = 0
	MaxZoom       = 21
)

var viewportPresets = map[string]model.ViewportPreset{
	"Rawalpindi": {Name: "Rawalpindi", Center: model.LatLng{Lat: 33.6007, Lng: 73.0679}, Zoom: 11},
	"Islamabad":  {Name: "Islamabad", Center: model.LatLng{Lat: 33.6844, Lng: 73.0479}, Zoom: 12},
	"Lahore":     {Name: "Lahore", Center: model.LatLng{Lat: 31.5497, Lng: 74.3436}, Zoom: 13},
}

// Regions lists the selectable city names in display order.
func Regions() []string {
	return []string{"Rawalpindi", "Islamabad", "Lahore"}
}

// ResolveViewport returns the preset for name, or the default region.
func ResolveViewport(name string) model.ViewportPreset {
	if preset, ok := viewportPresets[name]; ok {
		return preset
	}
	return viewportPresets[DefaultRegion]
}

func clampZoom(zoom int) int {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}
