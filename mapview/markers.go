package mapview

import "atmlocator/model"

const (
	CurrentLocationTitle = "Current Location"
	CurrentLocationIcon  = "https://maps.google.com/mapfiles/ms/icons/blue-dot.png"
)

func markerFor(atm model.Atm) model.Overlay {
	return model.Overlay{
		Kind:     model.OverlayMarker,
		Position: atm.Position(),
		Title:    atm.Name,
	}
}

// BuildOverlays derives one marker per record, in order, followed by the
// current location marker when current is set.
func BuildOverlays(records []model.Atm, current *model.LatLng) []model.Overlay {
	overlays := make([]model.Overlay, 0, len(records)+1)
	for _, atm := range records {
		overlays = append(overlays, markerFor(atm))
	}
	if current != nil {
		overlays = append(overlays, model.Overlay{
			Kind:     model.OverlayMarker,
			Position: *current,
			Title:    CurrentLocationTitle,
			Icon:     CurrentLocationIcon,
		})
	}
	return overlays
}

func findByName(records []model.Atm, name string) (model.Atm, bool) {
	for _, atm := range records {
		if atm.Name == name {
			return atm, true
		}
	}
	return model.Atm{}, false
}
