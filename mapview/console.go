package mapview

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"atmlocator/model"
)

// ConsoleWidget prints every widget command as one line. It lets the view
// run without a browser.
type ConsoleWidget struct {
	Out io.Writer
}

func (w *ConsoleWidget) SetCenter(center model.LatLng) {
	fmt.Fprintf(w.Out, "center  %.4f,%.4f\n", center.Lat, center.Lng)
}

func (w *ConsoleWidget) SetZoom(zoom int) {
	fmt.Fprintf(w.Out, "zoom    %d\n", zoom)
}

func (w *ConsoleWidget) SetOverlays(overlays []model.Overlay) {
	fmt.Fprintf(w.Out, "overlays %d\n", len(overlays))
	for _, o := range overlays {
		w.printOverlay("  ", o)
	}
}

func (w *ConsoleWidget) AddOverlay(overlay model.Overlay) {
	w.printOverlay("added   ", overlay)
}

func (w *ConsoleWidget) OpenPopup(anchor model.Overlay, content string) {
	fmt.Fprintf(w.Out, "popup   %s\n", anchor.Title)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(w.Out, "  %s\n", strings.TrimSpace(line))
	}
}

func (w *ConsoleWidget) printOverlay(prefix string, o model.Overlay) {
	fmt.Fprintf(w.Out, "%s%-6s %.4f,%.4f %q\n", prefix, o.Kind, o.Position.Lat, o.Position.Lng, o.Title)
}

type ConsoleNotifier struct {
	Out io.Writer
}

func (n *ConsoleNotifier) Notify(notice model.Notice) {
	if notice.Detail == "" {
		fmt.Fprintf(n.Out, "[%s] %s\n", notice.Severity, notice.Summary)
		return
	}
	fmt.Fprintf(n.Out, "[%s] %s: %s\n", notice.Severity, notice.Summary, notice.Detail)
}

// FixedGeolocator reports a preset device position, or
// ErrGeolocationUnavailable when none is set.
type FixedGeolocator struct {
	Position *model.LatLng
}

func (g FixedGeolocator) CurrentPosition(ctx context.Context) (model.LatLng, error) {
	if g.Position == nil {
		return model.LatLng{}, ErrGeolocationUnavailable
	}
	return *g.Position, nil
}

// ParseLatLng parses "lat,lng".
func ParseLatLng(s string) (model.LatLng, error) {
	var pos model.LatLng
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return pos, fmt.Errorf("expected lat,lng, got %q", s)
	}
	var err error
	if pos.Lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return pos, fmt.Errorf("latitude: %w", err)
	}
	if pos.Lng, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return pos, fmt.Errorf("longitude: %w", err)
	}
	if pos.Lat < -90 || pos.Lat > 90 || pos.Lng < -180 || pos.Lng > 180 {
		return pos, fmt.Errorf("coordinate %q out of range", s)
	}
	return pos, nil
}
