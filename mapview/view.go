// Package mapview is the view-model behind the ATM map: it loads location
// records, keeps the viewport and overlay set in step with them, and turns
// widget events into popups and create requests.
//
// A View is driven from a single event loop and is not safe for concurrent
// use.
package mapview

import (
	"context"
	"errors"
	"log/slog"

	"atmlocator/logger"
	"atmlocator/model"
)

var (
	ErrNoPendingMarker        = errors.New("no marker is being created")
	ErrGeolocationUnavailable = errors.New("geolocation unavailable")
)

// Widget is the map surface the view pushes state to.
type Widget interface {
	SetCenter(center model.LatLng)
	SetZoom(zoom int)
	SetOverlays(overlays []model.Overlay)
	AddOverlay(overlay model.Overlay)
	OpenPopup(anchor model.Overlay, content string)
}

type Notifier interface {
	Notify(notice model.Notice)
}

type Geolocator interface {
	CurrentPosition(ctx context.Context) (model.LatLng, error)
}

// MarkerForm holds what the user typed into the creation dialog.
type MarkerForm struct {
	Id            string
	Name          string
	Address       string
	BranchCode    string
	BranchManager string
	Phone         string
	WorkingHours  string
}

func (f MarkerForm) atm(pos model.LatLng) model.Atm {
	return model.Atm{
		Id:            f.Id,
		Name:          f.Name,
		Address:       f.Address,
		BranchCode:    f.BranchCode,
		BranchManager: f.BranchManager,
		Latitude:      pos.Lat,
		Longitude:     pos.Lng,
		Phone:         f.Phone,
		WorkingHours:  f.WorkingHours,
	}
}

// PendingMarker is the open creation dialog.
type PendingMarker struct {
	Position model.LatLng
	Form     MarkerForm
}

type Option func(*View)

// WithGeolocator enables the current location marker.
func WithGeolocator(g Geolocator) Option {
	return func(v *View) { v.geo = g }
}

func WithoutCurrentLocation() Option {
	return func(v *View) { v.geo = nil }
}

func WithLogger(l *logger.Logger) Option {
	return func(v *View) { v.log = l }
}

type View struct {
	source   Source
	widget   Widget
	notifier Notifier
	geo      Geolocator
	log      *logger.Logger

	records  []model.Atm
	overlays []model.Overlay
	device   *model.LatLng
	pending  *PendingMarker

	region string
	center model.LatLng
	zoom   int
}

func New(source Source, widget Widget, notifier Notifier, opts ...Option) *View {
	preset := ResolveViewport(DefaultRegion)
	v := &View{
		source:   source,
		widget:   widget,
		notifier: notifier,
		log:      logger.Discard(),
		region:   preset.Name,
		center:   preset.Center,
		zoom:     preset.Zoom,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Init loads the records once, positions the map and draws the overlays.
// A load failure is logged and returned, but the view is still drawn empty.
func (v *View) Init(ctx context.Context) error {
	loadErr := v.Load(ctx)

	v.locate(ctx)
	v.widget.SetCenter(v.center)
	v.widget.SetZoom(v.zoom)
	v.rebuild()

	return loadErr
}

// Load replaces the record list from the source. On failure the current
// list is kept.
func (v *View) Load(ctx context.Context) error {
	records, err := v.source.List(ctx)
	if err != nil {
		v.log.Error("load locations failed", slog.String("error", err.Error()))
		return err
	}
	v.log.Debug("locations loaded", slog.Int("count", len(records)))
	v.records = records
	return nil
}

func (v *View) Reload(ctx context.Context) error {
	if err := v.Load(ctx); err != nil {
		return err
	}
	v.rebuild()
	return nil
}

func (v *View) locate(ctx context.Context) {
	preset := ResolveViewport(DefaultRegion)
	v.region = preset.Name
	v.center = preset.Center
	v.zoom = preset.Zoom

	if v.geo == nil {
		v.device = nil
		return
	}

	pos, err := v.geo.CurrentPosition(ctx)
	if err != nil {
		v.log.Warn("current location unavailable, using default viewport", slog.String("error", err.Error()))
		fallback := preset.Center
		v.device = &fallback
		return
	}

	v.center = pos
	v.zoom = LocatedZoom
	v.device = &pos
}

func (v *View) rebuild() {
	v.overlays = BuildOverlays(v.records, v.device)
	v.widget.SetOverlays(v.Overlays())
}

// SelectCity moves the map to the named region, or the default region when
// the name is unknown, and redraws the overlays.
func (v *View) SelectCity(name string) model.ViewportPreset {
	preset := ResolveViewport(name)
	v.region = preset.Name
	v.center = preset.Center
	v.zoom = preset.Zoom

	v.widget.SetCenter(v.center)
	v.widget.SetZoom(v.zoom)
	v.rebuild()
	return preset
}

func (v *View) ZoomIn() int {
	return v.setZoom(v.zoom + 1)
}

func (v *View) ZoomOut() int {
	return v.setZoom(v.zoom - 1)
}

func (v *View) setZoom(zoom int) int {
	v.zoom = clampZoom(zoom)
	v.widget.SetZoom(v.zoom)
	return v.zoom
}

// HandleDragEnd records where the user left the map.
func (v *View) HandleDragEnd(center model.LatLng) {
	v.center = center
}

func (v *View) HandleOverlayClick(overlay model.Overlay) {
	if overlay.Kind != model.OverlayMarker || overlay.Title == "" {
		v.notifier.Notify(model.Notice{Severity: model.SeverityInfo, Summary: "Shape Selected"})
		return
	}

	if atm, ok := findByName(v.records, overlay.Title); ok {
		content, err := RenderPopup(atm)
		if err != nil {
			v.log.Error("render popup failed", slog.String("title", overlay.Title), slog.String("error", err.Error()))
		} else {
			v.widget.OpenPopup(overlay, content)
		}
	}

	v.notifier.Notify(model.Notice{Severity: model.SeverityInfo, Summary: "Marker Selected", Detail: overlay.Title})
}

// HandleMapClick opens an empty creation dialog at pos.
func (v *View) HandleMapClick(pos model.LatLng) {
	v.pending = &PendingMarker{Position: pos}
}

func (v *View) CancelMarker() {
	v.pending = nil
}

// SubmitMarker sends the form to the source. On failure nothing changes and
// the dialog stays open.
func (v *View) SubmitMarker(ctx context.Context, form MarkerForm) error {
	if v.pending == nil {
		return ErrNoPendingMarker
	}

	created, err := v.source.Create(ctx, form.atm(v.pending.Position))
	if err != nil {
		v.log.Error("add marker failed", slog.String("name", form.Name), slog.String("error", err.Error()))
		v.notifier.Notify(model.Notice{Severity: model.SeverityError, Summary: "Error", Detail: "Failed to add marker!"})
		return err
	}

	// appended after the current location marker, in the same place the
	// widget draws it
	marker := markerFor(created)
	v.records = append(v.records, created)
	v.overlays = append(v.overlays, marker)
	v.widget.AddOverlay(marker)
	v.pending = nil

	v.notifier.Notify(model.Notice{Severity: model.SeveritySuccess, Summary: "Success", Detail: "Marker added successfully!"})
	return nil
}

func (v *View) Pending() (PendingMarker, bool) {
	if v.pending == nil {
		return PendingMarker{}, false
	}
	return *v.pending, true
}

func (v *View) Records() []model.Atm {
	return append([]model.Atm(nil), v.records...)
}

func (v *View) Overlays() []model.Overlay {
	return append([]model.Overlay(nil), v.overlays...)
}

func (v *View) Region() string       { return v.region }
func (v *View) Center() model.LatLng { return v.center }
func (v *View) Zoom() int            { return v.zoom }
