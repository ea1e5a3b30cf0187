package mapview

import (
	"context"
	"errors"
	"testing"

	"atmlocator/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) List(ctx context.Context) ([]model.Atm, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Atm), args.Error(1)
}

func (m *MockSource) Create(ctx context.Context, atm model.Atm) (model.Atm, error) {
	args := m.Called(ctx, atm)
	return args.Get(0).(model.Atm), args.Error(1)
}

type fakeWidget struct {
	center   model.LatLng
	zoom     int
	overlays []model.Overlay
	added    []model.Overlay
	popups   []string
}

func (w *fakeWidget) SetCenter(center model.LatLng) {
	w.center = center
}

func (w *fakeWidget) SetZoom(zoom int) {
	w.zoom = zoom
}

func (w *fakeWidget) SetOverlays(overlays []model.Overlay) {
	w.overlays = overlays
	w.added = nil
}

func (w *fakeWidget) AddOverlay(overlay model.Overlay) {
	w.added = append(w.added, overlay)
}

func (w *fakeWidget) OpenPopup(_ model.Overlay, content string) {
	w.popups = append(w.popups, content)
}

// drawn counts what is on the map right now.
func (w *fakeWidget) drawn() int {
	return len(w.overlays) + len(w.added)
}

type fakeNotifier struct {
	notices []model.Notice
}

func (n *fakeNotifier) Notify(notice model.Notice) { n.notices = append(n.notices, notice) }

func (n *fakeNotifier) last() model.Notice {
	if len(n.notices) == 0 {
		return model.Notice{}
	}
	return n.notices[len(n.notices)-1]
}

var sampleAtms = []model.Atm{
	{Id: "1", Name: "HBL Blue Area", Address: "Jinnah Ave", BranchCode: "0123", BranchManager: "Ali", Latitude: 33.7104, Longitude: 73.0551, Phone: "051-111", WorkingHours: "9-5"},
	{Id: "2", Name: "MCB Saddar", Address: "Bank Rd", BranchCode: "0456", BranchManager: "Sara", Latitude: 33.5973, Longitude: 73.0479, Phone: "051-222", WorkingHours: "24/7"},
	{Id: "3", Name: "UBL Liberty", Address: "Gulberg III", BranchCode: "0789", BranchManager: "Bilal", Latitude: 31.5102, Longitude: 74.3441, Phone: "042-333", WorkingHours: "10-6"},
}

func newTestView(t *testing.T, src Source, opts ...Option) (*View, *fakeWidget, *fakeNotifier) {
	t.Helper()
	w := &fakeWidget{}
	n := &fakeNotifier{}
	return New(src, w, n, opts...), w, n
}

func TestInit_OverlayCount(t *testing.T) {
	here := model.LatLng{Lat: 33.65, Lng: 73.0}

	tests := []struct {
		name          string
		opts          []Option
		expectedCount int
		expectedZoom  int
		expectedPos   model.LatLng
	}{
		{
			name:          "geolocation succeeds",
			opts:          []Option{WithGeolocator(FixedGeolocator{Position: &here})},
			expectedCount: len(sampleAtms) + 1,
			expectedZoom:  LocatedZoom,
			expectedPos:   here,
		},
		{
			name:          "geolocation unavailable falls back to default center",
			opts:          []Option{WithGeolocator(FixedGeolocator{})},
			expectedCount: len(sampleAtms) + 1,
			expectedZoom:  ResolveViewport(DefaultRegion).Zoom,
			expectedPos:   ResolveViewport(DefaultRegion).Center,
		},
		{
			name:          "geolocation suppressed",
			opts:          []Option{WithGeolocator(FixedGeolocator{Position: &here}), WithoutCurrentLocation()},
			expectedCount: len(sampleAtms),
			expectedZoom:  ResolveViewport(DefaultRegion).Zoom,
			expectedPos:   ResolveViewport(DefaultRegion).Center,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(MockSource)
			src.On("List", mock.Anything).Return(sampleAtms, nil).Once()

			v, w, _ := newTestView(t, src, tt.opts...)
			require.NoError(t, v.Init(context.Background()))

			assert.Len(t, v.Overlays(), tt.expectedCount)
			assert.Len(t, w.overlays, tt.expectedCount)
			assert.Equal(t, tt.expectedZoom, w.zoom)
			assert.Equal(t, tt.expectedPos, w.center)

			if tt.expectedCount > len(sampleAtms) {
				current := v.Overlays()[len(sampleAtms)]
				assert.Equal(t, CurrentLocationTitle, current.Title)
				assert.Equal(t, tt.expectedPos, current.Position)
			}
			src.AssertExpectations(t)
		})
	}
}

func TestInit_LoadFailureLeavesViewEmpty(t *testing.T) {
	src := new(MockSource)
	src.On("List", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	v, w, _ := newTestView(t, src)
	err := v.Init(context.Background())

	assert.Error(t, err)
	assert.Empty(t, v.Records())
	assert.Empty(t, v.Overlays())
	assert.Equal(t, ResolveViewport(DefaultRegion).Center, w.center)
	src.AssertNumberOfCalls(t, "List", 1)
}

func TestReload_KeepsListOnFailure(t *testing.T) {
	src := new(MockSource)
	src.On("List", mock.Anything).Return(sampleAtms, nil).Once()
	src.On("List", mock.Anything).Return(nil, errors.New("timeout")).Once()

	v, _, _ := newTestView(t, src)
	require.NoError(t, v.Init(context.Background()))
	require.Error(t, v.Reload(context.Background()))

	assert.Equal(t, sampleAtms, v.Records())
	assert.Len(t, v.Overlays(), len(sampleAtms))
}

func TestSelectCity(t *testing.T) {
	src := new(MockSource)
	src.On("List", mock.Anything).Return(sampleAtms, nil)
	here := model.LatLng{Lat: 33.65, Lng: 73.0}

	v, w, _ := newTestView(t, src, WithGeolocator(FixedGeolocator{Position: &here}))
	require.NoError(t, v.Init(context.Background()))

	preset := v.SelectCity("Lahore")
	assert.Equal(t, model.LatLng{Lat: 31.5497, Lng: 74.3436}, w.center)
	assert.Equal(t, 13, w.zoom)
	assert.Equal(t, "Lahore", preset.Name)
	assert.Equal(t, "Lahore", v.Region())
	assert.Len(t, w.overlays, len(sampleAtms)+1)

	// the current location marker stays on the device, not the city
	assert.Equal(t, here, w.overlays[len(sampleAtms)].Position)

	preset = v.SelectCity("Karachi")
	assert.Equal(t, DefaultRegion, preset.Name)
	assert.Equal(t, ResolveViewport(DefaultRegion).Center, w.center)
	assert.Equal(t, 12, w.zoom)
}

func TestZoomClamps(t *testing.T) {
	v, w, _ := newTestView(t, new(MockSource))

	assert.Equal(t, 13, v.ZoomIn())
	assert.Equal(t, 13, w.zoom)
	for i := 0; i < 30; i++ {
		v.ZoomIn()
	}
	assert.Equal(t, MaxZoom, v.Zoom())
	for i := 0; i < 30; i++ {
		v.ZoomOut()
	}
	assert.Equal(t, MinZoom, v.Zoom())
}

func TestHandleDragEnd(t *testing.T) {
	v, _, _ := newTestView(t, new(MockSource))
	v.HandleDragEnd(model.LatLng{Lat: 1, Lng: 2})
	assert.Equal(t, model.LatLng{Lat: 1, Lng: 2}, v.Center())
}

func TestHandleOverlayClick(t *testing.T) {
	src := new(MockSource)
	src.On("List", mock.Anything).Return(sampleAtms, nil)

	v, w, n := newTestView(t, src)
	require.NoError(t, v.Init(context.Background()))

	v.HandleOverlayClick(v.Overlays()[1])
	require.Len(t, w.popups, 1)
	popup := w.popups[0]
	for _, want := range []string{"MCB Saddar", "Bank Rd", "0456", "Sara", "33.5973", "73.0479", "051-222", "24/7"} {
		assert.Contains(t, popup, want)
	}
	assert.Equal(t, model.Notice{Severity: model.SeverityInfo, Summary: "Marker Selected", Detail: "MCB Saddar"}, n.last())

	v.HandleOverlayClick(model.Overlay{Kind: model.OverlayShape, Position: model.LatLng{Lat: 1, Lng: 1}})
	assert.Len(t, w.popups, 1)
	assert.Equal(t, "Shape Selected", n.last().Summary)

	v.HandleOverlayClick(model.Overlay{Kind: model.OverlayMarker, Title: "Unknown ATM"})
	assert.Len(t, w.popups, 1)
	assert.Equal(t, "Marker Selected", n.last().Summary)
}

func TestSubmitMarker_Success(t *testing.T) {
	src := new(MockSource)
	src.On("List", mock.Anything).Return(sampleAtms, nil)
	src.On("Create", mock.Anything, mock.MatchedBy(func(a model.Atm) bool {
		return a.Name == "Faysal F-10" && a.Latitude == 33.69 && a.Longitude == 73.01
	})).Return(model.Atm{Id: "42", Name: "Faysal F-10", Latitude: 33.69, Longitude: 73.01}, nil)

	here := model.LatLng{Lat: 33.65, Lng: 73.0}
	v, w, n := newTestView(t, src, WithGeolocator(FixedGeolocator{Position: &here}))
	require.NoError(t, v.Init(context.Background()))
	before := w.drawn()

	v.HandleMapClick(model.LatLng{Lat: 33.69, Lng: 73.01})
	pending, ok := v.Pending()
	require.True(t, ok)
	assert.Equal(t, MarkerForm{}, pending.Form)

	require.NoError(t, v.SubmitMarker(context.Background(), MarkerForm{Name: "Faysal F-10"}))

	assert.Equal(t, before+1, w.drawn())
	require.Len(t, w.added, 1)
	assert.Equal(t, "Faysal F-10", w.added[0].Title)
	assert.Len(t, v.Overlays(), len(sampleAtms)+2)
	assert.Len(t, v.Records(), len(sampleAtms)+1)

	// the view lists overlays in the order the widget draws them
	assert.Equal(t, append(append([]model.Overlay(nil), w.overlays...), w.added...), v.Overlays())
	assert.Equal(t, CurrentLocationTitle, v.Overlays()[len(sampleAtms)].Title)
	assert.Equal(t, "Faysal F-10", v.Overlays()[len(sampleAtms)+1].Title)
	_, ok = v.Pending()
	assert.False(t, ok)
	assert.Equal(t, model.SeveritySuccess, n.last().Severity)

	// the new marker now opens a popup like any loaded one
	v.HandleOverlayClick(w.added[0])
	assert.Len(t, w.popups, 1)
}

func TestSubmitMarker_Failure(t *testing.T) {
	src := new(MockSource)
	src.On("List", mock.Anything).Return(sampleAtms, nil)
	src.On("Create", mock.Anything, mock.Anything).Return(model.Atm{}, errors.New("503"))

	v, w, n := newTestView(t, src)
	require.NoError(t, v.Init(context.Background()))
	before := v.Overlays()

	v.HandleMapClick(model.LatLng{Lat: 33.69, Lng: 73.01})
	err := v.SubmitMarker(context.Background(), MarkerForm{Name: "Faysal F-10"})

	assert.Error(t, err)
	assert.Equal(t, before, v.Overlays())
	assert.Empty(t, w.added)
	assert.Equal(t, model.Notice{Severity: model.SeverityError, Summary: "Error", Detail: "Failed to add marker!"}, n.last())
	_, ok := v.Pending()
	assert.True(t, ok)
}

func TestSubmitMarker_WithoutDialog(t *testing.T) {
	v, _, _ := newTestView(t, new(MockSource))
	assert.ErrorIs(t, v.SubmitMarker(context.Background(), MarkerForm{Name: "x"}), ErrNoPendingMarker)

	v.HandleMapClick(model.LatLng{})
	v.CancelMarker()
	assert.ErrorIs(t, v.SubmitMarker(context.Background(), MarkerForm{Name: "x"}), ErrNoPendingMarker)
}
