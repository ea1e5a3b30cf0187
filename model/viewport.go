package model

type ViewportPreset struct {
	Name   string
	Center LatLng
	Zoom   int
}

type OverlayKind string

const (
	OverlayMarker OverlayKind = "marker"
	OverlayShape  OverlayKind = "shape"
)

// Overlay is anything drawn on the map. Shapes carry no title.
type Overlay struct {
	Kind     OverlayKind
	Position LatLng
	Title    string
	Icon     string
}

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notice is a transient toast shown to the user.
type Notice struct {
	Severity Severity
	Summary  string
	Detail   string
}
