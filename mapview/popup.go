package mapview

import (
	"html/template"
	"strings"

	"atmlocator/model"
)

var popupTemplate = template.Must(template.New("popup").Parse(`<div class="custom-info-window">
  <h3>{{.Name}}</h3>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Address:</strong> {{.Address}}</p>
  <p><strong>Branch code:</strong> {{.BranchCode}}</p>
  <p><strong>Branch Manager:</strong> {{.BranchManager}}</p>
  <p><strong>Latitude:</strong> {{.Latitude}}</p>
  <p><strong>Longitude:</strong> {{.Longitude}}</p>
  <p><strong>Phone:</strong> {{.Phone}}</p>
  <p><strong>Working Hours:</strong> {{.WorkingHours}}</p>
</div>`))

// RenderPopup renders the info window body for atm. Values are HTML-escaped.
func RenderPopup(atm model.Atm) (string, error) {
	var b strings.Builder
	if err := popupTemplate.Execute(&b, atm); err != nil {
		return "", err
	}
	return b.String(), nil
}
