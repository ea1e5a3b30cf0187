package cmd

import (
	"fmt"

	"atmlocator/logger"
	"atmlocator/mapview"
	"atmlocator/model"

	"github.com/spf13/cobra"
)

type viewFlags struct {
	source     string
	field      string
	writeKey   string
	city       string
	here       string
	noLocation bool
	selectName string
	click      string
	form       mapview.MarkerForm
}

func newViewCmd() *cobra.Command {
	var f viewFlags

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Run the map view against a source and print what the map would show",
		Long: `Loads ATM locations from an HTTP endpoint or a static JSON file, positions
the map, and prints the overlays. --select simulates a marker click and
--click plus --name simulates adding a marker at a map position.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			log := logger.NewWithWriter(cfg.Env, cmd.ErrOrStderr())

			if f.source == "" {
				f.source = cfg.AtmSource
			}
			if f.field == "" {
				f.field = cfg.AtmSourceField
			}

			source := mapview.NewSource(f.source, f.field)
			if httpSource, ok := source.(*mapview.HTTPSource); ok {
				httpSource.WriteKey = f.writeKey
				httpSource.Log = log
			}

			opts := []mapview.Option{mapview.WithLogger(log)}
			if f.noLocation {
				opts = append(opts, mapview.WithoutCurrentLocation())
			} else {
				geo := mapview.FixedGeolocator{}
				if f.here != "" {
					pos, err := mapview.ParseLatLng(f.here)
					if err != nil {
						return fmt.Errorf("--here: %w", err)
					}
					geo.Position = &pos
				}
				opts = append(opts, mapview.WithGeolocator(geo))
			}

			out := cmd.OutOrStdout()
			view := mapview.New(source, &mapview.ConsoleWidget{Out: out}, &mapview.ConsoleNotifier{Out: out}, opts...)

			ctx := cmd.Context()
			// a failed load leaves an empty map; the error is already logged
			_ = view.Init(ctx)

			if f.city != "" {
				view.SelectCity(f.city)
			}

			if f.selectName != "" {
				view.HandleOverlayClick(findOverlay(view.Overlays(), f.selectName))
			}

			if f.click != "" {
				pos, err := mapview.ParseLatLng(f.click)
				if err != nil {
					return fmt.Errorf("--click: %w", err)
				}
				view.HandleMapClick(pos)
				return view.SubmitMarker(ctx, f.form)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.source, "source", "", "list endpoint URL or JSON file (default $ATM_SOURCE)")
	flags.StringVar(&f.field, "field", "", "array field for object-shaped payloads (default $ATM_SOURCE_FIELD)")
	flags.StringVar(&f.writeKey, "write-key", "", "X-Api-Key sent when adding a marker")
	flags.StringVar(&f.city, "city", "", fmt.Sprintf("region to show, one of %v", mapview.Regions()))
	flags.StringVar(&f.here, "here", "", "device position as lat,lng; unset means geolocation is unavailable")
	flags.BoolVar(&f.noLocation, "no-location", false, "do not show the current location marker")
	flags.StringVar(&f.selectName, "select", "", "click the marker with this title; an unknown title clicks a shape")
	flags.StringVar(&f.click, "click", "", "click the map at lat,lng and submit a new marker there")
	flags.StringVar(&f.form.Id, "id", "", "id of the new marker")
	flags.StringVar(&f.form.Name, "name", "", "name of the new marker")
	flags.StringVar(&f.form.Address, "address", "", "address of the new marker")
	flags.StringVar(&f.form.BranchCode, "branch-code", "", "branch code of the new marker")
	flags.StringVar(&f.form.BranchManager, "manager", "", "branch manager of the new marker")
	flags.StringVar(&f.form.Phone, "phone", "", "phone of the new marker")
	flags.StringVar(&f.form.WorkingHours, "hours", "", "working hours of the new marker")

	return cmd
}

func findOverlay(overlays []model.Overlay, title string) model.Overlay {
	for _, o := range overlays {
		if o.Title == title {
			return o
		}
	}
	return model.Overlay{Kind: model.OverlayShape}
}
