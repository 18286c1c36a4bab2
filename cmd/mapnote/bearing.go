package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"mapnote/internal/domain/entity"
	"mapnote/internal/domain/geodesy"
)

var (
	bearingFrom string
	bearingTo   string
)

var bearingCmd = &cobra.Command{
	Use:   "bearing",
	Short: "Print the direction and distance between two points",
	Long: `Compute the initial great-circle bearing and distance from one point to another,
the same way the direction tool measures from its main point.
Points are given as "lat,lng" in degrees.`,
	Example: `  mapnote bearing --from 0,0 --to 1,0`,
	Args:    cobra.NoArgs,
	RunE:    runBearing,
}

func init() {
	rootCmd.AddCommand(bearingCmd)

	bearingCmd.Flags().StringVar(&bearingFrom, "from", "", "Main point as lat,lng")
	bearingCmd.Flags().StringVar(&bearingTo, "to", "", "Measured point as lat,lng")

	_ = bearingCmd.MarkFlagRequired("from")
	_ = bearingCmd.MarkFlagRequired("to")
}

func runBearing(cmd *cobra.Command, _ []string) error {
	from, err := parsePoint(bearingFrom)
	if err != nil {
		return errors.Wrap(err, "--from")
	}
	to, err := parsePoint(bearingTo)
	if err != nil {
		return errors.Wrap(err, "--to")
	}

	bearing := geodesy.Bearing(from, to)
	fmt.Fprintf(cmd.OutOrStdout(), "Direction: %s (%.1f°)\nDistance: %.0f meters\n",
		geodesy.Cardinal(bearing), bearing, geodesy.Distance(from, to))

	return nil
}

func parsePoint(raw string) (entity.Point, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return entity.Point{}, errors.Errorf("expected lat,lng but got %q", raw)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return entity.Point{}, errors.Wrap(err, "latitude")
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return entity.Point{}, errors.Wrap(err, "longitude")
	}

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return entity.Point{}, errors.Errorf("coordinate out of range: %q", raw)
	}

	return entity.Point{Lat: lat, Lng: lng}, nil
}
