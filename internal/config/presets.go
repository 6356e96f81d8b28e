package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Presets are named chart geometries accepted wherever an explicit
// WIDTHxHEIGHT size is.
var Presets = map[string]ChartConfig{
	"small":  {Width: 480, Height: 360},
	"medium": {Width: DefaultChartWidth, Height: DefaultChartHeight},
	"large":  {Width: 1280, Height: 960},
	"wide":   {Width: 1440, Height: 480},
}

func GetPreset(name string) *ChartConfig {
	preset, ok := Presets[name]
	if !ok {
		return nil
	}
	return &preset
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveSize interprets a size argument as either a preset name or an
// explicit WIDTHxHEIGHT pair.
func ResolveSize(s string) (w, h int, err error) {
	if preset := GetPreset(s); preset != nil {
		return preset.Width, preset.Height, nil
	}
	ws, hs, ok := strings.Cut(s, "x")
	if ok {
		w, werr := strconv.Atoi(ws)
		h, herr := strconv.Atoi(hs)
		if werr == nil && herr == nil && w > 0 && h > 0 {
			return w, h, nil
		}
	}
	return 0, 0, fmt.Errorf("config: bad size %q, want WIDTHxHEIGHT or one of %s",
		s, strings.Join(ListPresets(), ", "))
}
