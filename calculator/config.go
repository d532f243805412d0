package calculator

import (
	"fmt"
	"time"

	"gopkg.in/ini.v1"

	"naca/geometry"
	"naca/polar"
)

type Config struct {
	Geometry geometry.Parameters
	Flow     polar.FlowConditions

	// upper bound on sample_count for requests from websocket clients
	MaxPoints int

	XFoil      string
	Iterations int
	Timeout    time.Duration
	WorkDir    string

	Addr string

	LogLevel string
	LogFile  string
}

// LoadConfig reads an ini file. An empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return loadCfg(ini.Empty()), nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return loadCfg(file), nil
}

func loadCfg(file *ini.File) *Config {
	g := file.Section("geometry")
	f := file.Section("flow")
	s := file.Section("solver")

	// chord is entered in millimeters
	chord := g.Key("chord_mm").MustFloat64(300) / 1000

	return &Config{
		Geometry: geometry.Parameters{
			ThicknessRatio: g.Key("thickness").MustFloat64(0.12),
			MaxCamberRatio: g.Key("camber").MustFloat64(0.04),
			CamberPosition: g.Key("camber_position").MustFloat64(0.4),
			ChordLength:    chord,
			SampleCount:    g.Key("points").MustInt(400),
			Inverted:       g.Key("inverted").MustBool(false),
		},
		Flow: polar.FlowConditions{
			Reynolds:     f.Key("reynolds").MustFloat64(500000),
			Mach:         f.Key("mach").MustFloat64(0.5),
			Alpha:        f.Key("alpha").MustFloat64(1),
			ChordLength:  chord,
			AirDensity:   f.Key("air_density").MustFloat64(polar.DefaultAirDensity),
			AirViscosity: f.Key("air_viscosity").MustFloat64(polar.DefaultAirViscosity),
		},
		MaxPoints:  g.Key("max_points").MustInt(400),
		XFoil:      s.Key("executable").MustString("xfoil"),
		Iterations: s.Key("iterations").MustInt(100),
		Timeout:    s.Key("timeout").MustDuration(time.Minute),
		WorkDir:    s.Key("work_dir").String(),
		Addr:       file.Section("server").Key("addr").MustString(":9000"),
		LogLevel:   file.Section("log").Key("level").MustString("info"),
		LogFile:    file.Section("log").Key("file").String(),
	}
}
