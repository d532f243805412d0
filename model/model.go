package model

// Env is the session environment sent by a client with an "env" message.
// Chord length is given in millimeters, as entered in the parameter panel.
type Env struct {
	ThicknessRatio float64 `json:"thickness_ratio"`
	MaxCamberRatio float64 `json:"max_camber_ratio"`
	CamberPosition float64 `json:"camber_position"`
	ChordLengthMM  float64 `json:"chord_length_mm"`
	SampleCount    int     `json:"sample_count"`
	Inverted       bool    `json:"inverted"`

	Reynolds float64 `json:"reynolds"`
	Mach     float64 `json:"mach"`
	Alpha    float64 `json:"alpha"`
}

// Msg is the envelope of every message between the front end and the back end.
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Message types exchanged over the websocket.
const (
	MsgEnv     = "env"
	MsgEnvSet  = "envSet"
	MsgStart   = "start"
	MsgGeom    = "geometry"
	MsgExport  = "export"
	MsgDat     = "dat"
	MsgCSV     = "csv"
	MsgAnalyze = "analyze"
	MsgForces  = "forces"
	MsgStop    = "stop"
	MsgStopped = "stopped"
	MsgError   = "error"
)
