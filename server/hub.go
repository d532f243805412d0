package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"naca/calculator"
	"naca/geometry"
	"naca/model"
	"naca/polar"
)

// GeometryData is the content of a "geometry" reply.
type GeometryData struct {
	Name           string           `json:"name"`
	Inverted       bool             `json:"inverted"`
	Loop           []geometry.Point `json:"loop"`
	Camber         []geometry.Point `json:"camber"`
	MaxThickness   float64          `json:"max_thickness"`
	MaxThicknessAt float64          `json:"max_thickness_at"`
}

// ForcesData is the content of a "forces" reply.
type ForcesData struct {
	Name   string       `json:"name"`
	Polar  polar.Polar  `json:"polar"`
	Forces polar.Forces `json:"forces"`
}

const queueSize = 10

var errCancelled = errors.New("analysis cancelled")

// request is a queued message. stops is the number of stop messages read
// before it; an analysis queued ahead of a stop is not run.
type request struct {
	msg   model.Msg
	stops int
}

// Hub serves one websocket connection. Requests are handled in order by a
// single goroutine, which is also the only writer to the connection.
type Hub struct {
	calc *calculator.Calculator
	conn *websocket.Conn

	msg      chan request
	done     chan struct{}
	finished chan struct{}

	env model.Env

	ctx       context.Context
	cancelAll context.CancelFunc

	mu      sync.Mutex
	cancel  context.CancelFunc // in-flight analysis
	stops   int
	dropped int
}

func NewHub(calc *calculator.Calculator, conn *websocket.Conn) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		calc:      calc,
		conn:      conn,
		msg:       make(chan request, queueSize),
		done:      make(chan struct{}),
		finished:  make(chan struct{}),
		env:       envFromConfig(calc.Config()),
		ctx:       ctx,
		cancelAll: cancel,
	}
}

func envFromConfig(cfg *calculator.Config) model.Env {
	return model.Env{
		ThicknessRatio: cfg.Geometry.ThicknessRatio,
		MaxCamberRatio: cfg.Geometry.MaxCamberRatio,
		CamberPosition: cfg.Geometry.CamberPosition,
		ChordLengthMM:  cfg.Geometry.ChordLength * 1000,
		SampleCount:    cfg.Geometry.SampleCount,
		Inverted:       cfg.Geometry.Inverted,
		Reynolds:       cfg.Flow.Reynolds,
		Mach:           cfg.Flow.Mach,
		Alpha:          cfg.Flow.Alpha,
	}
}

func (h *Hub) parameters() (geometry.Parameters, polar.FlowConditions) {
	p := geometry.Parameters{
		ThicknessRatio: h.env.ThicknessRatio,
		MaxCamberRatio: h.env.MaxCamberRatio,
		CamberPosition: h.env.CamberPosition,
		ChordLength:    h.env.ChordLengthMM / 1000,
		SampleCount:    h.env.SampleCount,
		Inverted:       h.env.Inverted,
	}
	f := h.calc.Config().Flow
	f.Reynolds = h.env.Reynolds
	f.Mach = h.env.Mach
	f.Alpha = h.env.Alpha
	f.ChordLength = p.ChordLength
	return p, f
}

func (h *Hub) handleRequest() {
	defer close(h.finished)
	for {
		select {
		case req := <-h.msg:
			replies, err := h.handle(req)
			if err != nil {
				log.WithField("type", req.msg.Type).WithError(err).Warn("request failed")
				replies = []model.Msg{errorMsg(err)}
			}
			if n := h.takeDropped(); n > 0 {
				replies = append(replies, errorMsg(fmt.Errorf("%d requests dropped: too many pending requests", n)))
			}
			for _, reply := range replies {
				if err := h.conn.WriteJSON(&reply); err != nil {
					log.WithError(err).Warn("write failed")
				}
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handle(req request) ([]model.Msg, error) {
	msg := req.msg
	switch msg.Type {
	case model.MsgEnv:
		env := h.env
		if err := json.NewDecoder(strings.NewReader(msg.Content)).Decode(&env); err != nil {
			return nil, fmt.Errorf("decoding env: %w", err)
		}
		old := h.env
		h.env = env
		p, f := h.parameters()
		if err := p.Validate(); err != nil {
			h.env = old
			return nil, err
		}
		if limit := h.calc.Config().MaxPoints; limit > 0 && p.SampleCount > limit {
			h.env = old
			return nil, model.NewParameterError("sample_count", p.SampleCount, fmt.Sprintf("must be at most %d", limit))
		}
		if err := f.Validate(); err != nil {
			h.env = old
			return nil, err
		}
		log.WithFields(log.Fields{
			"name":     geometry.Name(p),
			"chord":    p.ChordLength,
			"points":   p.SampleCount,
			"inverted": p.Inverted,
			"reynolds": f.Reynolds,
			"mach":     f.Mach,
			"alpha":    f.Alpha,
		}).Info("env set")
		return []model.Msg{{Type: model.MsgEnvSet, Content: "env is set"}}, nil

	case model.MsgStart:
		p, _ := h.parameters()
		g, err := h.calc.Generate(p)
		if err != nil {
			return nil, err
		}
		t, x := g.MaxThickness()
		return reply(model.MsgGeom, GeometryData{
			Name:           geometry.Name(p),
			Inverted:       p.Inverted,
			Loop:           g.Loop,
			Camber:         g.CamberPoints(),
			MaxThickness:   t,
			MaxThicknessAt: x,
		})

	case model.MsgExport:
		p, _ := h.parameters()
		g, err := h.calc.Generate(p)
		if err != nil {
			return nil, err
		}
		var dat, csv strings.Builder
		if err := geometry.WriteDat(&dat, g); err != nil {
			return nil, err
		}
		if err := geometry.WriteCSV(&csv, g); err != nil {
			return nil, err
		}
		return []model.Msg{
			{Type: model.MsgDat, Content: dat.String()},
			{Type: model.MsgCSV, Content: csv.String()},
		}, nil

	case model.MsgAnalyze:
		return h.analyze(req.stops)

	case model.MsgStop:
		return []model.Msg{{Type: model.MsgStopped, Content: "stopped"}}, nil

	default:
		return nil, fmt.Errorf("no such type %q", msg.Type)
	}
}

func (h *Hub) analyze(stops int) ([]model.Msg, error) {
	ctx, cancel := context.WithCancel(h.ctx)
	h.mu.Lock()
	if stops != h.stops {
		h.mu.Unlock()
		cancel()
		return nil, fmt.Errorf("%w: %w", errCancelled, context.Canceled)
	}
	h.cancel = cancel
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		h.cancel = nil
		h.mu.Unlock()
		cancel()
	}()

	p, f := h.parameters()
	res, err := h.calc.Analyze(ctx, p, f)
	if err != nil {
		return nil, err
	}
	return reply(model.MsgForces, ForcesData{Name: res.Name, Polar: res.Polar, Forces: res.Forces})
}

// enqueue hands msg to the request handler. Called from the reader, which
// must keep reading so that a stop is seen while the handler is busy: a stop
// cancels the analysis in progress and every analysis queued before it, and
// a message that finds the queue full is dropped and reported.
func (h *Hub) enqueue(msg model.Msg) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if msg.Type == model.MsgStop {
		h.stops++
		if h.cancel != nil {
			h.cancel()
		}
	}
	select {
	case h.msg <- request{msg: msg, stops: h.stops}:
	default:
		h.dropped++
		log.WithField("type", msg.Type).Warn("request queue full, message dropped")
	}
}

func (h *Hub) takeDropped() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := h.dropped
	h.dropped = 0
	return n
}

// close stops the request handler and waits for it to return.
func (h *Hub) close() {
	h.cancelAll()
	close(h.done)
	<-h.finished
}

func errorMsg(err error) model.Msg {
	return model.Msg{Type: model.MsgError, Content: err.Error()}
}

func reply(typ string, v interface{}) ([]model.Msg, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []model.Msg{{Type: typ, Content: string(data)}}, nil
}
