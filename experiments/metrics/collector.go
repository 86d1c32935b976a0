package metrics

import (
	"sync/atomic"
	"time"
)

type SimulationMetric struct {
	Goroutines int
	Duration   time.Duration
	Playouts   int
	Plies      int
	Passes     int
	Draws      int
}

// PlayoutsPerSecond is the simulation throughput.
func (m SimulationMetric) PlayoutsPerSecond() float64 {
	if m.Duration <= 0 {
		return 0
	}
	return float64(m.Playouts) / m.Duration.Seconds()
}

type MoveMetric struct {
	Ply    int
	Player string
	SimulationMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines int)
	// Add records a batch of finished playouts, typically once per worker.
	Add(playouts, plies, passes, draws int)
	Complete() SimulationMetric
}

type collector struct {
	goroutines int
	startTime  time.Time
	playouts   atomic.Int64
	plies      atomic.Int64
	passes     atomic.Int64
	draws      atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.playouts.Store(0)
	m.plies.Store(0)
	m.passes.Store(0)
	m.draws.Store(0)
}

func (m *collector) Add(playouts, plies, passes, draws int) {
	m.playouts.Add(int64(playouts))
	m.plies.Add(int64(plies))
	m.passes.Add(int64(passes))
	m.draws.Add(int64(draws))
}

func (m *collector) Complete() SimulationMetric {
	return SimulationMetric{
		Goroutines: m.goroutines,
		Duration:   time.Since(m.startTime),
		Playouts:   int(m.playouts.Load()),
		Plies:      int(m.plies.Load()),
		Passes:     int(m.passes.Load()),
		Draws:      int(m.draws.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int)                   {}
func (m *dummyCollector) Add(playouts, plies, passes, draws int) {}
func (m *dummyCollector) Complete() SimulationMetric             { return SimulationMetric{} }
