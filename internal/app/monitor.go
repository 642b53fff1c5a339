package app

import (
	"sync"
	"time"

	"github.com/ayusman/handmouse/internal/detector"
)

// Snapshot is the latest loop output as seen by observers.
type Snapshot struct {
	Sequence  uint64                   `json:"sequence"`
	Timestamp int64                    `json:"timestamp"`
	Hands     []detector.HandLandmarks `json:"hands"`
	Decision  Decision                 `json:"decision"`
}

// Monitor holds the last rendered frame and decision for out-of-loop readers.
type Monitor struct {
	mu       sync.RWMutex
	seq      uint64
	at       time.Time
	jpeg     []byte
	hand     *detector.HandLandmarks
	decision Decision
	watchers int
}

// NewMonitor creates an empty Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// Watch registers interest in encoded frames. Call the returned func when done.
func (m *Monitor) Watch() func() {
	m.mu.Lock()
	m.watchers++
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.watchers--
			m.mu.Unlock()
		})
	}
}

// Watching reports whether anyone wants encoded frames.
func (m *Monitor) Watching() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.watchers > 0
}

// Publish stores the output of one loop iteration. A nil jpeg keeps the
// previous frame.
func (m *Monitor) Publish(jpeg []byte, hand *detector.HandLandmarks, d Decision) {
	var copied *detector.HandLandmarks
	if hand != nil {
		h := *hand
		copied = &h
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	m.at = time.Now()
	if jpeg != nil {
		m.jpeg = jpeg
	}
	m.hand = copied
	m.decision = d
}

// Frame returns the last encoded frame and the sequence it was published with.
func (m *Monitor) Frame() ([]byte, uint64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.jpeg, m.seq
}

// Snapshot returns the last landmarks and decision.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Snapshot{
		Sequence: m.seq,
		Hands:    []detector.HandLandmarks{},
		Decision: m.decision,
	}
	if !m.at.IsZero() {
		s.Timestamp = m.at.UnixMilli()
	}
	if m.hand != nil {
		s.Hands = append(s.Hands, *m.hand)
	}
	return s
}
