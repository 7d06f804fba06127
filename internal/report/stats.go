package report

import (
	"sync"

	"chessrules/internal/engine"
)

// Stats is an optional, caller-owned telemetry counter. The classification
// service itself stays stateless; whoever wants counts creates and owns a
// Stats value explicitly.
type Stats struct {
	mu         sync.Mutex
	total      int
	byCategory map[Category]int
	byCode     map[engine.ErrorCode]int
}

func NewStats() *Stats {
	return &Stats{
		byCategory: make(map[Category]int),
		byCode:     make(map[engine.ErrorCode]int),
	}
}

func (s *Stats) Record(code engine.ErrorCode) {
	cl := Classify(code)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	s.byCategory[cl.Category]++
	s.byCode[code]++
}

func (s *Stats) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *Stats) CountByCategory(c Category) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byCategory[c]
}

func (s *Stats) CountByCode(code engine.ErrorCode) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byCode[code]
}
