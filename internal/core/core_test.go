package core

import (
	"sync"
	"testing"
	"time"
)

func TestManualTickerDeliversUntilStopped(t *testing.T) {
	m := NewManualTicker()
	got := make(chan time.Time, 1)
	go func() { got <- <-m.C() }()

	if !m.Tick() {
		t.Fatal("tick should be delivered to a waiting consumer")
	}
	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("consumer never received the tick")
	}

	m.Stop()
	m.Stop()
	if m.Tick() {
		t.Fatal("tick after Stop must not be delivered")
	}
}

func TestManualTickerConcurrentStop(t *testing.T) {
	for i := 0; i < 100; i++ {
		m := NewManualTicker()
		var wg sync.WaitGroup
		for j := 0; j < 4; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				m.Stop()
			}()
		}
		wg.Wait()
		if m.Tick() {
			t.Fatal("tick after Stop must not be delivered")
		}
	}
}

func TestNewTickerFallsBackToDefault(t *testing.T) {
	tk := NewTicker(0)
	defer tk.Stop()
	if tk.C() == nil {
		t.Fatal("ticker channel must not be nil")
	}
}

func TestParameterSnapshotLookup(t *testing.T) {
	s := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "Board", Params: []Parameter{IntParam("w", "Width", 30), FloatParam("live_chance", "Live chance", 0.5)}},
		{Name: "Run", Params: []Parameter{BoolParam("running", "Running", true), Int64Param("generation", "Generation", 12)}},
	}}

	cases := map[string]string{
		"w":           "30",
		"live_chance": "0.5",
		"running":     "true",
		"generation":  "12",
	}
	for key, want := range cases {
		p, ok := s.Lookup(key)
		if !ok {
			t.Fatalf("missing %q", key)
		}
		if p.Value != want {
			t.Fatalf("%s = %q, want %q", key, p.Value, want)
		}
	}
	if _, ok := s.Lookup("missing"); ok {
		t.Fatal("unexpected hit for unknown key")
	}
}
