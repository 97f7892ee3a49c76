package plugin

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

func TestParamStore_LoadStore(t *testing.T) {
	s := NewParamStore(eq.DefaultParams())
	assert.Equal(t, eq.DefaultParams(), s.Load())

	p := eq.DefaultParams()
	p.PeakGainDB = 3
	s.Store(p)
	assert.Equal(t, 3.0, s.Load().PeakGainDB)
}

func TestParamStore_NotifiesListeners(t *testing.T) {
	s := NewParamStore(eq.DefaultParams())

	var got []float64
	cancel := s.OnChange(func(p eq.Params) { got = append(got, p.PeakFreq) })

	s.Update(func(p *eq.Params) { p.PeakFreq = 1000 })
	s.Update(func(p *eq.Params) { p.PeakFreq = 2000 })
	cancel()
	s.Update(func(p *eq.Params) { p.PeakFreq = 3000 })

	require.Equal(t, []float64{1000, 2000}, got)
	assert.Equal(t, 3000.0, s.Load().PeakFreq)
}

func TestParamStore_ConcurrentAccess(t *testing.T) {
	s := NewParamStore(eq.DefaultParams())
	var notified sync.WaitGroup
	notified.Add(100)
	cancel := s.OnChange(func(eq.Params) { notified.Done() })
	defer cancel()

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := range 25 {
				s.Update(func(p *eq.Params) { p.PeakGainDB = float64(i*25 + j) })
			}
		}()
		go func() {
			defer wg.Done()
			for range 100 {
				_ = s.Load()
			}
		}()
	}
	wg.Wait()
	notified.Wait()
}
