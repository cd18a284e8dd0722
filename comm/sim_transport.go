// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"math"
	"sync"

	"github.com/cpmech/nsflow/types"
)

// cyclicBarrier is a reusable rendezvous point for a fixed number of
// goroutines, used by SimCluster to emulate an MPI_Barrier without a real
// MPI runtime.
type cyclicBarrier struct {
	n     int
	mu    sync.Mutex
	cond  *sync.Cond
	count int
	gen   int
}

func newCyclicBarrier(n int) *cyclicBarrier {
	b := &cyclicBarrier{n: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until all n participants have called Wait in this
// generation.
func (b *cyclicBarrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()
	gen := b.gen
	b.count++
	if b.count == b.n {
		b.count = 0
		b.gen++
		b.cond.Broadcast()
		return
	}
	for gen == b.gen {
		b.cond.Wait()
	}
}

// simHub is the shared state behind a SimCluster: direct channels for
// point-to-point Send/Recv and a barrier-gated scratch area for
// AllReduce.
type simHub struct {
	n      int
	links  [][]chan []types.Real
	barrier *cyclicBarrier

	mu         sync.Mutex
	reduceVals [][]types.Real
}

// NewSimCluster returns n Transport implementations, one per simulated
// rank, wired to exchange messages and reductions in-process. Each
// returned Transport must be driven from its own goroutine -- this is how
// the package's tests exercise multi-rank halo exchange (spec scenario:
// 2x2 decomposition) without a real MPI runtime.
func NewSimCluster(n int) []Transport {
	hub := &simHub{n: n, barrier: newCyclicBarrier(n)}
	hub.links = make([][]chan []types.Real, n)
	for i := range hub.links {
		hub.links[i] = make([]chan []types.Real, n)
		for j := range hub.links[i] {
			hub.links[i][j] = make(chan []types.Real, 1)
		}
	}
	hub.reduceVals = make([][]types.Real, n)
	out := make([]Transport, n)
	for r := 0; r < n; r++ {
		out[r] = &simTransport{rank: r, hub: hub}
	}
	return out
}

type simTransport struct {
	rank int
	hub  *simHub
}

func (t *simTransport) Rank() int { return t.rank }
func (t *simTransport) Size() int { return t.hub.n }
func (t *simTransport) Barrier()  { t.hub.barrier.Wait() }

func (t *simTransport) Send(toProc int, vals []types.Real) {
	cp := append([]types.Real(nil), vals...)
	t.hub.links[t.rank][toProc] <- cp
}

func (t *simTransport) Recv(fromProc int, vals []types.Real) {
	cp := <-t.hub.links[fromProc][t.rank]
	copy(vals, cp)
}

func (t *simTransport) allReduce(dest, orig []types.Real, combine func(a, b types.Real) types.Real) {
	t.hub.mu.Lock()
	t.hub.reduceVals[t.rank] = append([]types.Real(nil), orig...)
	t.hub.mu.Unlock()
	t.hub.barrier.Wait()

	n := len(orig)
	result := make([]types.Real, n)
	copy(result, t.hub.reduceVals[0])
	for r := 1; r < t.hub.n; r++ {
		for i := 0; i < n; i++ {
			result[i] = combine(result[i], t.hub.reduceVals[r][i])
		}
	}
	copy(dest, result)
	t.hub.barrier.Wait()
}

func (t *simTransport) AllReduceSum(dest, orig []types.Real) {
	t.allReduce(dest, orig, func(a, b types.Real) types.Real { return a + b })
}
func (t *simTransport) AllReduceMin(dest, orig []types.Real) { t.allReduce(dest, orig, math.Min) }
func (t *simTransport) AllReduceMax(dest, orig []types.Real) { t.allReduce(dest, orig, math.Max) }
