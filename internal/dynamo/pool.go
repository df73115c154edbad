package dynamo

import "sync"

// VectorPool recycles scratch vectors of up to MaxDim components. It is safe
// for concurrent use, so integrators can share one across worker goroutines.
type VectorPool struct {
	pool sync.Pool
}

func NewVectorPool() *VectorPool {
	return &VectorPool{
		pool: sync.Pool{
			New: func() any {
				return new([MaxDim]float64)
			},
		},
	}
}

// Get returns a zeroed vector of length n. n must not exceed MaxDim.
func (p *VectorPool) Get(n int) Vector {
	buf := p.pool.Get().(*[MaxDim]float64)
	*buf = [MaxDim]float64{}
	return Vector(buf[:n])
}

func (p *VectorPool) Put(v Vector) {
	if cap(v) != MaxDim {
		return
	}
	p.pool.Put((*[MaxDim]float64)(v[:MaxDim]))
}
