package sim

// Pool is the mutable server and queue state owned by one run.
// Dedicated systems hold one queue per server; shared systems hold a single queue.
type Pool struct {
	Servers []*Server
	Queues  []*WaitQueue
	service ServiceRange
}

// newPool builds the initial pool for cfg. cfg must already be validated.
func newPool(cfg SystemConfiguration) *Pool {
	p := &Pool{service: cfg.serviceRange()}
	for i := 0; i < cfg.ServerCount; i++ {
		p.Servers = append(p.Servers, NewServer(p.service))
	}
	switch cfg.Type {
	case DedicatedRandom, DedicatedShortest:
		for i := 0; i < cfg.ServerCount; i++ {
			p.Queues = append(p.Queues, &WaitQueue{})
		}
	case SharedFixed, SharedElastic:
		p.Queues = []*WaitQueue{{}}
	default:
		panic("newPool: unhandled system type " + cfg.Type.String())
	}
	return p
}

// AddServer appends a new Free server and returns the pool size.
func (p *Pool) AddServer() int {
	p.Servers = append(p.Servers, NewServer(p.service))
	return len(p.Servers)
}

// RemoveFreeServers drops every server that is free at now, keeping the
// relative order of busy ones. Returns the number removed.
func (p *Pool) RemoveFreeServers(now float64) int {
	kept := p.Servers[:0]
	removed := 0
	for _, s := range p.Servers {
		if s.IsFree(now) {
			s.Reset()
			removed++
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(p.Servers); i++ {
		p.Servers[i] = nil
	}
	p.Servers = kept
	return removed
}

// Size returns the number of servers in the pool.
func (p *Pool) Size() int {
	return len(p.Servers)
}

// BusyCount returns the number of servers busy at now.
func (p *Pool) BusyCount(now float64) int {
	n := 0
	for _, s := range p.Servers {
		if !s.IsFree(now) {
			n++
		}
	}
	return n
}

// QueuedCount returns the number of clients waiting across all queues.
func (p *Pool) QueuedCount() int {
	n := 0
	for _, q := range p.Queues {
		n += q.Len()
	}
	return n
}
