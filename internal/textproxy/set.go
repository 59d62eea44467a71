package textproxy

import "scrollgl/internal/dom"

// Set is every proxy created for one page.
type Set struct {
	proxies []*Proxy
}

// NewSet creates one proxy per node, in order. An empty node list is valid.
func NewSet(nodes []dom.Node, deps Deps, opts ...Option) *Set {
	s := &Set{proxies: make([]*Proxy, 0, len(nodes))}
	for _, n := range nodes {
		s.proxies = append(s.proxies, New(n, deps, opts...))
	}
	return s
}

func (s *Set) Proxies() []*Proxy { return s.proxies }
func (s *Set) Len() int          { return len(s.proxies) }

func (s *Set) Update() {
	for _, p := range s.proxies {
		p.Update()
	}
}

func (s *Set) OnResize() {
	for _, p := range s.proxies {
		p.OnResize()
	}
}

func (s *Set) Destroy() {
	for _, p := range s.proxies {
		p.Destroy()
	}
	s.proxies = nil
}
