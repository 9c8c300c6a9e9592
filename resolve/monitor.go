package resolve

import (
	"github.com/poiesic/medlex/core"
)

// ResolveMonitor provides hooks to observe the resolution process.
// Implement this interface to track intermediate steps and results during
// concept resolution.
type ResolveMonitor interface {
	Start(query string)
	Normalized(normalized string)
	CandidateHit(record *core.ConceptRecord, score float64)
	MappedTo(source *core.ConceptRecord, targets []*core.ConceptRecord)
	Finish(matches []*ConceptMatch)
}

// noopMonitor is a no-op implementation of ResolveMonitor
type noopMonitor struct{}

var _ ResolveMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                             {}
func (n *noopMonitor) Normalized(_ string)                                        {}
func (n *noopMonitor) CandidateHit(_ *core.ConceptRecord, _ float64)              {}
func (n *noopMonitor) MappedTo(_ *core.ConceptRecord, _ []*core.ConceptRecord)    {}
func (n *noopMonitor) Finish(_ []*ConceptMatch)                                   {}
