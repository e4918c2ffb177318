package pool

import (
	"sort"
	"sync"

	"github.com/flywheel-sh/flywheel/pkg/log"
	"github.com/flywheel-sh/flywheel/pkg/oracle"
	"github.com/flywheel-sh/flywheel/pkg/taskset"
	"github.com/flywheel-sh/flywheel/pkg/types"
	"github.com/rs/zerolog"
)

// leaf wraps a single taskset.Manager with the bookkeeping
// GetSortedTaskSetQueue needs to order it: submission-time priority, FAIR
// weight, and insertion sequence for FIFO.
type leaf struct {
	name     string
	priority int
	weight   int
	seq      int64
	manager  taskset.Manager
}

// Pool is a named scheduling node. The root pool's GetSortedTaskSetQueue
// yields the current admission order the placement engine consumes.
type Pool struct {
	mu       sync.Mutex
	name     string
	mode     types.SchedulingMode
	weight   int
	children []*leaf
	seq      int64
	logger   zerolog.Logger
	oracle   oracle.Oracle
}

// New builds a Pool under the given scheduling mode. An unrecognized mode
// string is the caller's responsibility to reject before calling New — the
// scheduler core validates it against the set of known modes and raises
// ConfigurationError before ever constructing a Pool. oc is consulted on
// every GetSortedTaskSetQueue call under ModeCPU to resolve each task set's
// effective priority.
func New(name string, mode types.SchedulingMode, weight int, oc oracle.Oracle) *Pool {
	return &Pool{
		name:   name,
		mode:   mode,
		weight: weight,
		logger: log.WithPool("pool", name),
		oracle: oc,
	}
}

// Name returns the pool's name.
func (p *Pool) Name() string { return p.name }

// Attach adds a manager to the pool under the given scheduling properties.
func (p *Pool) Attach(m taskset.Manager, priority int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	p.children = append(p.children, &leaf{
		name:     managerName(m),
		priority: priority,
		weight:   managerWeight(m),
		seq:      p.seq,
		manager:  m,
	})
}

// Detach removes a manager from the pool once its task set is finished.
func (p *Pool) Detach(m taskset.Manager) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, c := range p.children {
		if c.manager == m {
			p.children = append(p.children[:i], p.children[i+1:]...)
			return
		}
	}
	p.logger.Debug().Msg("detach of unknown manager, ignored")
}

// GetSortedTaskSetQueue returns every attached manager in priority order
// according to the pool's scheduling mode.
func (p *Pool) GetSortedTaskSetQueue() []taskset.Manager {
	p.mu.Lock()
	defer p.mu.Unlock()

	ordered := make([]*leaf, len(p.children))
	copy(ordered, p.children)

	switch p.mode {
	case types.ModeFIFO:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].seq < ordered[j].seq
		})
	case types.ModeFAIR:
		sort.SliceStable(ordered, func(i, j int) bool {
			wi, wj := ordered[i].weight, ordered[j].weight
			if wi == 0 {
				wi = 1
			}
			if wj == 0 {
				wj = 1
			}
			return wi > wj
		})
	case types.ModeCPU:
		sort.SliceStable(ordered, func(i, j int) bool {
			pi := p.oracle.TaskSetPriority(ordered[i].manager.TaskSet().StageID, ordered[i].priority)
			pj := p.oracle.TaskSetPriority(ordered[j].manager.TaskSet().StageID, ordered[j].priority)
			return pi > pj
		})
	case types.ModeNONE:
		// insertion order, no preemption hook
	}

	out := make([]taskset.Manager, 0, len(ordered))
	for _, c := range ordered {
		out = append(out, c.manager)
	}
	return out
}

// CheckSpeculatableTasks asks every attached, non-zombie manager whether it
// has speculatable work. It is the hook SpeculationTicker polls — speculation
// is triggered by the pool, not the engine. Eligibility is decided entirely
// by the caller-supplied isSpeculatable predicate; this reference pool has
// no task-duration statistics of its own.
func (p *Pool) CheckSpeculatableTasks(isSpeculatable func(taskset.Manager) bool) bool {
	p.mu.Lock()
	children := make([]*leaf, len(p.children))
	copy(children, p.children)
	p.mu.Unlock()

	found := false
	for _, c := range children {
		if c.manager.IsZombie() {
			continue
		}
		if isSpeculatable(c.manager) {
			found = true
		}
	}
	return found
}

// Len reports how many managers are currently attached.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.children)
}

func managerName(m taskset.Manager) string {
	ts := m.TaskSet()
	return ts.Properties.Pool
}

// managerWeight reads a manager's FAIR-mode share from its task set
// properties; an unset (zero) weight counts the same as 1.
func managerWeight(m taskset.Manager) int {
	w := m.TaskSet().Properties.Weight
	if w == 0 {
		return 1
	}
	return w
}

// ValidMode reports whether name is one of the four scheduling modes this
// package supports.
func ValidMode(name types.SchedulingMode) bool {
	switch name {
	case types.ModeFIFO, types.ModeFAIR, types.ModeCPU, types.ModeNONE:
		return true
	default:
		return false
	}
}
