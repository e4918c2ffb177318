package registry

import "sync"

// TaskRegistry holds every process-local index the scheduler core needs
// between admission and dispatch.
type TaskRegistry struct {
	mu sync.Mutex

	taskIDToTaskSet  map[int64]int // taskID -> stageID
	taskIDToExecutor map[int64]string

	activeExecutors map[string]bool
	executorToHost  map[string]string
	executorsByHost map[string]map[string]bool
	hostsByRack     map[string]map[string]bool
	rackByHost      map[string]string
}

// New builds an empty TaskRegistry.
func New() *TaskRegistry {
	return &TaskRegistry{
		taskIDToTaskSet:  make(map[int64]int),
		taskIDToExecutor: make(map[int64]string),
		activeExecutors:  make(map[string]bool),
		executorToHost:   make(map[string]string),
		executorsByHost:  make(map[string]map[string]bool),
		hostsByRack:      make(map[string]map[string]bool),
		rackByHost:       make(map[string]string),
	}
}

// RecordDispatch indexes a freshly dispatched task.
func (r *TaskRegistry) RecordDispatch(taskID int64, stageID int, executorID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.taskIDToTaskSet[taskID] = stageID
	r.taskIDToExecutor[taskID] = executorID
}

// ClearTask removes a task's dispatch indexes once it reaches a terminal
// state.
func (r *TaskRegistry) ClearTask(taskID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.taskIDToTaskSet, taskID)
	delete(r.taskIDToExecutor, taskID)
}

// TaskSetFor returns the stage id a task belongs to, if still tracked.
func (r *TaskRegistry) TaskSetFor(taskID int64) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stageID, ok := r.taskIDToTaskSet[taskID]
	return stageID, ok
}

// ExecutorFor returns the executor a task was dispatched to, if still
// tracked.
func (r *TaskRegistry) ExecutorFor(taskID int64) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.taskIDToExecutor[taskID]
	return id, ok
}

// AddExecutor records a newly seen executor and its host, updating every
// derived index atomically. firstSeenHost reports whether this host had no
// prior executor, which the caller uses to decide whether to fire
// executorAdded on the stage planner.
func (r *TaskRegistry) AddExecutor(executorID, host, rack string) (firstSeenHost bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.activeExecutors[executorID] = true
	r.executorToHost[executorID] = host

	if r.executorsByHost[host] == nil {
		r.executorsByHost[host] = make(map[string]bool)
		firstSeenHost = true
	}
	r.executorsByHost[host][executorID] = true

	if rack != "" {
		r.rackByHost[host] = rack
		if r.hostsByRack[rack] == nil {
			r.hostsByRack[rack] = make(map[string]bool)
		}
		r.hostsByRack[rack][host] = true
	}

	return firstSeenHost
}

// IsActiveExecutor reports whether an executor is currently known-live.
func (r *TaskRegistry) IsActiveExecutor(executorID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeExecutors[executorID]
}

// RemoveExecutor purges an executor from every index.
func (r *TaskRegistry) RemoveExecutor(executorID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.activeExecutors, executorID)
	host, ok := r.executorToHost[executorID]
	delete(r.executorToHost, executorID)
	if !ok {
		return
	}
	if hostSet, ok := r.executorsByHost[host]; ok {
		delete(hostSet, executorID)
		if len(hostSet) == 0 {
			delete(r.executorsByHost, host)
			if rack, ok := r.rackByHost[host]; ok {
				delete(r.rackByHost, host)
				if rackSet, ok := r.hostsByRack[rack]; ok {
					delete(rackSet, host)
					if len(rackSet) == 0 {
						delete(r.hostsByRack, rack)
					}
				}
			}
		}
	}
}

// HostFor returns the host an executor lives on.
func (r *TaskRegistry) HostFor(executorID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	host, ok := r.executorToHost[executorID]
	return host, ok
}

// ActiveExecutorCount returns the number of currently known-live executors.
func (r *TaskRegistry) ActiveExecutorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.activeExecutors)
}

// QuiescentKeySetsMatch reports whether taskIDToTaskSet and taskIDToExecutor
// have identical key sets, an invariant that should hold whenever no task is
// mid-dispatch.
func (r *TaskRegistry) QuiescentKeySetsMatch() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.taskIDToTaskSet) != len(r.taskIDToExecutor) {
		return false
	}
	for id := range r.taskIDToTaskSet {
		if _, ok := r.taskIDToExecutor[id]; !ok {
			return false
		}
	}
	return true
}
