/*
Package events provides an in-memory pub/sub broker for scheduler lifecycle
notifications: task dispatch and completion, executor membership changes,
speculation, and starvation warnings. It broadcasts every published event to
every subscriber on a buffered channel — fire-and-forget, no persistence, no
replay — the `watch` CLI subcommand and test assertions on event ordering are
its only consumers. Each event is stamped with a google/uuid ID on publish
unless the caller already set one.

# Usage

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	sub := broker.Subscribe()
	defer broker.Unsubscribe(sub)

	go func() {
		for ev := range sub {
			fmt.Printf("[%s] %s: %s\n", ev.Timestamp.Format(time.RFC3339), ev.Type, ev.Message)
		}
	}()

	broker.Publish(&events.Event{
		Type:    events.EventTaskDispatched,
		Message: "task 42 dispatched to exec-3",
		Metadata: map[string]string{"task_id": "42", "executor_id": "exec-3"},
	})

# Event Types

  - task.dispatched / task.finished / task.failed / task.lost — per-task
    lifecycle transitions reported by the LifecycleCoordinator.
  - executor.added / executor.lost — registry membership changes.
  - speculation.triggered — the SpeculationTicker found speculatable work
    and requested a fresh offer round.
  - taskset.starved — the StarvationWatchdog flagged a task set with no
    progress for longer than the configured timeout.

A full buffer (per-subscriber, 50 events) drops the event for that
subscriber rather than blocking the publisher; this is fine for a watch
stream but means subscribers should not rely on events for correctness.
*/
package events
