/*
Package config loads the scheduler core's tunables from a YAML document
into a plain struct: gopkg.in/yaml.v3 unmarshal, field-by-field validation,
wrapped errors on failure.

# Fields

	speculationIntervalMs: SpeculationTicker's polling period.
	starvationTimeoutMs:   StarvationWatchdog's polling period.
	cpusPerTask:           units of WorkerOffer.Cores each task consumes.
	schedulingMode:        FIFO, FAIR, CPU, or NONE — see pkg/pool.
	maxTaskFailures:       per-task retry budget before a task set aborts.
	speculationEnabled:    whether the speculation ticker runs at all.

# Usage

	cfg, err := config.Load("scheduler.yaml")
	if err != nil {
		return err
	}

Load starts from Default() and overlays whatever fields the file sets, so a
config file only needs to mention the values it overrides. Validate runs
automatically inside Load; call it directly when building a Config by hand
to get the same ConfigurationError on an out-of-range value.
scheduler.New does not call Validate; it re-checks only the scheduling
mode.
*/
package config
