package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/flywheel-sh/flywheel/pkg/backend"
	"github.com/flywheel-sh/flywheel/pkg/deserializer"
	"github.com/flywheel-sh/flywheel/pkg/metrics"
	"github.com/flywheel-sh/flywheel/pkg/scheduler"
	"github.com/flywheel-sh/flywheel/pkg/types"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the same scenario as simulate, printing lifecycle events as they happen",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().String("config", "", "Path to a YAML scheduler config (defaults used if omitted)")
	watchCmd.Flags().String("policy", "DEFAULT", "Placement policy: DEFAULT, PPA, or BPA")
	watchCmd.Flags().Int("tasks", 6, "Number of tasks in the synthetic task set")
	watchCmd.Flags().IntSlice("offer", []int{400, 400}, "Worker offer cores, one flag per worker")
	watchCmd.Flags().String("metrics-addr", "", "If set, serve /metrics on this address while watching")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigFlag(cmd)
	if err != nil {
		return err
	}

	policyName, _ := cmd.Flags().GetString("policy")
	numTasks, _ := cmd.Flags().GetInt("tasks")
	offerCores, _ := cmd.Flags().GetIntSlice("offer")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	if metricsAddr != "" {
		go func() {
			http.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(metricsAddr, nil); err != nil {
				fmt.Printf("metrics server error: %v\n", err)
			}
		}()
		fmt.Printf("metrics endpoint: http://%s/metrics\n", metricsAddr)
	}

	oc := demoOracle(types.PlacementPolicy(policyName), numTasks)
	be := backend.NewFake("flywheel-demo", len(offerCores)*100)
	sp := backend.NewFake("flywheel-demo-sp", 0)

	core, err := scheduler.New(cfg, be, sp, oc, deserializer.NewFake(), true)
	if err != nil {
		return fmt.Errorf("build scheduler core: %w", err)
	}

	sub := core.Events().Subscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range sub {
			fmt.Printf("[%s] %-22s %s\n", ev.Timestamp.Format(time.RFC3339), ev.Type, ev.Message)
		}
	}()

	ts := demoTaskSet(numTasks)
	if err := core.SubmitTasks(ts); err != nil {
		return fmt.Errorf("submit tasks: %w", err)
	}

	offers := make([]types.WorkerOffer, len(offerCores))
	for i, cores := range offerCores {
		offers[i] = backend.Offer(fmt.Sprintf("exec-%d", i), fmt.Sprintf("host-%d", i), cores)
	}
	core.ResourceOffers(offers)

	time.Sleep(50 * time.Millisecond)
	core.Events().Unsubscribe(sub)
	<-done
	return nil
}
