package main

import (
	"fmt"

	"github.com/flywheel-sh/flywheel/pkg/backend"
	"github.com/flywheel-sh/flywheel/pkg/config"
	"github.com/flywheel-sh/flywheel/pkg/deserializer"
	"github.com/flywheel-sh/flywheel/pkg/oracle"
	"github.com/flywheel-sh/flywheel/pkg/scheduler"
	"github.com/flywheel-sh/flywheel/pkg/types"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one admission + resourceOffers round against an in-memory backend",
	Long: `simulate submits a single synthetic task set, runs it through one
resourceOffers round against a fixed set of worker offers, and prints the
resulting dispatch table. Useful for exercising the placement policies
without a real cluster.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().String("config", "", "Path to a YAML scheduler config (defaults used if omitted)")
	simulateCmd.Flags().String("policy", "DEFAULT", "Placement policy: DEFAULT, PPA, or BPA")
	simulateCmd.Flags().Int("tasks", 6, "Number of tasks in the synthetic task set")
	simulateCmd.Flags().IntSlice("offer", []int{400, 400}, "Worker offer cores, one flag per worker")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigFlag(cmd)
	if err != nil {
		return err
	}

	policyName, _ := cmd.Flags().GetString("policy")
	numTasks, _ := cmd.Flags().GetInt("tasks")
	offerCores, _ := cmd.Flags().GetIntSlice("offer")

	oc := demoOracle(types.PlacementPolicy(policyName), numTasks)
	be := backend.NewFake("flywheel-demo", len(offerCores)*100)
	sp := backend.NewFake("flywheel-demo-sp", 0)

	core, err := scheduler.New(cfg, be, sp, oc, deserializer.NewFake(), true)
	if err != nil {
		return fmt.Errorf("build scheduler core: %w", err)
	}

	ts := demoTaskSet(numTasks)
	if err := core.SubmitTasks(ts); err != nil {
		return fmt.Errorf("submit tasks: %w", err)
	}

	offers := make([]types.WorkerOffer, len(offerCores))
	for i, cores := range offerCores {
		offers[i] = backend.Offer(fmt.Sprintf("exec-%d", i), fmt.Sprintf("host-%d", i), cores)
	}

	dispatches := core.ResourceOffers(offers)

	fmt.Printf("policy=%s tasks=%d offers=%v\n", policyName, numTasks, offerCores)
	total := 0
	for i, perWorker := range dispatches {
		fmt.Printf("  %s: %d task(s)\n", offers[i].ExecutorID, len(perWorker))
		total += len(perWorker)
	}
	fmt.Printf("total dispatched: %d/%d\n", total, numTasks)
	return nil
}

func loadConfigFlag(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// demoOracle builds a PredictionOracle for the demo: every task gets a
// pseudo-random-but-deterministic demand in [20, 79].
func demoOracle(policy types.PlacementPolicy, numTasks int) *oracle.Static {
	demand := make(map[int64]int, numTasks)
	for i := 1; i <= numTasks; i++ {
		demand[int64(i)] = 20 + (i*37)%60
	}
	return oracle.NewStatic(policy, demand)
}

func demoTaskSet(numTasks int) *types.TaskSet {
	tasks := make([]types.TaskInfo, numTasks)
	for i := range tasks {
		tasks[i] = types.TaskInfo{Index: i}
	}
	return &types.TaskSet{
		StageID:        1,
		StageAttemptID: 0,
		Tasks:          tasks,
		Properties: types.TaskSetProperties{
			Pool:           "default",
			Priority:       1,
			LocalityLevels: []types.LocalityLevel{types.Any},
		},
	}
}
