package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/nvandessel/contagion/internal/config"
	"github.com/nvandessel/contagion/internal/epidemic"
	"github.com/nvandessel/contagion/internal/logging"
	"github.com/nvandessel/contagion/internal/network"
	"github.com/nvandessel/contagion/internal/report"
	"github.com/spf13/cobra"
)

// runOutput is the JSON document written by "contagion run --json".
type runOutput struct {
	Seed             uint64                  `json:"seed"`
	Config           config.SimulationConfig `json:"config"`
	Summary          report.Summary          `json:"summary"`
	RandomDetections []int                   `json:"random_detections"`
	FriendDetections []int                   `json:"friend_detections"`
	RandomGroup      []int                   `json:"random_group"`
	FriendGroup      []int                   `json:"friend_group"`
	Frames           [][]int                 `json:"frames,omitempty"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation over a contact network",
		Long: `Run one epidemic simulation and report what both test groups saw.

The network is an edge list: one "a b" contact per line, agents numbered
from 0. Lines starting with # are comments, and an "n <count>" line declares
the population when some agents have no listed contacts.

Examples:
  contagion run --network edges.txt
  contagion run --network edges.txt --infected 0,17 --seed 42
  contagion run --network edges.txt --p 0.35 --horizon 200 --json --frames
  contagion run --network edges.txt --log-level debug --decision-dir ./logs`,
		RunE: runSimulation,
	}

	cmd.Flags().String("network", "", "Edge list file describing the contact network")
	cmd.MarkFlagRequired("network")
	cmd.Flags().IntSlice("infected", []int{0}, "Agents infectious on day 0")
	cmd.Flags().Uint64("seed", 0, "Random seed (default: config seed, else random)")
	cmd.Flags().Float64("p", 0, "Transmission probability per contact per day")
	cmd.Flags().Int("horizon", 0, "Final simulation day")
	cmd.Flags().Int("infectious-days", 0, "Days an agent stays infectious")
	cmd.Flags().Int("immunity-days", 0, "Days a recovered agent stays immune")
	cmd.Flags().Int("test-group-size", 0, "Size of the random test group")
	cmd.Flags().Bool("frames", false, "Include every day's population in JSON output")
	cmd.Flags().String("decision-dir", "", "Directory for decisions.jsonl at debug level and below")
	return cmd
}

func runSimulation(cmd *cobra.Command, args []string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	frames, _ := cmd.Flags().GetBool("frames")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyRunFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	networkPath, _ := cmd.Flags().GetString("network")
	adj, err := readNetwork(networkPath)
	if err != nil {
		return err
	}

	infected, _ := cmd.Flags().GetIntSlice("infected")
	initial, err := initialPopulation(adj.N(), infected)
	if err != nil {
		return err
	}

	seed := resolveSeed(cfg)

	logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
	decisionDir := cfg.Logging.DecisionDir
	if decisionDir == "" {
		decisionDir = "."
	}
	decisions := logging.NewDecisionLogger(decisionDir, cfg.Logging.Level).With("seed", seed)
	defer decisions.Close()

	stepper, err := epidemic.NewStepper(initial, adj, cfg.Params(), epidemic.NewRand(seed))
	if err != nil {
		return fmt.Errorf("failed to start simulation: %w", err)
	}
	stepper.SetLogger(logger, decisions)
	logger.Info("starting simulation",
		"network", networkPath,
		"agents", adj.N(),
		"infected", len(initial.Infectious()),
		"seed", seed)

	ctx, stop := withSignalCancel(cmd.Context())
	defer stop()

	res, err := stepper.Run(ctx)
	if err != nil {
		return err
	}
	summary := report.Summarize(res, adj)

	out := cmd.OutOrStdout()
	if jsonOut {
		doc := runOutput{
			Seed:             seed,
			Config:           cfg.Simulation,
			Summary:          summary,
			RandomDetections: res.RandomDetections,
			FriendDetections: res.FriendDetections,
			RandomGroup:      res.RandomGroup.Members(),
			FriendGroup:      res.FriendGroup.Members(),
		}
		doc.Config.Seed = &seed
		if frames {
			for _, day := range res.Days() {
				doc.Frames = append(doc.Frames, day.Ints())
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	fmt.Fprintf(out, "Seed:              %d\n", seed)
	return summary.WriteText(out)
}

// applyRunFlags overrides configuration with run flags the user set.
func applyRunFlags(cmd *cobra.Command, cfg *config.ContagionConfig) {
	flags := cmd.Flags()
	if flags.Changed("p") {
		cfg.Simulation.TransmissionProbability, _ = flags.GetFloat64("p")
	}
	if flags.Changed("horizon") {
		cfg.Simulation.Horizon, _ = flags.GetInt("horizon")
	}
	if flags.Changed("infectious-days") {
		cfg.Simulation.InfectiousDays, _ = flags.GetInt("infectious-days")
	}
	if flags.Changed("immunity-days") {
		cfg.Simulation.ImmunityDays, _ = flags.GetInt("immunity-days")
	}
	if flags.Changed("test-group-size") {
		cfg.Simulation.TestGroupSize, _ = flags.GetInt("test-group-size")
	}
	if flags.Changed("seed") {
		seed, _ := flags.GetUint64("seed")
		cfg.Simulation.Seed = &seed
	}
	if flags.Changed("decision-dir") {
		cfg.Logging.DecisionDir, _ = flags.GetString("decision-dir")
	}
}

func readNetwork(path string) (*network.Adjacency, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open network: %w", err)
	}
	defer f.Close()

	adj, err := network.ReadEdgeList(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read network %s: %w", path, err)
	}
	return adj, nil
}

// initialPopulation marks the given agents infectious among n.
func initialPopulation(n int, infected []int) (epidemic.Population, error) {
	values := make([]int, n)
	for _, i := range infected {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("infected agent %d out of range for %d agents", i, n)
		}
		values[i] = int(epidemic.Infectious)
	}
	return epidemic.PopulationFromInts(values)
}

func resolveSeed(cfg *config.ContagionConfig) uint64 {
	if cfg.Simulation.Seed != nil {
		return *cfg.Simulation.Seed
	}
	return rand.Uint64()
}
