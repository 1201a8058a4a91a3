// Package constants provides named constants used throughout the contagion codebase.
package constants

// Transmission draw constants
const (
	// DrawResolution is the number of equally likely outcomes of a single
	// transmission draw. A draw d in [1, DrawResolution] infects when
	// p >= d/DrawResolution, so probabilities are effectively rounded to 1%.
	DrawResolution = 100

	// HistoryPreallocDays caps how many days of history a run reserves up
	// front, whatever its horizon.
	HistoryPreallocDays = 64
)

// Network size limits
const (
	// MaxAgents bounds the population of a loaded network. The dense N×N
	// adjacency matrix holds N² float64 values (800 MB at this bound).
	MaxAgents = 10000
)

// Default run parameters.
const (
	// DefaultTransmissionProbability is the per-contact, per-day chance of infection.
	DefaultTransmissionProbability = 0.2

	// DefaultHorizon is the number of days to simulate.
	DefaultHorizon = 100

	// DefaultInfectiousDuration is the number of days an agent stays infectious.
	DefaultInfectiousDuration = 10

	// DefaultImmunityDuration is the number of days a recovered agent stays immune.
	DefaultImmunityDuration = 30

	// DefaultTestGroupSize is the number of agents in the random test group.
	// It should be much smaller than the population.
	DefaultTestGroupSize = 80
)

// File and directory names.
const (
	// ConfigDirName is the per-user directory holding config.yaml.
	ConfigDirName = ".contagion"

	// ConfigFileName is the name of the YAML config file.
	ConfigFileName = "config.yaml"

	// DecisionLogFileName is the JSONL file receiving per-day decision events.
	DecisionLogFileName = "decisions.jsonl"
)
