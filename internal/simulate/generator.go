package simulate

import (
	"fmt"
	"math/rand"
)

// Activity pools per module. The labels mirror the vocabulary each subsystem
// reports in production so dashboards exercised against simulated traffic look
// like the real thing.
var (
	caleonSequences = []string{ //nolint:gochecknoglobals // static data pool
		"aesop_003_10247", "harmony_cycle_002", "drift_calibration_045",
		"symbolic_resonance_021", "gepetto_fusion_007", "axiom_validation_189",
		"coherence_matrix_134", "glyph_processing_092", "neural_pathway_256",
	}

	certsigNFTTypes = []string{ //nolint:gochecknoglobals // static data pool
		"K-NFT", "L-NFT", "M-NFT", "N-NFT", "O-NFT", "P-NFT",
		"Q-NFT", "R-NFT", "S-NFT", "T-NFT", "U-NFT", "V-NFT", "X-NFT",
	}

	prometheusActivities = []string{ //nolint:gochecknoglobals // static data pool
		"reasoning_cycle", "module_sync", "bridge_poll", "cycle_commit",
	}

	moduleErrors = []string{ //nolint:gochecknoglobals // static data pool
		"drift threshold exceeded", "mint validation timeout",
		"bridge connection lost", "chronometer resync required",
	}
)

// simulatedModules are the subsystems that receive generated heartbeats. The
// iss chronometer is the serving process itself, so it is never simulated.
var simulatedModules = []string{"caleon", "certsig", "prometheus"} //nolint:gochecknoglobals // static data pool

// nextBeat produces one random module heartbeat.
func nextBeat(rng *rand.Rand) Beat {
	module := simulatedModules[rng.Intn(len(simulatedModules))]
	return Beat{Module: module, Activity: activityFor(rng, module)}
}

// activityFor builds a realistic activity label for a module.
func activityFor(rng *rand.Rand, module string) string {
	switch module {
	case "caleon":
		seq := caleonSequences[rng.Intn(len(caleonSequences))]
		return fmt.Sprintf("%s_%05d", seq, rng.Intn(90000)+10000)
	case "certsig":
		nft := certsigNFTTypes[rng.Intn(len(certsigNFTTypes))]
		return fmt.Sprintf("mint_%s_ALPHA-%06d", nft, rng.Intn(900000)+100000)
	case "prometheus":
		return prometheusActivities[rng.Intn(len(prometheusActivities))]
	default:
		return "heartbeat"
	}
}

// nextError picks a random module and error message for fault injection.
func nextError(rng *rand.Rand) (string, string) {
	module := simulatedModules[rng.Intn(len(simulatedModules))]
	return module, moduleErrors[rng.Intn(len(moduleErrors))]
}
