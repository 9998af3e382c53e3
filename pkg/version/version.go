package version

// Set with -ldflags "-X github.com/AidenDam/Elo-ranking-system/pkg/version.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)
