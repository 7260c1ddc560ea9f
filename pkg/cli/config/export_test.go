package config

// Exported for testing
var BuildPollConfig = buildPollConfig

type AppFile = appFile
type RunEntry = runEntry
