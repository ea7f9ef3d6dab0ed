package config

// Version is stamped by the build pipeline via -ldflags.
var Version = "dev"
