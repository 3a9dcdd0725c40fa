package cmd

// version is overridden at build time with -ldflags.
var version = "dev"
