package conch

// Version is the current conch release.
var Version = "0.1.0"
