package eventgrid

// Version is the release of the converter, overridden at build time with
// -ldflags "-X github.com/aretw0/eventgrid.Version=...".
var Version = "0.3.0"
