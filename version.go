package hew

// Version is the release of the hew module and command.
const Version = "0.3.0"
