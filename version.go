package parex

// Version is the current version of the go-parex library
const Version = "1.0.0"
