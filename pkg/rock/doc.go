// Package rock builds seeded rock-cluster meshes: one anchor rock plus
// smaller satellites scattered around it. Generation is a pure function of
// the Config and the seed.
package rock
