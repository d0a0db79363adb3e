// Package config defines the format-agnostic configuration model for the
// application, along with the Loader interface for reading it from various
// sources.
//
// A Model carries the target platform and the kernels to schedule. Concrete
// loaders live in separate packages: internal/hcl reads platforms and
// kernels, internal/yamlcfg and internal/jsoncfg read platforms.
package config
