// Package platform describes the target hardware as seen by the scheduler:
// cycle time, qubit count, architecture, instruction timing and operand
// access modes, and the raw resource configuration handed to the resource
// manager.
//
// Platforms are loaded by format-specific loaders (internal/hcl,
// internal/yamlcfg, internal/jsoncfg); this package only holds the model and
// the logic shared by all formats.
package platform
