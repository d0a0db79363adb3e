// Package registry maps resource type names to their compiled-in
// implementations and turns resource configuration into a ready-to-use
// resource.State.
//
// A Factory is an explicit value, built once at application bootstrap from a
// list of Modules. Each Module registers one or more resource types:
//
//	factory := registry.NewFactory(&qubit.Module{}, &channel.Module{})
//
// Type names may be namespaced per architecture (arch.<arch>.<type>) and per
// do-not-use status (dnu.<type>). The Manager resolves the names used in a
// configuration to registered types, builds every resource instance and
// initializes it with the scheduling direction.
package registry
