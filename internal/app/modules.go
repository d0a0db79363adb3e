package app

import (
	"github.com/specialistvlad/qcsched/internal/registry"
	"github.com/specialistvlad/qcsched/modules/channel"
	"github.com/specialistvlad/qcsched/modules/edge"
	"github.com/specialistvlad/qcsched/modules/limit"
	"github.com/specialistvlad/qcsched/modules/measure"
	"github.com/specialistvlad/qcsched/modules/qubit"
)

// coreModules is the definitive list of all resource types that are
// compiled into the qcsched binary.
var coreModules = []registry.Module{
	&qubit.Module{},
	&channel.Module{},
	&measure.Module{},
	&edge.Module{},
	&limit.Module{},
}

// NewFactory returns a factory holding the given modules, or every core
// module when none are given.
func NewFactory(modules ...registry.Module) *registry.Factory {
	if len(modules) == 0 {
		modules = coreModules
	}
	return registry.NewFactory(modules...)
}
