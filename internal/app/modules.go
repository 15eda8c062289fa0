package app

import (
	"github.com/specialistvlad/consolekit/internal/registry"
	"github.com/specialistvlad/consolekit/modules/addresses"
	"github.com/specialistvlad/consolekit/modules/database"
	"github.com/specialistvlad/consolekit/modules/deps"
	"github.com/specialistvlad/consolekit/modules/example"
	"github.com/specialistvlad/consolekit/modules/hello"
)

// coreModules is the definitive list of all modules that are compiled into
// the binary.
var coreModules = []registry.Module{
	&database.Module{},
	&example.Module{},
	&hello.Module{},
	&addresses.Module{},
	&deps.Module{},
}
