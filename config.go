package silo

import "github.com/TheBitDrifter/table"

// Config holds global configuration shared by every World: a single
// process-wide table.TableEvents hook.
var Config config = config{}

type config struct {
	tableEvents table.TableEvents
}

// SetTableEvents configures the table event callbacks (row moved/created/
// deleted) invoked by every archetype's backing table.
func (c *config) SetTableEvents(te table.TableEvents) {
	c.tableEvents = te
}
