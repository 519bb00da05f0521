package commands

import (
	"github.com/disgoorg/disgo/discord"
)

var Commands = []discord.ApplicationCommandCreate{
	Menu,
	Work,
	Shop,
	Buy,
	Assets,
	Collect,
	Portfolio,
	Top,
}
