package commands

import (
	"context"
	"log/slog"

	"github.com/acmavirus/Virtual-House/virtualhouse"
	"github.com/acmavirus/Virtual-House/virtualhouse/config"
	"github.com/acmavirus/Virtual-House/virtualhouse/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Work = discord.SlashCommandCreate{
	Name:        "work",
	Description: "Do a quick job for cash and experience",
}

func WorkHandler(b *virtualhouse.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		res, err := b.Game.Work(ctx, e.User().ID.String())
		if err != nil {
			slog.Error("Work failed",
				slog.String("type", "db"),
				slog.String("user_id", e.User().ID.String()),
				slog.Any("error", err),
			)
			return utils.EH.CreateErrorEmbed(e, "Failed to work. Please try again later.")
		}

		view, err := renderWorkResult(ctx, b, e.User(), res)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load your profile. Please try again later.")
		}
		return e.CreateMessage(view.create())
	}
}
