package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/acmavirus/Virtual-House/virtualhouse"
	"github.com/acmavirus/Virtual-House/virtualhouse/config"
	"github.com/acmavirus/Virtual-House/virtualhouse/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Collect = discord.SlashCommandCreate{
	Name:        "collect",
	Description: "Collect pending rent from all your properties",
}

func CollectHandler(b *virtualhouse.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		res, err := b.Game.CollectRent(ctx, e.User().ID.String())
		if err != nil {
			slog.Error("Rent collection failed",
				slog.String("type", "db"),
				slog.String("user_id", e.User().ID.String()),
				slog.Any("error", err),
			)
			return utils.EH.CreateErrorEmbed(e, "Failed to collect rent. Please try again later.")
		}
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{collectEmbed(res.Total, res.Count, res.ExpGain)},
		})
	}
}

// handleCollect serves the main menu collect button.
func handleCollect(ctx context.Context, b *virtualhouse.Bot, e *handler.ComponentEvent) error {
	res, err := b.Game.CollectRent(ctx, e.User().ID.String())
	if err != nil {
		slog.Error("Rent collection failed",
			slog.String("type", "db"),
			slog.String("user_id", e.User().ID.String()),
			slog.Any("error", err),
		)
		return utils.EH.ComponentError(e, "Failed to collect rent. Please try again later.")
	}

	view, err := renderMainMenu(ctx, b, e.User())
	if err != nil {
		return utils.EH.ComponentError(e, "Failed to refresh the view.")
	}
	view.embeds = append([]discord.Embed{collectEmbed(res.Total, res.Count, res.ExpGain)}, view.embeds...)
	return e.UpdateMessage(view.update())
}

func collectEmbed(total int64, count int, expGain int64) discord.Embed {
	if total <= 0 {
		return discord.NewEmbedBuilder().
			SetDescription("🏚️ Nothing to collect yet. Rent accrues over time.").
			SetColor(config.WarningColor).
			Build()
	}
	desc := fmt.Sprintf("💰 Collected **%s** from **%d** properties.", utils.FormatMoney(total), count)
	if expGain > 0 {
		desc += fmt.Sprintf("\n✨ EXP Gained: **+%d**", expGain)
	}
	desc += "\n⚠️ Each property lost 5% condition from wear."
	return discord.NewEmbedBuilder().
		SetDescription(desc).
		SetColor(config.SuccessColor).
		Build()
}
