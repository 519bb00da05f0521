package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/acmavirus/Virtual-House/virtualhouse"
	"github.com/acmavirus/Virtual-House/virtualhouse/config"
	"github.com/acmavirus/Virtual-House/virtualhouse/game"
	"github.com/acmavirus/Virtual-House/virtualhouse/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Shop = discord.SlashCommandCreate{
	Name:        "shop",
	Description: "Browse the real estate marketplace",
}

func ShopHandler(b *virtualhouse.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		view, err := renderShop(ctx, b, e.User().ID.String())
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load the shop. Please try again later.")
		}
		return e.CreateMessage(view.create())
	}
}

// ShopComponentHandler handles "/shop/buy/<land_type>" purchase buttons.
func ShopComponentHandler(b *virtualhouse.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		userID := e.User().ID.String()
		if !b.Debouncer.Allow(userID) {
			return e.DeferUpdateMessage()
		}

		parts := strings.Split(e.Data.CustomID(), "/")
		if len(parts) < 4 || parts[2] != "buy" {
			return utils.EH.ComponentEphemeral(e, "This button is no longer valid.")
		}
		landKey := parts[3]

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		res, err := b.Game.BuyLand(ctx, userID, landKey)
		if err != nil {
			if !game.IsValidation(err) {
				slog.Error("Purchase failed",
					slog.String("type", "db"),
					slog.String("user_id", userID),
					slog.String("land_type", landKey),
					slog.Any("error", err),
				)
			}
			return utils.EH.ComponentError(e, userMessage(err))
		}

		congrats := fmt.Sprintf("🎉 Purchased **%s**! (+%d EXP)", res.Land.Name, res.ExpGain)
		if res.IsGold {
			congrats = fmt.Sprintf("🌟 **GOLD EDITION!** Purchased **%s** with doubled rent! (+%d EXP)", res.Land.Name, res.ExpGain)
		}

		view, err := renderShop(ctx, b, userID)
		if err != nil {
			return utils.EH.ComponentError(e, "Failed to refresh the shop.")
		}
		view.embeds = append([]discord.Embed{
			discord.NewEmbedBuilder().
				SetDescription(congrats).
				SetColor(config.SuccessColor).
				Build(),
		}, view.embeds...)
		return e.UpdateMessage(view.update())
	}
}
