package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/acmavirus/Virtual-House/virtualhouse"
	"github.com/acmavirus/Virtual-House/virtualhouse/config"
	"github.com/acmavirus/Virtual-House/virtualhouse/game"
	"github.com/acmavirus/Virtual-House/virtualhouse/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Assets = discord.SlashCommandCreate{
	Name:        "assets",
	Description: "Manage your property portfolio",
}

func AssetsHandler(b *virtualhouse.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		view, err := renderAssetsList(ctx, b, e.User().ID.String())
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load your portfolio. Please try again later.")
		}
		return e.CreateMessage(view.create())
	}
}

// AssetsComponentHandler handles "/assets/<action>/<property_id>" where
// action is detail, upgrade, repair or sell.
func AssetsComponentHandler(b *virtualhouse.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		userID := e.User().ID.String()
		if !b.Debouncer.Allow(userID) {
			return e.DeferUpdateMessage()
		}

		parts := strings.Split(e.Data.CustomID(), "/")
		if len(parts) < 4 {
			return utils.EH.ComponentEphemeral(e, "This button is no longer valid.")
		}
		action := parts[2]
		propertyID, err := strconv.ParseInt(parts[3], 10, 64)
		if err != nil {
			return utils.EH.ComponentEphemeral(e, "This button is no longer valid.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		var notice discord.Embed
		switch action {
		case "detail":
			view, err := renderAssetDetail(ctx, b, userID, propertyID)
			if err != nil {
				return utils.EH.ComponentError(e, userMessage(err))
			}
			return e.UpdateMessage(view.update())

		case "upgrade":
			res, err := b.Game.UpgradeProperty(ctx, userID, propertyID)
			if err != nil {
				return assetActionError(e, "upgrade", userID, propertyID, err)
			}
			desc := fmt.Sprintf("⬆️ Upgraded to **Level %d** for **%s**. (+%d EXP)",
				res.NewLevel, utils.FormatMoney(res.Cost), res.ExpGain)
			if res.Earned > 0 {
				desc += fmt.Sprintf("\n💰 Pending rent collected: **%s**", utils.FormatMoney(res.Earned))
			}
			notice = discord.NewEmbedBuilder().
				SetDescription(desc).
				SetColor(config.SuccessColor).
				Build()

		case "repair":
			res, err := b.Game.RepairProperty(ctx, userID, propertyID)
			if err != nil {
				return assetActionError(e, "repair", userID, propertyID, err)
			}
			notice = discord.NewEmbedBuilder().
				SetDescription(fmt.Sprintf("🔧 Restored to **100%%** condition for **%s**. (+%d EXP)",
					utils.FormatMoney(res.Cost), res.ExpGain)).
				SetColor(config.SuccessColor).
				Build()

		case "sell":
			res, err := b.Game.SellProperty(ctx, userID, propertyID)
			if err != nil {
				return assetActionError(e, "sell", userID, propertyID, err)
			}
			notice = discord.NewEmbedBuilder().
				SetDescription(fmt.Sprintf("💸 Sold **%s** for **%s**. (+%d EXP)",
					res.LandName, utils.FormatMoney(res.Refund), res.ExpGain)).
				SetColor(config.WarningColor).
				Build()

		default:
			return utils.EH.ComponentError(e, "Unknown action.")
		}

		// Sold properties have no detail screen, fall back to the list.
		var view viewData
		if action == "sell" {
			view, err = renderAssetsList(ctx, b, userID)
		} else {
			view, err = renderAssetDetail(ctx, b, userID, propertyID)
		}
		if err != nil {
			return utils.EH.ComponentError(e, "Failed to refresh the view.")
		}
		view.embeds = append([]discord.Embed{notice}, view.embeds...)
		return e.UpdateMessage(view.update())
	}
}

func assetActionError(e *handler.ComponentEvent, action, userID string, propertyID int64, err error) error {
	if !game.IsValidation(err) {
		slog.Error("Asset action failed",
			slog.String("type", "db"),
			slog.String("action", action),
			slog.String("user_id", userID),
			slog.Int64("property_id", propertyID),
			slog.Any("error", err),
		)
	}
	return utils.EH.ComponentError(e, userMessage(err))
}
