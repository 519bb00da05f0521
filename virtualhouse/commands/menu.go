package commands

import (
	"context"
	"log/slog"
	"strings"

	"github.com/acmavirus/Virtual-House/virtualhouse"
	"github.com/acmavirus/Virtual-House/virtualhouse/config"
	"github.com/acmavirus/Virtual-House/virtualhouse/game"
	"github.com/acmavirus/Virtual-House/virtualhouse/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Menu = discord.SlashCommandCreate{
	Name:        "menu",
	Description: "Open the Virtual House management office",
}

func MenuHandler(b *virtualhouse.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		view, err := renderMainMenu(ctx, b, e.User())
		if err != nil {
			slog.Error("Failed to render main menu",
				slog.String("type", "db"),
				slog.String("user_id", e.User().ID.String()),
				slog.Any("error", err),
			)
			return utils.EH.CreateErrorEmbed(e, "Failed to load your profile. Please try again later.")
		}
		return e.CreateMessage(view.create())
	}
}

// MenuComponentHandler routes the main menu buttons. Every screen the
// buttons lead to is rendered in place via UpdateMessage so one message
// stays the whole UI.
func MenuComponentHandler(b *virtualhouse.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		userID := e.User().ID.String()
		if !b.Debouncer.Allow(userID) {
			return e.DeferUpdateMessage()
		}

		parts := strings.Split(e.Data.CustomID(), "/")
		if len(parts) < 3 {
			return utils.EH.ComponentEphemeral(e, "This button is no longer valid.")
		}
		action := parts[2]

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		var (
			view viewData
			err  error
		)
		switch action {
		case "work":
			var res *game.WorkResult
			res, err = b.Game.Work(ctx, userID)
			if err == nil {
				view, err = renderWorkResult(ctx, b, e.User(), res)
			}
		case "shop":
			view, err = renderShop(ctx, b, userID)
		case "assets":
			view, err = renderAssetsList(ctx, b, userID)
		case "sell":
			view, err = renderSellMenu(ctx, b, userID)
		case "collect":
			return handleCollect(ctx, b, e)
		case "return":
			view, err = renderMainMenu(ctx, b, e.User())
		default:
			return utils.EH.ComponentError(e, "Unknown action.")
		}
		if err != nil {
			slog.Error("Menu action failed",
				slog.String("type", "cmd"),
				slog.String("action", action),
				slog.String("user_id", userID),
				slog.Any("error", err),
			)
			return utils.EH.ComponentError(e, userMessage(err))
		}
		return e.UpdateMessage(view.update())
	}
}
