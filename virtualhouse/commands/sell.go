package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/acmavirus/Virtual-House/virtualhouse"
	"github.com/acmavirus/Virtual-House/virtualhouse/config"
	"github.com/acmavirus/Virtual-House/virtualhouse/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

// SellFastComponentHandler handles "/sellfast/<property_id>" quick sell
// buttons. Uncollected rent on the sold property is forfeited.
func SellFastComponentHandler(b *virtualhouse.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		userID := e.User().ID.String()
		if !b.Debouncer.Allow(userID) {
			return e.DeferUpdateMessage()
		}

		parts := strings.Split(e.Data.CustomID(), "/")
		if len(parts) < 3 {
			return utils.EH.ComponentEphemeral(e, "This button is no longer valid.")
		}
		propertyID, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return utils.EH.ComponentEphemeral(e, "This button is no longer valid.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		res, err := b.Game.SellProperty(ctx, userID, propertyID)
		if err != nil {
			return assetActionError(e, "sellfast", userID, propertyID, err)
		}

		view, err := renderSellMenu(ctx, b, userID)
		if err != nil {
			return utils.EH.ComponentError(e, "Failed to refresh the view.")
		}
		view.embeds = append([]discord.Embed{
			discord.NewEmbedBuilder().
				SetDescription(fmt.Sprintf("💸 Sold **%s** for **%s**. (+%d EXP)",
					res.LandName, utils.FormatMoney(res.Refund), res.ExpGain)).
				SetColor(config.WarningColor).
				Build(),
		}, view.embeds...)
		return e.UpdateMessage(view.update())
	}
}
