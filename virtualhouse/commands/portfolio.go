package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/acmavirus/Virtual-House/virtualhouse"
	"github.com/acmavirus/Virtual-House/virtualhouse/config"
	"github.com/acmavirus/Virtual-House/virtualhouse/game"
	"github.com/acmavirus/Virtual-House/virtualhouse/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
)

var Portfolio = discord.SlashCommandCreate{
	Name:        "portfolio",
	Description: "Browse your full property portfolio page by page",
}

func PortfolioHandler(b *virtualhouse.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		properties, err := b.Game.ListProperties(ctx, e.User().ID.String())
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load your portfolio. Please try again later.")
		}
		if len(properties) == 0 {
			return utils.EH.CreateErrorEmbed(e, "You don't own any properties yet. Use /shop to start investing!")
		}

		now := time.Now()
		totalPages := (len(properties) + config.PropertiesPerPage - 1) / config.PropertiesPerPage

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				start := page * config.PropertiesPerPage
				end := min(start+config.PropertiesPerPage, len(properties))

				var totalPending, totalValue int64
				for _, p := range properties {
					totalPending += game.PendingRent(p, now)
					if land, ok := game.LookupLand(p.LandType); ok {
						totalValue += land.Price
					}
				}

				embed.
					SetTitle(fmt.Sprintf("🏘️ Portfolio of %s", e.User().Username)).
					SetDescription(fmt.Sprintf("Holdings: **%d** | Book value: **%s** | Pending rent: **%s**",
						len(properties), utils.FormatMoney(totalValue), utils.FormatMoney(totalPending))).
					SetColor(config.InfoColor).
					SetFooter(fmt.Sprintf("Page %d/%d", page+1, totalPages), "")

				for _, p := range properties[start:end] {
					land, _ := game.LookupLand(p.LandType)
					name := fmt.Sprintf("%s %s #%d", land.Emoji, land.Name, p.ID)
					if p.IsGold {
						name = "🌟 " + name
					}
					embed.AddField(name,
						fmt.Sprintf("Level %d | Condition %d%% | Rate $%.2f/s | Pending **%s**",
							p.Level, p.Condition, game.RentRate(p), utils.FormatMoney(game.PendingRent(p, now))),
						false)
				}
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}
