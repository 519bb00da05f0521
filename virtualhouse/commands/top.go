package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/acmavirus/Virtual-House/virtualhouse"
	"github.com/acmavirus/Virtual-House/virtualhouse/config"
	"github.com/acmavirus/Virtual-House/virtualhouse/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Top = discord.SlashCommandCreate{
	Name:        "top",
	Description: "Show the richest landlords",
}

func TopHandler(b *virtualhouse.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		players, err := b.PlayerRepository.GetTopByBalance(ctx, 10)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load the leaderboard. Please try again later.")
		}
		if len(players) == 0 {
			return utils.EH.CreateEphemeral(e, "No landlords yet. Be the first with /menu!")
		}

		medals := []string{"🥇", "🥈", "🥉"}
		var sb strings.Builder
		for i, p := range players {
			rank := fmt.Sprintf("`#%d`", i+1)
			if i < len(medals) {
				rank = medals[i]
			}
			fmt.Fprintf(&sb, "%s <@%s> - **%s** (Level %d)\n", rank, p.ID, utils.FormatMoney(p.Balance), p.Level)
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{
				discord.NewEmbedBuilder().
					SetTitle("🏆 Top Landlords").
					SetDescription(sb.String()).
					SetColor(config.GoldColor).
					Build(),
			},
		})
	}
}
