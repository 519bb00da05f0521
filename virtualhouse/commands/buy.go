package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/acmavirus/Virtual-House/virtualhouse"
	"github.com/acmavirus/Virtual-House/virtualhouse/config"
	"github.com/acmavirus/Virtual-House/virtualhouse/game"
	"github.com/acmavirus/Virtual-House/virtualhouse/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/sahilm/fuzzy"
)

var Buy = discord.SlashCommandCreate{
	Name:        "buy",
	Description: "Buy a plot of land",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:         "land_type",
			Description:  "The type of land to buy",
			Required:     true,
			Autocomplete: true,
		},
	},
}

func BuyHandler(b *virtualhouse.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		landKey := e.SlashCommandInteractionData().String("land_type")

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		res, err := b.Game.BuyLand(ctx, e.User().ID.String(), landKey)
		if err != nil {
			if !game.IsValidation(err) {
				slog.Error("Purchase failed",
					slog.String("type", "db"),
					slog.String("user_id", e.User().ID.String()),
					slog.String("land_type", landKey),
					slog.Any("error", err),
				)
			}
			return utils.EH.CreateErrorEmbed(e, userMessage(err))
		}

		builder := discord.NewEmbedBuilder().
			SetTitle("🎉 Purchase Complete").
			SetDescription(fmt.Sprintf("You are now the owner of **%s** #%d!\n✨ EXP Gained: **+%d**",
				res.Land.Name, res.PropertyID, res.ExpGain)).
			SetColor(config.SuccessColor)
		if res.IsGold {
			builder.
				SetColor(config.GoldColor).
				SetDescription(fmt.Sprintf("🌟 **GOLD EDITION!**\nYou are now the owner of **%s** #%d with doubled rent!\n✨ EXP Gained: **+%d**",
					res.Land.Name, res.PropertyID, res.ExpGain))
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{builder.Build()},
		})
	}
}

// BuyAutocompleteHandler fuzzy matches the typed prefix against the land
// catalog and always answers with the catalog key as the choice value.
func BuyAutocompleteHandler(b *virtualhouse.Bot) handler.AutocompleteHandler {
	return func(e *handler.AutocompleteEvent) error {
		var input string
		if focused := e.Data.Focused(); focused.Value != nil {
			if err := json.Unmarshal(focused.Value, &input); err != nil {
				return e.AutocompleteResult(nil)
			}
		}

		keys := make([]string, 0, len(game.CatalogOrder))
		names := make([]string, 0, len(game.CatalogOrder))
		for _, landType := range game.CatalogOrder {
			keys = append(keys, string(landType))
			names = append(names, game.Catalog[landType].Name)
		}

		var choices []discord.AutocompleteChoice
		if input == "" {
			for i, key := range keys {
				choices = append(choices, discord.AutocompleteChoiceString{
					Name:  fmt.Sprintf("%s (%s)", names[i], utils.FormatMoney(game.Catalog[game.LandType(key)].Price)),
					Value: key,
				})
			}
		} else {
			for _, match := range fuzzy.Find(input, names) {
				key := keys[match.Index]
				choices = append(choices, discord.AutocompleteChoiceString{
					Name:  fmt.Sprintf("%s (%s)", match.Str, utils.FormatMoney(game.Catalog[game.LandType(key)].Price)),
					Value: key,
				})
			}
		}
		return e.AutocompleteResult(choices)
	}
}
