package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/acmavirus/Virtual-House/virtualhouse"
	"github.com/acmavirus/Virtual-House/virtualhouse/config"
	"github.com/acmavirus/Virtual-House/virtualhouse/database/models"
	"github.com/acmavirus/Virtual-House/virtualhouse/game"
	"github.com/acmavirus/Virtual-House/virtualhouse/utils"
	"github.com/disgoorg/disgo/discord"
	"golang.org/x/sync/errgroup"
)

// viewData is one renderable screen: the original bot UI is a small state
// machine of screens (menu, shop, assets, detail, quick sell) that buttons
// move between.
type viewData struct {
	embeds     []discord.Embed
	components []discord.ContainerComponent
}

func (v viewData) create() discord.MessageCreate {
	return discord.MessageCreate{Embeds: v.embeds, Components: v.components}
}

func (v viewData) update() discord.MessageUpdate {
	return discord.MessageUpdate{Embeds: utils.Ptr(v.embeds), Components: utils.Ptr(v.components)}
}

func returnRow() discord.ContainerComponent {
	return discord.NewActionRow(
		discord.NewSecondaryButton("Back to Menu", "/menu/return"),
	)
}

func renderMainMenu(ctx context.Context, b *virtualhouse.Bot, user discord.User) (viewData, error) {
	g, gctx := errgroup.WithContext(ctx)

	var player *models.Player
	var properties []*models.Property
	g.Go(func() error {
		var err error
		player, _, err = b.Game.EnsurePlayer(gctx, user.ID.String())
		return err
	})
	g.Go(func() error {
		var err error
		properties, err = b.Game.ListProperties(gctx, user.ID.String())
		return err
	})
	if err := g.Wait(); err != nil {
		return viewData{}, err
	}

	expNeeded := game.ExpToLevel(player.Level)
	embed := discord.NewEmbedBuilder().
		SetAuthor(user.Username, "", user.EffectiveAvatarURL()).
		SetTitle("🏠 Virtual House - Management Office").
		SetDescription("Maximize your passive income by managing your property portfolio efficiently.").
		SetColor(config.InfoColor).
		AddField("👤 Player Profile",
			fmt.Sprintf("Level: **%d**\nEXP: **%d/%d**\n%s",
				player.Level, player.Exp, expNeeded,
				utils.ProgressBar(player.Exp, expNeeded, 10)),
			false).
		AddField("💰 Balance", fmt.Sprintf("**%s**", utils.FormatMoney(player.Balance)), true).
		AddField("📊 Portfolio", fmt.Sprintf("Properties: **%d**", len(properties)), true).
		Build()

	return viewData{
		embeds: []discord.Embed{embed},
		components: []discord.ContainerComponent{
			discord.NewActionRow(
				discord.NewPrimaryButton("💼 Work", "/menu/work"),
				discord.NewPrimaryButton("🛒 Shop", "/menu/shop"),
				discord.NewSecondaryButton("🏘️ Assets", "/menu/assets"),
			),
			discord.NewActionRow(
				discord.NewDangerButton("💸 Sell Fast", "/menu/sell"),
				discord.NewSuccessButton("💰 Collect Rent", "/menu/collect"),
			),
		},
	}, nil
}

func renderShop(ctx context.Context, b *virtualhouse.Bot, userID string) (viewData, error) {
	player, _, err := b.Game.EnsurePlayer(ctx, userID)
	if err != nil {
		return viewData{}, err
	}
	properties, err := b.Game.ListProperties(ctx, userID)
	if err != nil {
		return viewData{}, err
	}

	ownedTypes := make(map[string]bool, len(properties))
	for _, p := range properties {
		ownedTypes[p.LandType] = true
	}

	embed := discord.NewEmbedBuilder().
		SetTitle("🛒 Real Estate Marketplace").
		SetDescription(fmt.Sprintf("Your Balance: **%s**", utils.FormatMoney(player.Balance))).
		SetColor(config.SuccessColor).
		Build()

	var buttons []discord.InteractiveComponent
	for _, landType := range game.CatalogOrder {
		land := game.Catalog[landType]
		customID := fmt.Sprintf("/shop/buy/%s", landType)
		label := fmt.Sprintf("%s %s", land.Emoji, utils.FormatMoney(land.Price))

		switch {
		case ownedTypes[string(landType)]:
			buttons = append(buttons, discord.NewSuccessButton(land.Emoji+" Owned", customID).WithDisabled(true))
		case player.Balance < land.Price:
			buttons = append(buttons, discord.NewSecondaryButton(label, customID).WithDisabled(true))
		default:
			buttons = append(buttons, discord.NewPrimaryButton(label, customID))
		}
	}

	return viewData{
		embeds: []discord.Embed{embed},
		components: []discord.ContainerComponent{
			discord.NewActionRow(buttons...),
			returnRow(),
		},
	}, nil
}

func renderAssetsList(ctx context.Context, b *virtualhouse.Bot, userID string) (viewData, error) {
	properties, err := b.Game.ListProperties(ctx, userID)
	if err != nil {
		return viewData{}, err
	}

	builder := discord.NewEmbedBuilder().
		SetTitle("🏘️ Property Portfolio").
		SetColor(config.InfoColor)

	if len(properties) == 0 {
		builder.SetDescription("🚫 No properties owned. Visit the Shop to start investing!")
		return viewData{
			embeds:     []discord.Embed{builder.Build()},
			components: []discord.ContainerComponent{returnRow()},
		}, nil
	}

	builder.SetDescription("Select a property to view detailed info, upgrade, or repair.")

	var rows []discord.ContainerComponent
	var current []discord.InteractiveComponent
	for i, p := range properties {
		if i >= config.MaxAssetButtons {
			break
		}
		if i > 0 && i%5 == 0 {
			rows = append(rows, discord.NewActionRow(current...))
			current = nil
		}
		name := "House"
		if land, ok := game.LookupLand(p.LandType); ok {
			name = land.Name
		}
		current = append(current, discord.NewSecondaryButton(
			fmt.Sprintf("#%d %s", p.ID, name),
			fmt.Sprintf("/assets/detail/%d", p.ID),
		))
	}
	rows = append(rows, discord.NewActionRow(current...))
	rows = append(rows, returnRow())

	return viewData{
		embeds:     []discord.Embed{builder.Build()},
		components: rows,
	}, nil
}

func renderAssetDetail(ctx context.Context, b *virtualhouse.Bot, userID string, propertyID int64) (viewData, error) {
	properties, err := b.Game.ListProperties(ctx, userID)
	if err != nil {
		return viewData{}, err
	}

	var property *models.Property
	for _, p := range properties {
		if p.ID == propertyID {
			property = p
			break
		}
	}
	if property == nil {
		return renderAssetsList(ctx, b, userID)
	}

	land, _ := game.LookupLand(property.LandType)
	now := time.Now()
	rate := game.RentRate(property)
	pending := game.PendingRent(property, now)

	color := config.EmbedDefaultColor
	rarity := "Standard"
	if property.IsGold {
		color = config.GoldColor
		rarity = "🌟 GOLD"
	}

	embed := discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("🏠 Detail: %s #%d", land.Name, property.ID)).
		SetColor(color).
		AddField("Level", fmt.Sprintf("Level %d", property.Level), true).
		AddField("Condition", fmt.Sprintf("%d%%", property.Condition), true).
		AddField("Rarity", rarity, true).
		AddField("Pending Rent", fmt.Sprintf("**%s**", utils.FormatMoney(pending)), false).
		AddField("Current Rate", fmt.Sprintf("$%.2f/s", rate), true).
		Build()

	upgradeCost := game.UpgradeCost(land, property.Level)
	repairCost := game.RepairCost(property.Condition)

	return viewData{
		embeds: []discord.Embed{embed},
		components: []discord.ContainerComponent{
			discord.NewActionRow(
				discord.NewDangerButton("Sell", fmt.Sprintf("/assets/sell/%d", property.ID)),
				discord.NewPrimaryButton(
					fmt.Sprintf("Upgrade (%s)", utils.FormatMoney(upgradeCost)),
					fmt.Sprintf("/assets/upgrade/%d", property.ID)),
				discord.NewSuccessButton(
					fmt.Sprintf("Repair (%s)", utils.FormatMoney(repairCost)),
					fmt.Sprintf("/assets/repair/%d", property.ID)).
					WithDisabled(property.Condition >= 100),
			),
			discord.NewActionRow(
				discord.NewSecondaryButton("Back to List", "/menu/assets"),
				discord.NewSecondaryButton("Main Menu", "/menu/return"),
			),
		},
	}, nil
}

func renderSellMenu(ctx context.Context, b *virtualhouse.Bot, userID string) (viewData, error) {
	properties, err := b.Game.ListProperties(ctx, userID)
	if err != nil {
		return viewData{}, err
	}

	builder := discord.NewEmbedBuilder().
		SetTitle("🏘️ Quick Sell").
		SetDescription("Get 75% of the purchase price back immediately.").
		SetColor(config.WarningColor)

	var rows []discord.ContainerComponent
	if len(properties) == 0 {
		builder.SetDescription("🚫 No properties to sell.")
	} else {
		var buttons []discord.InteractiveComponent
		for i, p := range properties {
			if i >= 4 {
				break
			}
			land, ok := game.LookupLand(p.LandType)
			if !ok {
				continue
			}
			buttons = append(buttons, discord.NewDangerButton(
				fmt.Sprintf("Sell #%d (+%s)", p.ID, utils.FormatMoney(game.SellRefund(land))),
				fmt.Sprintf("/sellfast/%d", p.ID),
			))
		}
		rows = append(rows, discord.NewActionRow(buttons...))
	}
	rows = append(rows, returnRow())

	return viewData{
		embeds:     []discord.Embed{builder.Build()},
		components: rows,
	}, nil
}

func renderWorkResult(ctx context.Context, b *virtualhouse.Bot, user discord.User, res *game.WorkResult) (viewData, error) {
	var balance int64
	if !res.OnCooldown {
		player, err := b.Game.GetPlayer(ctx, user.ID.String())
		if err != nil {
			return viewData{}, err
		}
		balance = player.Balance
	}
	return workResultView(user, res, balance), nil
}

func workResultView(user discord.User, res *game.WorkResult, balance int64) viewData {
	builder := discord.NewEmbedBuilder().
		SetAuthor(user.Username, "", user.EffectiveAvatarURL())

	if res.OnCooldown {
		builder.
			SetColor(config.ErrorColor).
			SetDescription(fmt.Sprintf("⏳ Cooldown: **%ds** remaining.", res.Remaining))
	} else {
		builder.
			SetColor(config.SuccessColor).
			SetDescription(fmt.Sprintf("✅ You earned **%s**.\n✨ EXP Gained: **+%d**\n💰 Balance: **%s**",
				utils.FormatMoney(res.Earned), res.ExpGain, utils.FormatMoney(balance)))
	}

	embeds := []discord.Embed{builder.Build()}
	if res.LeveledUp {
		embeds = append(embeds, discord.NewEmbedBuilder().
			SetColor(config.GoldColor).
			SetDescription(fmt.Sprintf("🎊 **LEVEL UP!** %s reached **Level %d**!", user.Username, res.CurrentLevel)).
			Build())
	}

	return viewData{
		embeds: embeds,
		components: []discord.ContainerComponent{
			discord.NewActionRow(
				discord.NewPrimaryButton("Work", "/menu/work"),
				discord.NewSuccessButton("Collect", "/menu/collect"),
				discord.NewSecondaryButton("Return", "/menu/return"),
			),
		},
	}
}

// userMessage maps engine validation failures to the player-facing text.
// Anything else is a store failure the player cannot act on.
func userMessage(err error) string {
	var ibe *game.InsufficientBalanceError
	switch {
	case errors.As(err, &ibe):
		return fmt.Sprintf("Insufficient balance. Need %s.", utils.FormatMoney(ibe.Need))
	case errors.Is(err, game.ErrInvalidLandType):
		return "Invalid land type."
	case errors.Is(err, game.ErrPropertyNotFound):
		return "Property not found."
	case errors.Is(err, game.ErrAlreadyRepaired):
		return "Property is in perfect condition."
	}
	return "Something went wrong. Please try again later."
}
