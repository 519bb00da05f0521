package utils

import (
	"github.com/acmavirus/Virtual-House/virtualhouse/config"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

// ResponseHandler provides standardized response methods for commands and components
type ResponseHandler struct{}

var EH = &ResponseHandler{}

// CreateErrorEmbed replies with an ephemeral error embed.
func (rh *ResponseHandler) CreateErrorEmbed(e *handler.CommandEvent, message string) error {
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       "❌ Error",
			Description: message,
			Color:       config.ErrorColor,
		}},
		Flags: discord.MessageFlagEphemeral,
	})
}

// CreateEphemeral replies with a plain ephemeral message.
func (rh *ResponseHandler) CreateEphemeral(e *handler.CommandEvent, content string) error {
	return e.CreateMessage(discord.MessageCreate{
		Content: content,
		Flags:   discord.MessageFlagEphemeral,
	})
}

// ComponentError replies to a component interaction with an ephemeral
// error message, leaving the original message untouched.
func (rh *ResponseHandler) ComponentError(e *handler.ComponentEvent, message string) error {
	return e.CreateMessage(discord.MessageCreate{
		Content: "❌ " + message,
		Flags:   discord.MessageFlagEphemeral,
	})
}

// ComponentEphemeral replies to a component interaction with a plain
// ephemeral message.
func (rh *ResponseHandler) ComponentEphemeral(e *handler.ComponentEvent, content string) error {
	return e.CreateMessage(discord.MessageCreate{
		Content: content,
		Flags:   discord.MessageFlagEphemeral,
	})
}
