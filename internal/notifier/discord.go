package notifier

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/projet-mariage/wedding-api/internal/config"
	"github.com/projet-mariage/wedding-api/internal/models"
)

type Notifier interface {
	NotifyGuestChange(guest models.Guest, action string) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(cfg *config.Config) (*DiscordNotifier, error) {
	if cfg.DiscordBotToken == "" || cfg.DiscordNotificationsChannelID == "" {
		return nil, fmt.Errorf("discord notifier not configured")
	}
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, err
	}
	return &DiscordNotifier{
		session:   session,
		channelID: cfg.DiscordNotificationsChannelID,
	}, nil
}

// NotifyGuestChange posts an RSVP summary to the notifications channel.
// action is a short verb like "created" or "updated".
func (n *DiscordNotifier) NotifyGuestChange(guest models.Guest, action string) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	status := "has not answered yet"
	if guest.IsAttending != nil {
		if *guest.IsAttending {
			status = "is attending 🎉"
		} else {
			status = "declined 😢"
		}
	}

	countStr := ""
	if guest.GuestCount != nil {
		countStr = fmt.Sprintf("\n**Guests:** %d", *guest.GuestCount)
	}

	dinnerStr := ""
	if guest.DinnerChoice != nil {
		dinnerStr = fmt.Sprintf("\n**Dinner:** %s", *guest.DinnerChoice)
	}

	message := fmt.Sprintf("💍 **RSVP %s**\n**Guest:** %s %s (%s)\n**Status:** %s%s%s",
		action,
		guest.FirstName,
		guest.LastName,
		guest.Email,
		status,
		countStr,
		dinnerStr,
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	return err
}
