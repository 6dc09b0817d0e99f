// Copyright 2024 Alexander Getmansky <alex@getsky.tech>
// Licensed under the Apache License, Version 2.0

package infrastructure

import (
	"fmt"
	"strconv"
	"time"

	"github.com/GetSky/SunlightWatch/internal/application"
	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var daylightTemplate = `☀️ *Daylight*

The sun is up at %.4f, %.4f.
Since: %s
`

var nightTemplate = `🌙 *Night*

The sun has set at %.4f, %.4f.
Since: %s
`

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type telegramNotifyService struct {
	bot          sender
	telegramChat int64
}

func NewTelegramNotifyService(botToken string, receiverKey string) (application.NotifyService, error) {
	chat, err := strconv.ParseInt(receiverKey, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse receiverKey: %w", err)
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize bot: %w", err)
	}

	return &telegramNotifyService{
		bot:          bot,
		telegramChat: chat,
	}, nil
}

func (c *telegramNotifyService) NotifyTransition(daylight bool, loc application.Location, at time.Time) error {
	_, err := c.bot.Send(tgbotapi.MessageConfig{
		BaseChat: tgbotapi.BaseChat{
			ChatID: c.telegramChat,
		},
		Text:      c.prepareMessage(daylight, loc, at),
		ParseMode: tgbotapi.ModeMarkdown,
	})
	if err != nil {
		return fmt.Errorf("TelegramNotifyService → %w", err)
	}

	return nil
}

func (c *telegramNotifyService) prepareMessage(daylight bool, loc application.Location, at time.Time) string {
	template := nightTemplate
	if daylight {
		template = daylightTemplate
	}

	return fmt.Sprintf(template, loc.Latitude, loc.Longitude, at.Format("15:04 MST"))
}
