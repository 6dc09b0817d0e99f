// Copyright 2024 Alexander Getmansky <alex@getsky.tech>
// Licensed under the Apache License, Version 2.0

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Conf struct {
	Latitude           *float64      `env:"LATITUDE"`
	Longitude          *float64      `env:"LONGITUDE"`
	Height             float64       `env:"HEIGHT" envDefault:"0"`
	UseGeolocation     bool          `env:"USE_GEOLOCATION" envDefault:"false"`
	GeolocationUrl     string        `env:"GEOLOCATION_URL" envDefault:"http://ip-api.com/json/"`
	GeolocationTimeout time.Duration `env:"GEOLOCATION_TIMEOUT" envDefault:"5s"`

	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"1s"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	MetricsAddr  string        `env:"METRICS_ADDR"`

	BotToken     string `env:"BOT_TOKEN"`
	TelegramChat string `env:"TELEGRAM_CHAT_ID"`

	MQTTBroker      string `env:"MQTT_BROKER"`
	MQTTClientID    string `env:"MQTT_CLIENT_ID" envDefault:"sunlight-watch"`
	MQTTUsername    string `env:"MQTT_USERNAME"`
	MQTTPassword    string `env:"MQTT_PASSWORD"`
	MQTTTopicPrefix string `env:"MQTT_TOPIC_PREFIX" envDefault:"sunlight"`
}

func NewConf() (*Conf, error) {
	cnf := &Conf{}
	if err := env.Parse(cnf); err != nil {
		return nil, fmt.Errorf("error on parse env config: %w", err)
	}

	if (cnf.BotToken == "") != (cnf.TelegramChat == "") {
		return nil, errors.New("BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}

	return cnf, nil
}

func (c *Conf) TelegramEnabled() bool {
	return c.BotToken != ""
}

func (c *Conf) MQTTEnabled() bool {
	return c.MQTTBroker != ""
}
