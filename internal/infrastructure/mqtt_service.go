// Copyright 2024 Alexander Getmansky <alex@getsky.tech>
// Licensed under the Apache License, Version 2.0

package infrastructure

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GetSky/SunlightWatch/internal/application"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

const mqttTimeout = 10 * time.Second

type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

type MQTTConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

type statePayload struct {
	State     string    `json:"state"`
	Daylight  bool      `json:"daylight"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

type mqttNotifyService struct {
	client      publisher
	topicPrefix string
}

// NewMQTTNotifyService publishes the day/night state as a retained message
// to <prefix>/state.
func NewMQTTNotifyService(cfg MQTTConfig, logger zerolog.Logger) (application.NotifyService, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			logger.Warn().Err(err).Msg("MQTT connection lost")
		}).
		SetOnConnectHandler(func(c mqtt.Client) {
			logger.Info().Str("broker", cfg.Broker).Msg("MQTT connected")
		})

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.WaitTimeout(mqttTimeout) && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &mqttNotifyService{
		client:      client,
		topicPrefix: cfg.TopicPrefix,
	}, nil
}

func (m *mqttNotifyService) NotifyTransition(daylight bool, loc application.Location, at time.Time) error {
	state := "night"
	if daylight {
		state = "day"
	}

	payload, err := json.Marshal(statePayload{
		State:     state,
		Daylight:  daylight,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Timestamp: at,
	})
	if err != nil {
		return fmt.Errorf("MQTTNotifyService → %w", err)
	}

	token := m.client.Publish(m.topicPrefix+"/state", 1, true, payload)
	if !token.WaitTimeout(mqttTimeout) {
		return errors.New("MQTTNotifyService → publish timed out")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("MQTTNotifyService → %w", err)
	}

	return nil
}
