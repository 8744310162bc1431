package main

import (
	// stdlib
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	// internal
	"github.com/progmat64/AirVision/pkg/config"
	"github.com/progmat64/AirVision/pkg/telemetry"

	// external
	mqtt "github.com/soypat/natiu-mqtt"
)

func mqttclient(
	ctx context.Context,
	parent_logger *slog.Logger,
	cfg *config.ConfigFile,
	in_chan <-chan telemetry.Event,
) error {
	logger := parent_logger.With("coroutine", "mqttclient")

	client := mqtt.NewClient(
		mqtt.ClientConfig{
			Decoder: mqtt.DecoderNoAlloc{UserBuffer: make([]byte, 2048)},
		})

	connection, err := net.Dial("tcp", cfg.Mqtt.Broker)
	if err != nil {
		logger.Error("Can't reach the broker", "address", cfg.Mqtt.Broker, "error", err)
		return err
	}

	connection_ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()
	err = client.Connect(connection_ctx, connection, &mqtt.VariablesConnect{
		ClientID: []byte(cfg.Mqtt.ClientID),
	})
	if err != nil {
		logger.Error("Can't connect to the broker", "address", cfg.Mqtt.Broker, "error", err)
		return err
	}
	defer client.Disconnect(errors.New("shutting down"))

	logger.Info("Connected", "broker", cfg.Mqtt.Broker, "topic", cfg.Mqtt.Topic)

	flags, err := mqtt.NewPublishFlags(mqtt.QoS0, false, false)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case event := <-in_chan:
			payload, err := event.ToPayload()
			if err != nil {
				logger.Warn("Can't encode the event", "frame", event.Frame, "error", err)
				continue
			}
			err = client.PublishPayload(flags, mqtt.VariablesPublish{
				TopicName: []byte(cfg.Mqtt.Topic),
			}, payload)
			if err != nil {
				logger.Warn("Publish failed", "frame", event.Frame, "error", err)
			}
		}
	}
}
