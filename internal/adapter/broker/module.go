package broker

import (
	"context"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"

	"github.com/polkiloo/drinkshop/internal/config"
	"github.com/polkiloo/drinkshop/internal/events"
)

// Module attaches the AMQP publisher to the event bus when AMQP_URL is set.
var Module = fx.Invoke(register)

type registerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Bus       *events.Bus
}

func register(p registerParams) error {
	if p.Config.AMQPURL == "" {
		p.Logger.Info("amqp url not set, order events stay in-process")
		return nil
	}

	conn, err := amqp.Dial(p.Config.AMQPURL)
	if err != nil {
		return fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open amqp channel: %w", err)
	}
	publisher, err := NewRabbitPublisher(ch, p.Config.AMQPExchange)
	if err != nil {
		_ = conn.Close()
		return err
	}

	p.Bus.AddSink("amqp", publisher)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = publisher.Close()
			return conn.Close()
		},
	})
	return nil
}
