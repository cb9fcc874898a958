package service

import (
	"github.com/getartha/ledgerhub/rabbitmq"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

type LedgerhubService struct {
	Config         *Config
	DB             *bun.DB
	Logger         *lecho.Logger
	RabbitMQClient rabbitmq.Client
	JournalPubSub  *Pubsub
}
