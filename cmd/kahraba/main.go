package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/kahraba/internal/clock"
	"github.com/smallbiznis/kahraba/internal/config"
	"github.com/smallbiznis/kahraba/internal/server"
	"github.com/smallbiznis/kahraba/internal/storage"
	"github.com/smallbiznis/kahraba/pkg/db"
	"github.com/smallbiznis/kahraba/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		clock.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		storage.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
