//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"famchat/internal/admin"
	"famchat/internal/chat/gateway"
	"famchat/internal/chat/handler"
	"famchat/internal/chat/hub"
	"famchat/internal/chat/repository"
	"famchat/internal/chat/service"
	"famchat/internal/common"
	"famchat/internal/events"
)

var chatSet = wire.NewSet(
	repository.NewChatRepository,
	hub.NewIndex,
	ProvideChatOptions,
	service.NewChatService,
	wire.Bind(new(service.Fanout), new(*hub.Index)),
	wire.Bind(new(service.EventSink), new(*events.Dispatcher)),
	wire.Bind(new(service.BroadcastRouter), new(*service.ChatService)),
	wire.Bind(new(service.ReadTracker), new(*service.ChatService)),
	wire.Bind(new(service.HistoryService), new(*service.ChatService)),
)

var transportSet = wire.NewSet(
	ProvideTokenManager,
	wire.Bind(new(common.TokenValidator), new(*common.TokenManager)),
	wire.Bind(new(gateway.Membership), new(*hub.Index)),
	ProvidePresenceStore,
	ProvidePresence,
	ProvidePresenceReader,
	ProvideGateway,
	handler.NewChatHandler,
	admin.NewServer,
)

// InitializeChatService is a declaration; wire generates the body.
func InitializeChatService() (*App, func(), error) {
	wire.Build(
		ProvideConfig,
		ProvideLogger,
		ProvideDatabase,
		ProvideDispatcher,
		chatSet,
		transportSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
