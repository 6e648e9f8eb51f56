package main

import (
	"log"

	"github.com/techagentng/messaging/config"
	"github.com/techagentng/messaging/db"
	"github.com/techagentng/messaging/server"
	"github.com/techagentng/messaging/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gormDB := db.GetDB(conf)
	authRepo := db.NewAuthRepo(gormDB)
	conversationRepo := db.NewConversationRepo(gormDB)
	messageRepo := db.NewMessageRepo(gormDB)

	authService := services.NewAuthService(authRepo, conf)
	userService := services.NewUserService(authRepo)
	conversationService := services.NewConversationService(conversationRepo, authRepo)
	messageService := services.NewMessageService(messageRepo, conversationRepo)

	s := &server.Server{
		Config:              conf,
		AuthRepository:      authRepo,
		AuthService:         authService,
		UserService:         userService,
		ConversationService: conversationService,
		MessageService:      messageService,
		DB:                  *gormDB,
	}

	s.Start()
}
