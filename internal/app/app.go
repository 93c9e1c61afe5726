package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/winnow-hq/winnow-api/internal/config"
	"github.com/winnow-hq/winnow-api/internal/core"
	fb "github.com/winnow-hq/winnow-api/internal/core/firebase"
	"github.com/winnow-hq/winnow-api/internal/core/llm"
	"github.com/winnow-hq/winnow-api/internal/core/objectclient"
	"github.com/winnow-hq/winnow-api/internal/core/store"
)

type App struct {
	Provider *fb.Provider
	Chat     *llm.GeminiChat
	Server   *Server
}

// NewApp wires every dependency once and injects the resulting handles
// explicitly; nothing downstream reaches for globals.
func NewApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	provider := fb.NewProvider(cfg)

	fs, err := provider.Firestore(ctx)
	if err != nil {
		return nil, err
	}
	authc, err := provider.Auth(ctx)
	if err != nil {
		return nil, err
	}
	bucket, err := provider.Bucket(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("firebase initialized", zap.String("project", cfg.ProjectID))

	authClient := fb.NewAuthClient(authc)
	users := store.NewFirestoreUserStore(fs)
	jds := store.NewFirestoreJDStore(fs, log)

	var objClient core.ObjectClient
	if bucket != nil {
		objClient = objectclient.NewGCSClient(bucket, cfg.StorageBucket)
		log.Info("storage bucket ready", zap.String("bucket", cfg.StorageBucket))
	}

	// A missing Gemini key is not a startup failure; the chat endpoint
	// reports it per request instead.
	var chatModel core.ChatModel
	var geminiChat *llm.GeminiChat
	if cfg.GeminiAPIKey != "" {
		geminiChat, err = llm.NewGeminiChat(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		chatModel = geminiChat
	} else {
		log.Warn("GEMINI_API_KEY not set; chat requests will fail")
	}

	server := NewServer(cfg, log, authClient, users, jds, objClient, chatModel)

	return &App{Provider: provider, Chat: geminiChat, Server: server}, nil
}

func (a *App) Close() {
	if a.Chat != nil {
		_ = a.Chat.Close()
	}
	if a.Provider != nil {
		_ = a.Provider.Close()
	}
}
