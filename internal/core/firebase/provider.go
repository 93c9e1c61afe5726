package firebase

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/winnow-hq/winnow-api/internal/config"
)

// Provider owns the process-wide Firebase handles. Initialization happens
// exactly once, on first use; every accessor after that returns the same
// immutable handles, so concurrent reads are safe.
type Provider struct {
	cfg *config.Config

	once   sync.Once
	app    *firebase.App
	fs     *firestore.Client
	auth   *auth.Client
	bucket *storage.BucketHandle
	err    error
}

func NewProvider(cfg *config.Config) *Provider {
	return &Provider{cfg: cfg}
}

func (p *Provider) init(ctx context.Context) {
	p.once.Do(func() {
		sa, err := p.cfg.ServiceAccountJSON()
		if err != nil {
			p.err = fmt.Errorf("assemble service account: %w", err)
			return
		}

		fbCfg := &firebase.Config{ProjectID: p.cfg.ProjectID}
		if p.cfg.StorageBucket != "" {
			fbCfg.StorageBucket = p.cfg.StorageBucket
		}

		app, err := firebase.NewApp(ctx, fbCfg, option.WithCredentialsJSON(sa))
		if err != nil {
			p.err = fmt.Errorf("init firebase app: %w", err)
			return
		}

		fs, err := app.Firestore(ctx)
		if err != nil {
			p.err = fmt.Errorf("init firestore: %w", err)
			return
		}

		authClient, err := app.Auth(ctx)
		if err != nil {
			_ = fs.Close()
			p.err = fmt.Errorf("init auth: %w", err)
			return
		}

		p.app = app
		p.fs = fs
		p.auth = authClient

		// The bucket is optional; only resolve it when configured.
		if p.cfg.StorageBucket != "" {
			storageClient, err := app.Storage(ctx)
			if err != nil {
				p.err = fmt.Errorf("init storage: %w", err)
				return
			}
			bucket, err := storageClient.DefaultBucket()
			if err != nil {
				p.err = fmt.Errorf("resolve bucket: %w", err)
				return
			}
			p.bucket = bucket
		}
	})
}

func (p *Provider) Firestore(ctx context.Context) (*firestore.Client, error) {
	p.init(ctx)
	return p.fs, p.err
}

func (p *Provider) Auth(ctx context.Context) (*auth.Client, error) {
	p.init(ctx)
	return p.auth, p.err
}

// Bucket returns (nil, nil) when no storage bucket is configured.
func (p *Provider) Bucket(ctx context.Context) (*storage.BucketHandle, error) {
	p.init(ctx)
	return p.bucket, p.err
}

func (p *Provider) Close() error {
	if p.fs != nil {
		return p.fs.Close()
	}
	return nil
}
