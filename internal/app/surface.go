package app

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/pos_print/config"
	"github.com/Gunvolt24/pos_print/internal/ports"
	"github.com/Gunvolt24/pos_print/internal/surface"
)

// newSurface — локальная поверхность печати по SURFACE_KIND.
func newSurface(ctx context.Context, cfg config.Surface, log ports.Logger) (ports.LocalRenderSurface, error) {
	switch cfg.Kind {
	case config.SurfaceCommand:
		return surface.NewCommandSurface(cfg.Command, cfg.SettleDelay, log), nil
	case config.SurfaceS3:
		client, err := surface.NewS3Client(ctx, surface.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		return surface.NewObjectStoreSurface(client, cfg.S3Bucket, cfg.S3Prefix), nil
	case config.SurfaceSpool, "":
		spool, err := surface.NewSpoolSurface(cfg.SpoolDir)
		if err != nil {
			return nil, err
		}
		return spool, nil
	default:
		return nil, fmt.Errorf("unknown surface kind %q", cfg.Kind)
	}
}
