package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Gunvolt24/pos_print/config"
	"github.com/Gunvolt24/pos_print/internal/surface"
	"github.com/gin-gonic/gin"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

func TestNewSurface_Kinds(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	got, err := newSurface(ctx, config.Surface{Kind: config.SurfaceSpool, SpoolDir: filepath.Join(dir, "spool")}, nopLogger{})
	if err != nil {
		t.Fatalf("spool: %v", err)
	}
	if _, ok := got.(*surface.SpoolSurface); !ok {
		t.Fatalf("spool kind: got %T", got)
	}

	got, err = newSurface(ctx, config.Surface{Kind: config.SurfaceCommand, Command: "lp"}, nopLogger{})
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	if _, ok := got.(*surface.CommandSurface); !ok {
		t.Fatalf("command kind: got %T", got)
	}

	got, err = newSurface(ctx, config.Surface{
		Kind:        config.SurfaceS3,
		S3Bucket:    "receipts",
		S3Endpoint:  "http://127.0.0.1:9000",
		S3Region:    "auto",
		S3AccessKey: "key",
		S3SecretKey: "secret",
		S3Prefix:    "print/",
	}, nopLogger{})
	if err != nil {
		t.Fatalf("s3: %v", err)
	}
	if _, ok := got.(*surface.ObjectStoreSurface); !ok {
		t.Fatalf("s3 kind: got %T", got)
	}

	if _, err := newSurface(ctx, config.Surface{Kind: "fax"}, nopLogger{}); err == nil {
		t.Fatalf("unknown kind must fail")
	}
}

func TestApplyGinMode(t *testing.T) {
	prev := gin.Mode()
	t.Cleanup(func() { gin.SetMode(prev) })

	cases := map[string]string{
		"release": gin.ReleaseMode,
		" TEST ":  gin.TestMode,
		"":        gin.DebugMode,
		"bogus":   gin.DebugMode,
	}
	for in, want := range cases {
		applyGinMode(context.Background(), in, nopLogger{})
		if gin.Mode() != want {
			t.Fatalf("mode %q: want %s, got %s", in, want, gin.Mode())
		}
	}
}
