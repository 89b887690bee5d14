package settings

import (
	"context"
	"fmt"
	"testing"
)

func BenchmarkManager_CacheSettings(b *testing.B) {
	mgr := newTestManager()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mgr.CacheSettings(fmt.Sprintf("key-%d", i%64), i)
	}
}

func BenchmarkManager_GetCachedSettings(b *testing.B) {
	mgr := newTestManager()
	for i := 0; i < 64; i++ {
		mgr.CacheSettings(fmt.Sprintf("key-%d", i), i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mgr.GetCachedSettings(fmt.Sprintf("key-%d", i%64))
	}
}

func BenchmarkManager_LoadSettingsHit(b *testing.B) {
	mgr := newTestManager()
	ctx := context.Background()
	loader := func(ctx context.Context) (any, error) { return "v", nil }
	mgr.LoadSettings(ctx, "k", loader)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mgr.LoadSettings(ctx, "k", loader)
	}
}

func BenchmarkManager_Report(b *testing.B) {
	mgr := newTestManager()
	for i := 0; i < 32; i++ {
		mgr.CacheSettings(fmt.Sprintf("key-%d", i), i)
	}
	mgr.LoadSettings(context.Background(), "k", func(ctx context.Context) (any, error) {
		return "v", nil
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mgr.Report()
	}
}
