package cache

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	data, ok, err := c.Get(ctx, "key")
	if err != nil || ok || data != nil {
		t.Errorf("Get() = %q, %v, %v, want miss", data, ok, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := c.Get(ctx, "missing"); ok {
		t.Error("Get(missing) hit")
	}
	if err := c.Set(ctx, "k", []byte("v1"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if data, ok, err := c.Get(ctx, "k"); err != nil || !ok || string(data) != "v1" {
		t.Errorf("Get() = %q, %v, %v, want v1", data, ok, err)
	}
	if err := c.Set(ctx, "k", []byte("v2"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if data, _, _ := c.Get(ctx, "k"); string(data) != "v2" {
		t.Errorf("Get() after overwrite = %q, want v2", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get() hit after Delete")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "k"); !ok {
		t.Fatal("Get() missed before expiry")
	}
	now = now.Add(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get() hit after expiry")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Errorf("expired entry not removed: %v", err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Errorf("Get(corrupt) = %v, %v, want miss", ok, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("Clear() left %d entries", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash() is not deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Hash() collided on different inputs")
	}
	if len(h1) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if got := k.GraphKey("abc"); got != "graph:abc" {
		t.Errorf("GraphKey() = %q, want graph:abc", got)
	}

	r1 := k.ResultKey("abc", ResultKeyOpts{Repair: true})
	r2 := k.ResultKey("abc", ResultKeyOpts{Repair: true, StickFigure: true})
	if r1 == r2 {
		t.Error("ResultKey() ignores options")
	}
	if r1 != k.ResultKey("abc", ResultKeyOpts{Repair: true}) {
		t.Error("ResultKey() is not deterministic")
	}
	if !strings.HasPrefix(r1, "result:") {
		t.Errorf("ResultKey() = %q, want result: prefix", r1)
	}

	a1 := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"})
	a2 := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "dot"})
	if a1 == a2 {
		t.Error("ArtifactKey() ignores format")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "staging:")
	if got := scoped.GraphKey("abc"); got != "staging:graph:abc" {
		t.Errorf("GraphKey() = %q, want staging:graph:abc", got)
	}
	if got := scoped.ResultKey("abc", ResultKeyOpts{}); !strings.HasPrefix(got, "staging:result:") {
		t.Errorf("ResultKey() = %q, want staging:result: prefix", got)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	defer func(d time.Duration) { backoff = d }(backoff)
	backoff = time.Millisecond
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return errors.New("permanent")
	})
	if err == nil || calls != 1 {
		t.Errorf("non-retryable: err = %v, calls = %d, want error after 1 call", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 3 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Errorf("retryable: err = %v, calls = %d, want nil after 3 calls", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if !errors.Is(err, ErrNetwork) || calls != 3 {
		t.Errorf("exhausted: err = %v, calls = %d, want ErrNetwork after 3 calls", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RetryWithBackoff() error = %v, want context.Canceled", err)
	}
}

func TestClassify(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"miss", redis.Nil, false},
		{"server error", errors.New("WRONGTYPE Operation"), false},
		{"network", opErr, true},
		{"deadline", context.DeadlineExceeded, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if IsRetryable(got) != tt.retryable {
				t.Errorf("IsRetryable(classify(%v)) = %v, want %v", tt.err, IsRetryable(got), tt.retryable)
			}
			if tt.retryable && !errors.Is(got, ErrNetwork) {
				t.Errorf("classify(%v) = %v, want ErrNetwork", tt.err, got)
			}
		})
	}
}

func TestNewRedisCacheRequiresAddr(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), RedisConfig{}); err == nil {
		t.Error("NewRedisCache() without address succeeded")
	}
}
