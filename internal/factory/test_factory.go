package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/stakemesh/wagerd/internal/dependencies/mocks"
	"github.com/stakemesh/wagerd/internal/dependencies/random"
	"github.com/stakemesh/wagerd/internal/services/auth"
	"github.com/stakemesh/wagerd/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with a mocked clock.
// Token generation stays real so issued credentials are unique.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(store, mockClock, random.New(), auth.DefaultConfig(), logger)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
