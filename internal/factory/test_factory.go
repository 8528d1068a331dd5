package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/raidroster/internal/catalogue"
	"github.com/mcoot/raidroster/internal/dependencies/mocks"
	"github.com/mcoot/raidroster/internal/lock"
	"github.com/mcoot/raidroster/internal/services/auth"
	"github.com/mcoot/raidroster/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies,
// in-memory storage and the embedded template catalogue
func NewTestApp() *TestApp {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	cat, err := catalogue.Default()
	if err != nil {
		panic("embedded catalogue: " + err.Error())
	}
	authService, err := auth.New(auth.Config{}, logger)
	if err != nil {
		panic("auth: " + err.Error())
	}

	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(memory.New(), lock.NewLocal(), cat, mockClock, mockRandom, authService, nil, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
