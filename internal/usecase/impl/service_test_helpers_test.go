package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"inkwell/config"
	"inkwell/internal/domain/repository"
	mockRepo "inkwell/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(maxActiveSessions int) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        12,
			MaxActiveSessions: maxActiveSessions,
		},
		Pagination: &config.PaginationConfig{
			DefaultPageSize: 10,
			MaxPageSize:     100,
		},
	}
}

// newTxManager builds a transaction manager that immediately runs the given
// function against the supplied factory, standing in for a real transaction.
func newTxManager(t *testing.T, factory *mockRepo.MockRepositoryFactory) *mockRepo.MockTransactionManager {
	t.Helper()

	txManager := mockRepo.NewMockTransactionManager(t)
	txManager.EXPECT().
		Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		}).
		Maybe()

	return txManager
}
