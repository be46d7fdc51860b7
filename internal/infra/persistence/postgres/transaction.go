package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"signin/internal/domain/repository"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds a specific GORM transaction and uses it to create repositories bound to it.
type gormRepositoryFactory struct {
	tx *gorm.DB // In GORM, a transaction object is also a *gorm.DB
}

// UserRepo creates a new user repository instance bound to the transaction.
func (f *gormRepositoryFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs the given function within a single read-write database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return tm.run(ctx, nil, fn)
}

// ExecuteReadOnly runs the given function within a read-only transaction.
func (tm *gormTransactionManager) ExecuteReadOnly(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return tm.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (tm *gormTransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(repoFactory repository.RepositoryFactory) error) error {
	var tx *gorm.DB
	if opts != nil {
		tx = tm.db.WithContext(ctx).Begin(opts)
	} else {
		tx = tm.db.WithContext(ctx).Begin()
	}
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// A panic inside fn must still release the connection.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx}

	err := fn(factory)
	if err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
