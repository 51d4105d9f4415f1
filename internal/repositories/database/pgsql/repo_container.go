package pgsql

import (
	portsrepo "github.com/SscSPs/komunity_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:      newPgxUserRepository(dbPool),
		ProfileRepo:   newPgxProfileRepository(dbPool),
		CommunityRepo: newPgxCommunityRepository(dbPool),
		WalletRepo:    newPgxWalletRepository(dbPool),
		FundRepo:      newPgxFundRepository(dbPool),
	}
}
