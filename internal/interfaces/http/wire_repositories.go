package http

import (
	"gorm.io/gorm"

	"github.com/rafflehub/rafflehub/internal/domain/audit"
	"github.com/rafflehub/rafflehub/internal/domain/deposit"
	"github.com/rafflehub/rafflehub/internal/domain/product"
	"github.com/rafflehub/rafflehub/internal/domain/shop"
	"github.com/rafflehub/rafflehub/internal/infrastructure/config"
	"github.com/rafflehub/rafflehub/internal/infrastructure/lock"
	"github.com/rafflehub/rafflehub/internal/infrastructure/repository"
	"github.com/rafflehub/rafflehub/internal/shared/db"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	raffleRepo  *repository.RaffleRepositoryImpl
	ticketRepo  *repository.RaffleTicketRepositoryImpl
	productRepo product.Repository
	shopRepo    shop.Repository
	depositRepo deposit.Repository
	auditStore  audit.Store
	txManager   *db.TransactionManager
}

func newRepositories(database *gorm.DB, locker lock.RaffleLocker, cfg *config.Config, log logger.Interface) *repositories {
	retry := repository.RetryPolicy{
		MaxAttempts: cfg.Raffle.Tx.MaxAttempts,
		BaseBackoff: cfg.Raffle.Tx.BaseBackoff,
		MaxBackoff:  cfg.Raffle.Tx.MaxBackoff,
	}
	return &repositories{
		raffleRepo:  repository.NewRaffleRepository(database, locker, retry, log),
		ticketRepo:  repository.NewRaffleTicketRepository(database, log),
		productRepo: repository.NewProductRepository(database, log),
		shopRepo:    repository.NewShopRepository(database),
		depositRepo: repository.NewDepositRepository(database, log),
		auditStore:  repository.NewAuditRepository(database, log),
		txManager:   db.NewTransactionManager(database),
	}
}
