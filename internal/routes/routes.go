package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cashpoint/internal/handlers"
	"cashpoint/internal/middleware"
	"cashpoint/internal/repositories"
	"cashpoint/internal/repositories/cache"
	"cashpoint/internal/services/auth"
	"cashpoint/internal/services/fee"
	"cashpoint/internal/services/payment"
	"cashpoint/internal/services/pin"
	"cashpoint/internal/services/tournament"
	"cashpoint/internal/services/user"
	"cashpoint/internal/services/wallet"
)

// SetupRoutes wires repositories, services and handlers onto the app.
// cacheSvc may be nil; the wallet then runs without a read cache.
func SetupRoutes(app *fiber.App, db *gorm.DB, cacheSvc *cache.Service) {
	accountRepo := repositories.NewAccountRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db)
	feeRepo := repositories.NewFeeConfigRepository(db)
	requestRepo := repositories.NewPaymentRequestRepository(db)
	tournamentRepo := repositories.NewTournamentRepository(db)

	hasher := pin.NewHasher()
	resolver := fee.NewResolver()

	var walletCache wallet.Cache = wallet.NoopCache{}
	var userCache user.Cache
	if cacheSvc != nil {
		walletCache = cacheSvc
		userCache = cacheSvc
	}

	authSvc := auth.NewService(accountRepo)
	pinSvc := pin.NewService(accountRepo, hasher)
	walletSvc := wallet.NewService(db, accountRepo, ledgerRepo, feeRepo, resolver, hasher, walletCache)
	paymentSvc := payment.NewService(db, accountRepo, ledgerRepo, feeRepo, requestRepo, resolver, hasher)
	tournamentSvc := tournament.NewService(db, accountRepo, ledgerRepo, tournamentRepo)
	userSvc := user.NewService(accountRepo, hasher, userCache)
	feeConfigSvc := fee.NewConfigService(feeRepo)

	authHandler := handlers.NewAuthHandler(authSvc)
	pinHandler := handlers.NewPinHandler(pinSvc)
	walletHandler := handlers.NewWalletHandler(walletSvc)
	paymentHandler := handlers.NewPaymentHandler(paymentSvc)
	tournamentHandler := handlers.NewTournamentHandler(tournamentSvc)
	userHandler := handlers.NewUserHandler(userSvc)
	feeConfigHandler := handlers.NewFeeConfigHandler(feeConfigSvc)

	api := app.Group("/api")

	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	protected := api.Group("", middleware.AuthMiddleware(authSvc, accountRepo))

	protected.Get("/wallet", walletHandler.GetWallet)
	protected.Post("/wallet/send", walletHandler.SendMoney)

	protected.Post("/pin/setup", pinHandler.Setup)
	protected.Post("/pin/change", pinHandler.Change)
	protected.Post("/pin/reset", pinHandler.Reset)

	protected.Post("/deposits", paymentHandler.CreateDeposit)
	protected.Get("/deposits", paymentHandler.ListDeposits)
	protected.Post("/transfers", paymentHandler.CreateTransfer)
	protected.Get("/transfers", paymentHandler.ListTransfers)

	protected.Post("/recipients/find", userHandler.FindRecipient)
	protected.Put("/profile", userHandler.UpdateProfile)

	protected.Get("/tournaments", tournamentHandler.ListActive)
	protected.Post("/tournaments/join", tournamentHandler.Join)
	protected.Post("/tournaments/proof", tournamentHandler.SubmitProof)

	admin := protected.Group("/admin", middleware.AdminRequired(accountRepo))
	admin.Post("/tournaments", tournamentHandler.CreatePost)
	admin.Post("/tournaments/distribute", tournamentHandler.DistributePrizes)
	admin.Get("/tournaments/totals", tournamentHandler.GetTotals)
	admin.Post("/fees/rules", feeConfigHandler.SetChargeRule)
	admin.Post("/fees/reserve", feeConfigHandler.ReplenishReserve)
}
