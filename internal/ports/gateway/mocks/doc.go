// Package mocks provides mock implementations for testing purposes.
package mocks

//go:generate go tool mockgen -destination=mock_banking.go -package=mocks github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/banking AccountGateway,RecipientGateway,TransferGateway,BeneficiaryGateway,AccountRequestGateway,MovementGateway,AuthGateway
//go:generate go tool mockgen -destination=mock_messaging.go -package=mocks github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/messaging Publisher
//go:generate go tool mockgen -destination=mock_persistence.go -package=mocks github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/persistence OutboxRepository
//go:generate go tool mockgen -destination=mock_platform.go -package=mocks github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/platform Clock,IDGenerator,Scheduler,Ticker
